// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
	"github.com/sportscomplex/class-enrollment/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// idParam parses the named chi URL parameter as an entity id.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// respondError maps domain errors onto HTTP statuses. Unrecognized errors
// are treated as bad requests; the services surface every expected
// failure as one of the sentinels below.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSportNotFound),
		errors.Is(err, repository.ErrClassNotFound),
		errors.Is(err, repository.ErrScheduleNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrClassFull),
		errors.Is(err, repository.ErrAlreadyEnrolled),
		errors.Is(err, repository.ErrDuplicateSport),
		errors.Is(err, repository.ErrDuplicateSchedule),
		errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrSportHasClasses),
		errors.Is(err, repository.ErrClassHasApplications):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSelfDeletion):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrLockTimeout):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
