package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/service"
)

// ClassHandler holds the class CRUD and enrollment endpoints.
type ClassHandler struct {
	svc *service.ClassService
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// Create handles POST /classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cls, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cls)
}

// List handles GET /classes?sports=a,b&take=30&skip=0
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	var sportNames []string
	if raw := r.URL.Query().Get("sports"); raw != "" {
		sportNames = strings.Split(raw, ",")
	}
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	list, err := h.svc.List(r.Context(), sportNames, take, skip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /classes/{id}
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cls, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cls)
}

// Update handles PUT /classes/{id}
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req model.CreateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cls, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cls)
}

// Delete handles DELETE /classes/{id}
// Vetoed while the class has live applications.
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /classes/{id}/register
// Enrolls the authenticated caller into the class.
func (h *ClassHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	app, err := h.svc.Register(r.Context(), id, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// Unregister handles DELETE /classes/{id}/unregister
// Removes the authenticated caller's live application.
func (h *ClassHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.svc.Unregister(r.Context(), id, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Registrations handles GET /classes/{id}/registrations
func (h *ClassHandler) Registrations(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	apps, err := h.svc.Registrations(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if apps == nil {
		apps = []model.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// CreateSchedule handles POST /classes/{id}/schedules
func (h *ClassHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var slot model.ScheduleSlot
	if err := decodeJSON(r, &slot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	schedule, err := h.svc.CreateSchedule(r.Context(), id, slot)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

// DeleteSchedule handles DELETE /classes/{id}/schedules/{scheduleID}
func (h *ClassHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := idParam(r, "scheduleID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteSchedule(r.Context(), scheduleID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
