package handler

import (
	"net/http"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/service"
)

// SportHandler holds the sport CRUD endpoints.
type SportHandler struct {
	svc *service.SportService
}

// NewSportHandler constructs a SportHandler.
func NewSportHandler(svc *service.SportService) *SportHandler {
	return &SportHandler{svc: svc}
}

// Create handles POST /sports
func (h *SportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sport, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sport)
}

// List handles GET /sports
func (h *SportHandler) List(w http.ResponseWriter, r *http.Request) {
	sports, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sports")
		return
	}
	if sports == nil {
		sports = []model.Sport{}
	}
	writeJSON(w, http.StatusOK, sports)
}

// Get handles GET /sports/{id}
func (h *SportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sport, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sport)
}

// Update handles PUT /sports/{id}
func (h *SportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req model.CreateSportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sport, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sport)
}

// Delete handles DELETE /sports/{id}
// Vetoed while any class references the sport.
func (h *SportHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
