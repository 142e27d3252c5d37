package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/grest/greenspace-server/internal/api/respond"
	"github.com/grest/greenspace-server/internal/services"
)

// PointHandler is a thin HTTP transport over the point service.
type PointHandler struct {
	svc *services.PointService
}

func NewPointHandler(svc *services.PointService) *PointHandler { return &PointHandler{svc: svc} }

// ListPoints GET /api/points?q=
func (h *PointHandler) ListPoints(w http.ResponseWriter, r *http.Request) {
	pts, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"points": pts, "count": len(pts)})
}

// CreatePoint POST /api/points
func (h *PointHandler) CreatePoint(w http.ResponseWriter, r *http.Request) {
	var req services.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetPoint GET /api/points/{pointId}
func (h *PointHandler) GetPoint(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), mux.Vars(r)["pointId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// UpdatePoint PATCH /api/points/{pointId}
func (h *PointHandler) UpdatePoint(w http.ResponseWriter, r *http.Request) {
	var req services.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["pointId"], &req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeletePoint DELETE /api/points/{pointId}
// Returns 204 also for ids that no longer exist.
func (h *PointHandler) DeletePoint(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["pointId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDefaults GET /api/points/defaults
// The create-form reset state: today's date, N/A accuracy, default region.
func (h *PointHandler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.Defaults())
}
