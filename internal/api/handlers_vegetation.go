package api

import (
	"net/http"

	respond "github.com/grest/greenspace-server/internal/api/respond"
	"github.com/grest/greenspace-server/internal/vegetation"
)

type VegetationHandler struct {
	svc *vegetation.Service
}

func NewVegetationHandler(svc *vegetation.Service) *VegetationHandler {
	return &VegetationHandler{svc: svc}
}

// GetSummary GET /api/vegetation
func (h *VegetationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.Summary())
}
