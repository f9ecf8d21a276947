package handler

import (
	"net/http"

	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// TerritoryHandler handles territory HTTP requests
type TerritoryHandler struct {
	svc *service.TerritoryService
}

// NewTerritoryHandler creates a new territory handler
func NewTerritoryHandler(svc *service.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{svc: svc}
}

// List handles GET /v1/territories - the world map
func (h *TerritoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if middleware.GetUserID(ctx) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	territories, err := h.svc.List(ctx)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, territories)
}

// Conquer handles POST /v1/territories/{territoryId}/conquer
func (h *TerritoryHandler) Conquer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	territoryID := r.PathValue("territoryId")
	if territoryID == "" {
		WriteError(w, model.NewBadRequestError("territory ID required"))
		return
	}

	outcome, err := h.svc.Conquer(ctx, userID, territoryID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, outcome)
}
