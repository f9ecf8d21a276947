package handler

import (
	"net/http"
	"strconv"

	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// BattleHandler handles battle HTTP requests
type BattleHandler struct {
	svc *service.BattleService
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(svc *service.BattleService) *BattleHandler {
	return &BattleHandler{svc: svc}
}

// BattleResponse pairs a resolved battle with the guild's updated state
type BattleResponse struct {
	Battle *model.Battle `json:"battle"`
	Guild  *model.Guild  `json:"guild"`
}

// Resolve handles POST /v1/battles - fight a simulated opponent
func (h *BattleHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.ResolveBattleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	battle, guild, err := h.svc.Resolve(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, BattleResponse{Battle: battle, Guild: guild})
}

// History handles GET /v1/battles - the guild's battle log
func (h *BattleHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, model.NewBadRequestError("invalid limit"))
			return
		}
		limit = parsed
	}

	battles, err := h.svc.History(ctx, userID, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, battles)
}
