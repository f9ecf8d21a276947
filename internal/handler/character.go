package handler

import (
	"net/http"

	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// CharacterHandler handles roster HTTP requests
type CharacterHandler struct {
	guildSvc       *service.GuildService
	recruitmentSvc *service.RecruitmentService
	progressionSvc *service.ProgressionService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(guildSvc *service.GuildService, recruitmentSvc *service.RecruitmentService, progressionSvc *service.ProgressionService) *CharacterHandler {
	return &CharacterHandler{
		guildSvc:       guildSvc,
		recruitmentSvc: recruitmentSvc,
		progressionSvc: progressionSvc,
	}
}

// RecruitResponse pairs a new recruit with the guild's updated balances
type RecruitResponse struct {
	Character *model.Character `json:"character"`
	Guild     *model.Guild     `json:"guild"`
}

// List handles GET /v1/guild/characters - list the roster
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	roster, err := h.guildSvc.Roster(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, roster)
}

// Recruit handles POST /v1/guild/characters - recruit a random hero for gold
func (h *CharacterHandler) Recruit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	ch, guild, err := h.recruitmentSvc.Recruit(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, RecruitResponse{Character: ch, Guild: guild})
}

// Upgrade handles POST /v1/guild/characters/{characterId}/upgrade
func (h *CharacterHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	ch, guild, err := h.progressionSvc.UpgradeCharacter(ctx, userID, characterID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, RecruitResponse{Character: ch, Guild: guild})
}
