package handler

import (
	"net/http"

	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// GuildHandler handles guild HTTP requests
type GuildHandler struct {
	svc *service.GuildService
}

// NewGuildHandler creates a new guild handler
func NewGuildHandler(svc *service.GuildService) *GuildHandler {
	return &GuildHandler{svc: svc}
}

// Get handles GET /v1/guild - fetch the user's guild, creating it with the
// starter roster on first contact
func (h *GuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	guild, created, err := h.svc.EnsureGuild(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	WriteData(w, status, guild)
}

// Update handles PATCH /v1/guild - rename or re-describe the guild
func (h *GuildHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateGuildRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	guild, err := h.svc.UpdateProfile(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, guild)
}
