package handler

import (
	"errors"

	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrGuildNotFound):
		return model.NewNotFoundError("guild")
	case errors.Is(err, service.ErrCharacterNotFound):
		return model.NewNotFoundError("character")
	case errors.Is(err, service.ErrTerritoryNotFound):
		return model.NewNotFoundError("territory")
	case errors.Is(err, service.ErrItemNotFound):
		return model.NewNotFoundError("shop item")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrGuildNameRequired),
		errors.Is(err, service.ErrGuildNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrGuildDescTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "description", Message: err.Error()}})
	case errors.Is(err, service.ErrRosterEmpty),
		errors.Is(err, service.ErrRosterTooLarge),
		errors.Is(err, service.ErrCharacterNotInGuild):
		return model.NewValidationError([]model.FieldError{{Field: "character_ids", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidBattleType),
		errors.Is(err, service.ErrBattleTypeReserved),
		errors.Is(err, service.ErrTerritoryBattleRoute):
		return model.NewValidationError([]model.FieldError{{Field: "battle_type", Message: err.Error()}})

	// ===== Economy Errors → 422 =====
	case errors.Is(err, service.ErrInsufficientGold),
		errors.Is(err, service.ErrInsufficientGems):
		return model.NewInsufficientFundsError(err.Error())

	// ===== Eligibility Errors → 422 =====
	case errors.Is(err, service.ErrGuildLevelTooLow),
		errors.Is(err, service.ErrTerritoryOwnedBySelf),
		errors.Is(err, service.ErrItemNotAvailable):
		return model.NewIneligibleActionError(err.Error())

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrRevisionConflict),
		errors.Is(err, service.ErrAlreadySeeded):
		return model.NewConflictError(err.Error())

	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
