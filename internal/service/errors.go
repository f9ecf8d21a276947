package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Guild Errors =====
var (
	ErrGuildNotFound     = errors.New("guild not found")
	ErrGuildNameRequired = errors.New("guild name is required")
	ErrGuildNameTooLong  = errors.New("guild name exceeds maximum length")
	ErrGuildDescTooLong  = errors.New("guild description exceeds maximum length")
)

// ===== Roster and Battle Errors =====
var (
	ErrCharacterNotFound    = errors.New("character not found")
	ErrRosterEmpty          = errors.New("battle roster is empty")
	ErrRosterTooLarge       = errors.New("battle roster exceeds maximum size")
	ErrCharacterNotInGuild  = errors.New("character does not belong to this guild")
	ErrInvalidBattleType    = errors.New("invalid battle type")
	ErrBattleTypeReserved   = errors.New("battle type not yet supported")
	ErrTerritoryBattleRoute = errors.New("territory battles are resolved through conquest")
)

// ===== Economy Errors =====
var (
	ErrInsufficientGold = errors.New("insufficient gold")
	ErrInsufficientGems = errors.New("insufficient gems")
)

// ===== Territory Errors =====
var (
	ErrTerritoryNotFound    = errors.New("territory not found")
	ErrGuildLevelTooLow     = errors.New("guild level too low for this territory")
	ErrAlreadySeeded        = errors.New("territories already seeded")
	ErrTerritoryOwnedBySelf = errors.New("territory already held by this guild")
)

// ===== Shop Errors =====
var (
	ErrItemNotFound     = errors.New("shop item not found")
	ErrItemNotAvailable = errors.New("shop item not available")
)

// ===== Concurrency Errors =====
var (
	// ErrRevisionConflict surfaces a lost write race. The request is safe
	// to retry: no partial outcome was persisted.
	ErrRevisionConflict = errors.New("guild state changed, retry the request")
)
