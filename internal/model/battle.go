package model

import "time"

// BattleType distinguishes battle flows. Only pve is resolved synchronously
// in the current engine; pvp and territory are reserved for later flows.
type BattleType string

const (
	BattleTypePvE       BattleType = "pve"
	BattleTypePvP       BattleType = "pvp"
	BattleTypeTerritory BattleType = "territory"
)

// BattleStatus is the battle lifecycle: pending -> active -> completed,
// terminal at completed. Synchronous resolution creates battles already
// completed; pending and active exist for future asynchronous battles.
type BattleStatus string

const (
	BattleStatusPending   BattleStatus = "pending"
	BattleStatusActive    BattleStatus = "active"
	BattleStatusCompleted BattleStatus = "completed"
)

// BattleResult is the outcome of a completed battle
type BattleResult string

const (
	BattleResultVictory BattleResult = "victory"
	BattleResultDefeat  BattleResult = "defeat"
	// BattleResultDraw is reserved for future battle types; PvE never draws
	BattleResultDraw BattleResult = "draw"
)

// Battle is the immutable record of one resolved battle. Only the status
// transition pending -> completed may mutate it after creation.
type Battle struct {
	ID                string       `json:"id"`
	UserID            string       `json:"user_id"`
	GuildID           string       `json:"guild_id"`
	Type              BattleType   `json:"battle_type"`
	Status            BattleStatus `json:"status"`
	Result            BattleResult `json:"result,omitempty"`
	RewardsGold       int          `json:"rewards_gold"`
	RewardsExperience int          `json:"rewards_experience"`
	CreatedOn         time.Time    `json:"created_on"`
}

// Roster limits for PvE battles
const (
	MinRosterSize = 1
	MaxRosterSize = 3
)

// ResolveBattleRequest carries the roster selection for one battle.
// Type defaults to pve when omitted.
type ResolveBattleRequest struct {
	Type         BattleType `json:"battle_type,omitempty"`
	CharacterIDs []string   `json:"character_ids"`
}
