package repository

import (
	"context"
	"time"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// BattleRepository handles battle data access
type BattleRepository struct {
	db database.Database
}

// NewBattleRepository creates a new battle repository
func NewBattleRepository(db database.Database) *BattleRepository {
	return &BattleRepository{db: db}
}

// battleCreateQuery is shared by every write-set that logs a battle, so
// roster battles and conquest attempts persist identically.
const battleCreateQuery = `
	CREATE type::record($battle_id) CONTENT {
		user_id: $battle_user,
		guild_id: $battle_guild,
		battle_type: $battle_type,
		status: $battle_status,
		result: $battle_result,
		rewards_gold: $rewards_gold,
		rewards_experience: $rewards_experience,
		created_on: time::now()
	}
`

func battleCreateVars(battle *model.Battle) map[string]interface{} {
	return map[string]interface{}{
		"battle_id":          battle.ID,
		"battle_user":        battle.UserID,
		"battle_guild":       battle.GuildID,
		"battle_type":        string(battle.Type),
		"battle_status":      string(battle.Status),
		"battle_result":      string(battle.Result),
		"rewards_gold":       battle.RewardsGold,
		"rewards_experience": battle.RewardsExperience,
	}
}

// CreateResolved persists a resolved battle together with the guild reward
// credit and per-character experience gains in one atomic batch. Either the
// full outcome lands or none of it does.
func (r *BattleRepository) CreateResolved(ctx context.Context, battle *model.Battle, revision int, guildUpdates map[string]interface{}, experienceGains map[string]int) error {
	battle.ID = newRecordID("battle")

	tb := database.NewTxBuilder()
	appendGuildPatch(tb, battle.GuildID, revision, guildUpdates)
	tb.Add(battleCreateQuery, battleCreateVars(battle))

	for characterID, gain := range experienceGains {
		tb.Add(`UPDATE type::record($character_id) SET experience += $gain`, map[string]interface{}{
			"character_id": characterID,
			"gain":         gain,
		})
	}

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isRevisionConflictError(err) {
			return database.ErrConflict
		}
		return err
	}

	battle.CreatedOn = time.Now().UTC()
	return nil
}

// ListByGuild retrieves a guild's battle log, newest first
func (r *BattleRepository) ListByGuild(ctx context.Context, guildID string, limit int) ([]*model.Battle, error) {
	query := `SELECT * FROM battle WHERE guild_id = $guild_id ORDER BY created_on DESC LIMIT $limit`
	vars := map[string]interface{}{
		"guild_id": guildID,
		"limit":    limit,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseBattleList(results)
}

func parseBattleList(results []interface{}) ([]*model.Battle, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []*model.Battle{}, nil
	}

	battles := make([]*model.Battle, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			return nil, errUnexpectedFormat
		}
		var battle model.Battle
		if err := decodeRecord(data, &battle); err != nil {
			return nil, errUnexpectedFormat
		}
		battles = append(battles, &battle)
	}
	return battles, nil
}
