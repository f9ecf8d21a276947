package repository

import (
	"context"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// characterCreateQuery is shared by every write-set that creates a
// character, so recruits and starter rosters persist identically.
const characterCreateQuery = `
	CREATE type::record($character_id) CONTENT {
		user_id: $char_user,
		guild_id: $char_guild,
		name: $char_name,
		class: $char_class,
		level: $char_level,
		experience: $char_experience,
		health: $char_health,
		attack: $char_attack,
		defense: $char_defense,
		speed: $char_speed,
		rarity: $char_rarity,
		equipped: $char_equipped,
		created_on: time::now()
	}
`

func characterCreateVars(ch *model.Character) map[string]interface{} {
	return map[string]interface{}{
		"character_id":    ch.ID,
		"char_user":       ch.UserID,
		"char_guild":      ch.GuildID,
		"char_name":       ch.Name,
		"char_class":      string(ch.Class),
		"char_level":      ch.Level,
		"char_experience": ch.Experience,
		"char_health":     ch.Health,
		"char_attack":     ch.Attack,
		"char_defense":    ch.Defense,
		"char_speed":      ch.Speed,
		"char_rarity":     string(ch.Rarity),
		"char_equipped":   ch.Equipped,
	}
}

// CharacterRepository handles character data access
type CharacterRepository struct {
	db database.Database
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db database.Database) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// GetByID retrieves a character by ID
func (r *CharacterRepository) GetByID(ctx context.Context, id string) (*model.Character, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCharacterResult(result)
}

// ListByGuild retrieves all characters in a guild, strongest first
func (r *CharacterRepository) ListByGuild(ctx context.Context, guildID string) ([]*model.Character, error) {
	query := `SELECT * FROM character WHERE guild_id = $guild_id ORDER BY level DESC, created_on ASC`
	vars := map[string]interface{}{"guild_id": guildID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCharacterList(results)
}

// GetManyByIDs retrieves the named characters, restricted to one guild.
// Characters belonging to other guilds are silently absent from the result,
// which lets callers detect cross-guild roster references.
func (r *CharacterRepository) GetManyByIDs(ctx context.Context, guildID string, ids []string) ([]*model.Character, error) {
	if len(ids) == 0 {
		return []*model.Character{}, nil
	}

	query := `SELECT * FROM character WHERE guild_id = $guild_id AND <string> id IN $wanted_ids`
	vars := map[string]interface{}{
		"guild_id":   guildID,
		"wanted_ids": ids,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCharacterList(results)
}

// CreateWithDebit creates a character and applies the corresponding guild
// currency debit in one atomic batch. Reports database.ErrConflict when the
// guild revision is stale; the character is not created in that case.
func (r *CharacterRepository) CreateWithDebit(ctx context.Context, ch *model.Character, guildID string, revision int, guildUpdates map[string]interface{}) error {
	ch.ID = newRecordID("character")
	ch.GuildID = guildID

	tb := database.NewTxBuilder()
	appendGuildPatch(tb, guildID, revision, guildUpdates)
	tb.Add(characterCreateQuery, characterCreateVars(ch))

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isRevisionConflictError(err) {
			return database.ErrConflict
		}
		return err
	}
	return nil
}

// ApplyUpgrade updates a character's stats and debits the guild's gold in
// one atomic batch.
func (r *CharacterRepository) ApplyUpgrade(ctx context.Context, characterID string, characterUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}) error {
	vars := map[string]interface{}{"character_id": characterID}
	setClause := buildSetClause(characterUpdates, vars)

	tb := database.NewTxBuilder()
	appendGuildPatch(tb, guildID, revision, guildUpdates)
	tb.Add(`UPDATE type::record($character_id) SET `+setClause, vars)

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isRevisionConflictError(err) {
			return database.ErrConflict
		}
		return err
	}
	return nil
}

func parseCharacterResult(result interface{}) (*model.Character, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, database.ErrNotFound
	}

	var ch model.Character
	if err := decodeRecord(data, &ch); err != nil {
		return nil, errUnexpectedFormat
	}
	return &ch, nil
}

func parseCharacterList(results []interface{}) ([]*model.Character, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []*model.Character{}, nil
	}

	characters := make([]*model.Character, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			return nil, errUnexpectedFormat
		}
		var ch model.Character
		if err := decodeRecord(data, &ch); err != nil {
			return nil, errUnexpectedFormat
		}
		characters = append(characters, &ch)
	}
	return characters, nil
}
