package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// GuildRepository handles guild data access
type GuildRepository struct {
	db database.Database
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db database.Database) *GuildRepository {
	return &GuildRepository{db: db}
}

// CreateWithStarters creates a guild together with its starter roster in a
// single atomic batch. The guild and character IDs are generated up front
// and written back to the models on success.
func (r *GuildRepository) CreateWithStarters(ctx context.Context, guild *model.Guild, starters []*model.Character) error {
	guild.ID = newRecordID("guild")

	tb := database.NewTxBuilder()
	tb.Add(`
		CREATE type::record($guild_id) CONTENT {
			user_id: $user_id,
			name: $name,
			description: $description,
			level: $level,
			experience: $experience,
			gold: $gold,
			gems: $gems,
			territory_count: $territory_count,
			member_count: $member_count,
			revision: 0,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, map[string]interface{}{
		"guild_id":        guild.ID,
		"user_id":         guild.UserID,
		"name":            guild.Name,
		"description":     guild.Description,
		"level":           guild.Level,
		"experience":      guild.Experience,
		"gold":            guild.Gold,
		"gems":            guild.Gems,
		"territory_count": guild.TerritoryCount,
		"member_count":    guild.MemberCount,
	})

	for _, ch := range starters {
		ch.ID = newRecordID("character")
		ch.GuildID = guild.ID
		ch.UserID = guild.UserID
		tb.Add(characterCreateQuery, characterCreateVars(ch))
	}

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: guild already exists for user", database.ErrDuplicate)
		}
		return err
	}

	now := time.Now().UTC()
	guild.CreatedOn = now
	guild.UpdatedOn = now
	for _, ch := range starters {
		ch.CreatedOn = now
	}
	return nil
}

// GetByID retrieves a guild by ID
func (r *GuildRepository) GetByID(ctx context.Context, id string) (*model.Guild, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseGuildResult(result)
}

// GetByUserID retrieves the guild owned by a user
func (r *GuildRepository) GetByUserID(ctx context.Context, userID string) (*model.Guild, error) {
	query := `SELECT * FROM guild WHERE user_id = $user_id LIMIT 1`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseGuildResult(result)
}

// UpdateFields applies a partial update to a guild, guarded by the expected
// revision. Reports database.ErrConflict when the revision moved underneath
// the caller, database.ErrNotFound when the guild does not exist.
func (r *GuildRepository) UpdateFields(ctx context.Context, id string, revision int, updates map[string]interface{}) (*model.Guild, error) {
	vars := map[string]interface{}{
		"id":       id,
		"revision": revision,
	}
	setClause := buildSetClause(updates, vars)
	if setClause != "" {
		setClause += ", "
	}

	query := fmt.Sprintf(`
		UPDATE type::record($id) SET %srevision += 1, updated_on = time::now()
		WHERE revision = $revision
		RETURN AFTER
	`, setClause)

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	if err == nil {
		if guild, parseErr := parseGuildResult(result); parseErr == nil {
			return guild, nil
		}
	}

	// No row matched: distinguish a missing guild from a stale revision.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: guild %s at revision %d", database.ErrConflict, id, revision)
}

// appendGuildPatch adds a revision-guarded guild update to a transaction.
// The THROW aborts the whole batch when the revision is stale, so no other
// statement in the write-set survives a lost race.
func appendGuildPatch(tb *database.TxBuilder, guildID string, revision int, updates map[string]interface{}) {
	vars := map[string]interface{}{
		"guild_id": guildID,
		"revision": revision,
	}
	setClause := buildSetClause(updates, vars)
	if setClause != "" {
		setClause += ", "
	}

	tb.Add(fmt.Sprintf(`
		LET $guild_rows = UPDATE type::record($guild_id) SET %srevision += 1, updated_on = time::now()
		WHERE revision = $revision
	`, setClause), vars)
	tb.AddRaw(`IF array::len($guild_rows) == 0 { THROW "revision conflict" }`)
}

func parseGuildResult(result interface{}) (*model.Guild, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, database.ErrNotFound
	}

	var guild model.Guild
	if err := decodeRecord(data, &guild); err != nil {
		return nil, errUnexpectedFormat
	}
	return &guild, nil
}
