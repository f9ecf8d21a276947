package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// TerritoryRepository handles territory data access
type TerritoryRepository struct {
	db database.Database
}

// NewTerritoryRepository creates a new territory repository
func NewTerritoryRepository(db database.Database) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

// List retrieves all territories ordered by difficulty
func (r *TerritoryRepository) List(ctx context.Context) ([]*model.Territory, error) {
	query := `SELECT * FROM territory ORDER BY difficulty ASC, name ASC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseTerritoryList(results)
}

// GetByID retrieves a territory by ID
func (r *TerritoryRepository) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseTerritoryResult(result)
}

// Count returns the number of territories
func (r *TerritoryRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT count() AS count FROM territory GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// CreateMany seeds territories in one atomic batch. Territory IDs are
// derived from the name so seeding is idempotent at the record level.
func (r *TerritoryRepository) CreateMany(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error) {
	tb := database.NewTxBuilder()
	territories := make([]*model.Territory, 0, len(seeds))

	for _, seed := range seeds {
		territory := &model.Territory{
			ID:               "territory:" + territorySlug(seed.Name),
			Name:             seed.Name,
			Difficulty:       seed.Difficulty,
			GoldReward:       seed.GoldReward,
			ExperienceReward: seed.ExperienceReward,
		}
		tb.Add(`
			CREATE type::record($territory_id) CONTENT {
				name: $name,
				difficulty: $difficulty,
				gold_reward: $gold_reward,
				experience_reward: $experience_reward,
				conquered: false,
				created_on: time::now()
			}
		`, map[string]interface{}{
			"territory_id":      territory.ID,
			"name":              territory.Name,
			"difficulty":        territory.Difficulty,
			"gold_reward":       territory.GoldReward,
			"experience_reward": territory.ExperienceReward,
		})
		territories = append(territories, territory)
	}

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, territory := range territories {
		territory.CreatedOn = now
	}
	return territories, nil
}

// ApplyConquest transfers territory ownership, credits the winning guild,
// and logs the conquest battle in one atomic batch. When the territory was
// held by another guild, that guild's territory count is decremented in the
// same write-set.
func (r *TerritoryRepository) ApplyConquest(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error {
	battle.ID = newRecordID("battle")

	tb := database.NewTxBuilder()
	appendGuildPatch(tb, guildID, revision, guildUpdates)

	vars := map[string]interface{}{"territory_id": territoryID}
	setClause := buildSetClause(territoryUpdates, vars)
	tb.Add(`UPDATE type::record($territory_id) SET `+setClause, vars)
	tb.Add(battleCreateQuery, battleCreateVars(battle))

	if previousOwnerGuildID != "" && previousOwnerGuildID != guildID {
		tb.Add(`
			UPDATE type::record($previous_owner) SET
				territory_count = math::max([territory_count - 1, 0]),
				revision += 1,
				updated_on = time::now()
		`, map[string]interface{}{"previous_owner": previousOwnerGuildID})
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

// territorySlug derives a stable record ID fragment from a territory name
func territorySlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, " ", "_")
	return slug
}

func parseTerritoryResult(result interface{}) (*model.Territory, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, database.ErrNotFound
	}

	var territory model.Territory
	if err := decodeRecord(data, &territory); err != nil {
		return nil, errUnexpectedFormat
	}
	return &territory, nil
}

func parseTerritoryList(results []interface{}) ([]*model.Territory, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []*model.Territory{}, nil
	}

	territories := make([]*model.Territory, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			return nil, errUnexpectedFormat
		}
		var territory model.Territory
		if err := decodeRecord(data, &territory); err != nil {
			return nil, errUnexpectedFormat
		}
		territories = append(territories, &territory)
	}
	return territories, nil
}
