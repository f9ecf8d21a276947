package service

import (
	"context"
	"errors"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/rng"
)

// BattleRepository defines the interface for battle storage
type BattleRepository interface {
	CreateResolved(ctx context.Context, battle *model.Battle, revision int, guildUpdates map[string]interface{}, experienceGains map[string]int) error
	ListByGuild(ctx context.Context, guildID string, limit int) ([]*model.Battle, error)
}

// Enemy power is a uniform fraction of team power in [0.8, 1.2). The team
// wins on a strict greater-than, so an exact tie is a defeat.
const (
	enemyPowerFloor = 0.8
	enemyPowerSpan  = 0.4
)

// Reward ranges, half-open
const (
	victoryGoldMin = 100
	victoryGoldMax = 300
	victoryExpMin  = 50
	victoryExpMax  = 150

	defeatGoldMin = 50
	defeatGoldMax = 150
	defeatExpMin  = 25
	defeatExpMax  = 75
)

// DefaultHistoryLimit bounds the battle log page size
const DefaultHistoryLimit = 20

// BattleService resolves battles against simulated opponents
type BattleService struct {
	guildRepo  GuildRepository
	charRepo   CharacterRepository
	battleRepo BattleRepository
	locks      *GuildLocks
	random     rng.Source
}

// BattleServiceConfig holds configuration for the battle service
type BattleServiceConfig struct {
	GuildRepo  GuildRepository
	CharRepo   CharacterRepository
	BattleRepo BattleRepository
	Locks      *GuildLocks
	Random     rng.Source
}

// NewBattleService creates a new battle service
func NewBattleService(cfg BattleServiceConfig) *BattleService {
	return &BattleService{
		guildRepo:  cfg.GuildRepo,
		charRepo:   cfg.CharRepo,
		battleRepo: cfg.BattleRepo,
		locks:      cfg.Locks,
		random:     cfg.Random,
	}
}

// Resolve fights the requested roster against a simulated opponent and
// persists the full outcome: the battle record, the guild reward credit,
// and each roster member's experience share.
func (s *BattleService) Resolve(ctx context.Context, userID string, req *model.ResolveBattleRequest) (*model.Battle, *model.Guild, error) {
	battleType := req.Type
	if battleType == "" {
		battleType = model.BattleTypePvE
	}
	switch battleType {
	case model.BattleTypePvE:
	case model.BattleTypePvP:
		return nil, nil, ErrBattleTypeReserved
	case model.BattleTypeTerritory:
		return nil, nil, ErrTerritoryBattleRoute
	default:
		return nil, nil, ErrInvalidBattleType
	}

	if len(req.CharacterIDs) < model.MinRosterSize {
		return nil, nil, ErrRosterEmpty
	}
	if len(req.CharacterIDs) > model.MaxRosterSize {
		return nil, nil, ErrRosterTooLarge
	}

	guild, err := s.guildRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, ErrGuildNotFound
		}
		return nil, nil, err
	}

	defer s.locks.Lock(guild.ID)()

	guild, err = s.guildRepo.GetByID(ctx, guild.ID)
	if err != nil {
		return nil, nil, err
	}

	roster, err := s.charRepo.GetManyByIDs(ctx, guild.ID, dedupe(req.CharacterIDs))
	if err != nil {
		return nil, nil, err
	}
	if len(roster) != len(dedupe(req.CharacterIDs)) {
		return nil, nil, ErrCharacterNotInGuild
	}

	teamPower := 0
	for _, ch := range roster {
		teamPower += ch.Power()
	}
	enemyPower := float64(teamPower) * (enemyPowerFloor + s.random.Float64()*enemyPowerSpan)
	victory := float64(teamPower) > enemyPower

	var gold, exp int
	result := model.BattleResultDefeat
	if victory {
		result = model.BattleResultVictory
		gold = rng.Between(s.random, victoryGoldMin, victoryGoldMax)
		exp = rng.Between(s.random, victoryExpMin, victoryExpMax)
	} else {
		gold = rng.Between(s.random, defeatGoldMin, defeatGoldMax)
		exp = rng.Between(s.random, defeatExpMin, defeatExpMax)
	}

	updates, err := ApplyDelta(guild, gold, 0)
	if err != nil {
		return nil, nil, err
	}
	updates["experience"] = guild.Experience + exp

	// Experience splits evenly across the roster, remainder dropped
	share := exp / len(roster)
	gains := make(map[string]int, len(roster))
	for _, ch := range roster {
		gains[ch.ID] = share
	}

	battle := &model.Battle{
		UserID:            userID,
		GuildID:           guild.ID,
		Type:              battleType,
		Status:            model.BattleStatusCompleted,
		Result:            result,
		RewardsGold:       gold,
		RewardsExperience: exp,
	}

	if err := s.battleRepo.CreateResolved(ctx, battle, guild.Revision, updates, gains); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, nil, ErrRevisionConflict
		}
		return nil, nil, err
	}

	guild.Gold += gold
	guild.Experience += exp
	guild.Revision++
	return battle, guild, nil
}

// History retrieves the guild's battle log, newest first
func (s *BattleService) History(ctx context.Context, userID string, limit int) ([]*model.Battle, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultHistoryLimit
	}

	guild, err := s.guildRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}

	return s.battleRepo.ListByGuild(ctx, guild.ID, limit)
}

// dedupe removes duplicate IDs, preserving order
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
