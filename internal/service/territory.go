package service

import (
	"context"
	"errors"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/rng"
)

// TerritoryRepository defines the interface for territory storage
type TerritoryRepository interface {
	List(ctx context.Context) ([]*model.Territory, error)
	GetByID(ctx context.Context, id string) (*model.Territory, error)
	Count(ctx context.Context) (int, error)
	CreateMany(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error)
	ApplyConquest(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error
}

// conquestSuccessChance is the flat success probability once the guild
// meets the level gate
const conquestSuccessChance = 0.7

// ConquestOutcome reports one conquest attempt. Territory is the updated
// record on success, the unchanged one on failure. Battle is nil on
// failure: failed attempts leave no trace.
type ConquestOutcome struct {
	Success   bool             `json:"success"`
	Territory *model.Territory `json:"territory"`
	Battle    *model.Battle    `json:"battle"`
	Guild     *model.Guild     `json:"guild"`
}

// TerritoryService resolves territory listing and conquest
type TerritoryService struct {
	territoryRepo TerritoryRepository
	guildRepo     GuildRepository
	locks         *GuildLocks
	random        rng.Source
}

// TerritoryServiceConfig holds configuration for the territory service
type TerritoryServiceConfig struct {
	TerritoryRepo TerritoryRepository
	GuildRepo     GuildRepository
	Locks         *GuildLocks
	Random        rng.Source
}

// NewTerritoryService creates a new territory service
func NewTerritoryService(cfg TerritoryServiceConfig) *TerritoryService {
	return &TerritoryService{
		territoryRepo: cfg.TerritoryRepo,
		guildRepo:     cfg.GuildRepo,
		locks:         cfg.Locks,
		random:        cfg.Random,
	}
}

// List retrieves the world map, seeding the canonical territories on first
// contact with an empty world.
func (s *TerritoryService) List(ctx context.Context) ([]*model.Territory, error) {
	territories, err := s.territoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(territories) > 0 {
		return territories, nil
	}
	return s.territoryRepo.CreateMany(ctx, model.SeedTerritories)
}

// Seed creates the canonical territories. Fails with ErrAlreadySeeded when
// any territory exists.
func (s *TerritoryService) Seed(ctx context.Context) ([]*model.Territory, error) {
	count, err := s.territoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}
	return s.territoryRepo.CreateMany(ctx, model.SeedTerritories)
}

// Conquer attempts to take a territory for the user's guild. The guild must
// meet the territory's level gate; past that the attempt succeeds with a
// flat probability. A successful conquest transfers ownership, credits the
// rewards, logs a territory battle, and adjusts both guilds' territory
// counts in one write-set. A failed attempt writes nothing and may be
// retried freely.
func (s *TerritoryService) Conquer(ctx context.Context, userID, territoryID string) (*ConquestOutcome, error) {
	guild, err := s.guildRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}

	defer s.locks.Lock(guild.ID)()

	guild, err = s.guildRepo.GetByID(ctx, guild.ID)
	if err != nil {
		return nil, err
	}

	territory, err := s.territoryRepo.GetByID(ctx, territoryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTerritoryNotFound
		}
		return nil, err
	}

	if territory.OwnerGuildID == guild.ID {
		return nil, ErrTerritoryOwnedBySelf
	}
	if guild.Level < territory.Difficulty {
		return nil, ErrGuildLevelTooLow
	}

	if !rng.Chance(s.random, conquestSuccessChance) {
		return &ConquestOutcome{Success: false, Territory: territory, Guild: guild}, nil
	}

	battle := &model.Battle{
		UserID:            userID,
		GuildID:           guild.ID,
		Type:              model.BattleTypeTerritory,
		Status:            model.BattleStatusCompleted,
		Result:            model.BattleResultVictory,
		RewardsGold:       territory.GoldReward,
		RewardsExperience: territory.ExperienceReward,
	}

	guildUpdates, err := ApplyDelta(guild, territory.GoldReward, 0)
	if err != nil {
		return nil, err
	}
	guildUpdates["experience"] = guild.Experience + territory.ExperienceReward
	guildUpdates["territory_count"] = guild.TerritoryCount + 1

	territoryUpdates := map[string]interface{}{
		"owner_guild_id": guild.ID,
		"owner_user_id":  userID,
		"conquered":      true,
	}

	if err := s.territoryRepo.ApplyConquest(ctx, territory.ID, territoryUpdates, guild.ID, guild.Revision, guildUpdates, territory.OwnerGuildID, battle); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRevisionConflict
		}
		return nil, err
	}

	guild.Gold += territory.GoldReward
	guild.Experience += territory.ExperienceReward
	guild.TerritoryCount++
	guild.Revision++

	territory.OwnerGuildID = guild.ID
	territory.OwnerUserID = userID
	territory.Conquered = true

	return &ConquestOutcome{Success: true, Territory: territory, Battle: battle, Guild: guild}, nil
}
