package service

import (
	"context"
	"errors"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// Character upgrade stat deltas per level
const (
	upgradeHealthGain  = 10
	upgradeAttackGain  = 5
	upgradeDefenseGain = 3
	upgradeSpeedGain   = 2
)

// GuildUpgradeCost is the flat gold price for one guild level
const GuildUpgradeCost = 2000

// CharacterUpgradeCost returns the gold price to level a character up from
// the given level
func CharacterUpgradeCost(level int) int {
	return level * 100
}

// ProgressionService resolves character and guild level-ups
type ProgressionService struct {
	guildRepo GuildRepository
	charRepo  CharacterRepository
	locks     *GuildLocks
}

// ProgressionServiceConfig holds configuration for the progression service
type ProgressionServiceConfig struct {
	GuildRepo GuildRepository
	CharRepo  CharacterRepository
	Locks     *GuildLocks
}

// NewProgressionService creates a new progression service
func NewProgressionService(cfg ProgressionServiceConfig) *ProgressionService {
	return &ProgressionService{
		guildRepo: cfg.GuildRepo,
		charRepo:  cfg.CharRepo,
		locks:     cfg.Locks,
	}
}

// UpgradeCharacter levels a character up, debiting the guild's gold. The
// stat gains and the debit land in one write-set. Accumulated experience
// resets to zero on level-up.
func (s *ProgressionService) UpgradeCharacter(ctx context.Context, userID, characterID string) (*model.Character, *model.Guild, error) {
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

	ch, err := s.charRepo.GetByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, ErrCharacterNotFound
		}
		return nil, nil, err
	}
	if ch.GuildID != guild.ID {
		return nil, nil, ErrCharacterNotFound
	}

	cost := CharacterUpgradeCost(ch.Level)
	guildUpdates, err := ApplyDelta(guild, -cost, 0)
	if err != nil {
		return nil, nil, err
	}

	charUpdates := map[string]interface{}{
		"level":      ch.Level + 1,
		"experience": 0,
		"health":     ch.Health + upgradeHealthGain,
		"attack":     ch.Attack + upgradeAttackGain,
		"defense":    ch.Defense + upgradeDefenseGain,
		"speed":      ch.Speed + upgradeSpeedGain,
	}

	if err := s.charRepo.ApplyUpgrade(ctx, ch.ID, charUpdates, guild.ID, guild.Revision, guildUpdates); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, nil, ErrRevisionConflict
		}
		return nil, nil, err
	}

	ch.Level++
	ch.Experience = 0
	ch.Health += upgradeHealthGain
	ch.Attack += upgradeAttackGain
	ch.Defense += upgradeDefenseGain
	ch.Speed += upgradeSpeedGain

	guild.Gold -= cost
	guild.Revision++
	return ch, guild, nil
}

// UpgradeGuild raises the guild level for a flat gold price. Accumulated
// guild experience resets to zero on level-up.
func (s *ProgressionService) UpgradeGuild(ctx context.Context, userID string) (*model.Guild, error) {
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

	updates, err := ApplyDelta(guild, -GuildUpgradeCost, 0)
	if err != nil {
		return nil, err
	}
	updates["level"] = guild.Level + 1
	updates["experience"] = 0

	updated, err := s.guildRepo.UpdateFields(ctx, guild.ID, guild.Revision, updates)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRevisionConflict
		}
		return nil, err
	}
	return updated, nil
}
