package service

import (
	"context"
	"errors"
	"strings"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// GuildRepository defines the interface for guild storage
type GuildRepository interface {
	CreateWithStarters(ctx context.Context, guild *model.Guild, starters []*model.Character) error
	GetByID(ctx context.Context, id string) (*model.Guild, error)
	GetByUserID(ctx context.Context, userID string) (*model.Guild, error)
	UpdateFields(ctx context.Context, id string, revision int, updates map[string]interface{}) (*model.Guild, error)
}

// CharacterRepository defines the interface for character storage
type CharacterRepository interface {
	GetByID(ctx context.Context, id string) (*model.Character, error)
	ListByGuild(ctx context.Context, guildID string) ([]*model.Character, error)
	GetManyByIDs(ctx context.Context, guildID string, ids []string) ([]*model.Character, error)
	CreateWithDebit(ctx context.Context, ch *model.Character, guildID string, revision int, guildUpdates map[string]interface{}) error
	ApplyUpgrade(ctx context.Context, characterID string, characterUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}) error
}

// GuildService handles guild lifecycle and profile management
type GuildService struct {
	guildRepo GuildRepository
	charRepo  CharacterRepository
	locks     *GuildLocks
}

// GuildServiceConfig holds configuration for the guild service
type GuildServiceConfig struct {
	GuildRepo GuildRepository
	CharRepo  CharacterRepository
	Locks     *GuildLocks
}

// NewGuildService creates a new guild service
func NewGuildService(cfg GuildServiceConfig) *GuildService {
	return &GuildService{
		guildRepo: cfg.GuildRepo,
		charRepo:  cfg.CharRepo,
		locks:     cfg.Locks,
	}
}

// EnsureGuild returns the user's guild, creating it with the starter roster
// on first contact. The returned bool reports whether a guild was created.
func (s *GuildService) EnsureGuild(ctx context.Context, userID string) (*model.Guild, bool, error) {
	guild, err := s.guildRepo.GetByUserID(ctx, userID)
	if err == nil {
		return guild, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	guild = &model.Guild{
		UserID:      userID,
		Name:        model.DefaultGuildName,
		Description: model.DefaultGuildDesc,
		Level:       1,
		Gold:        model.StartingGold,
		Gems:        model.StartingGems,
		MemberCount: 1,
	}

	if err := s.guildRepo.CreateWithStarters(ctx, guild, starterRoster(userID)); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// Lost a creation race; the other request's guild wins.
			existing, getErr := s.guildRepo.GetByUserID(ctx, userID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return guild, true, nil
}

// Get retrieves the user's guild
func (s *GuildService) Get(ctx context.Context, userID string) (*model.Guild, error) {
	guild, err := s.guildRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}
	return guild, nil
}

// UpdateProfile renames or re-describes the user's guild
func (s *GuildService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateGuildRequest) (*model.Guild, error) {
	guild, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	defer s.locks.Lock(guild.ID)()

	guild, err = s.guildRepo.GetByID(ctx, guild.ID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrGuildNameRequired
		}
		if len(name) > model.MaxGuildNameLength {
			return nil, ErrGuildNameTooLong
		}
		updates["name"] = name
	}
	if req.Description != nil {
		if len(*req.Description) > model.MaxGuildDescLength {
			return nil, ErrGuildDescTooLong
		}
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return guild, nil
	}

	updated, err := s.guildRepo.UpdateFields(ctx, guild.ID, guild.Revision, updates)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRevisionConflict
		}
		return nil, err
	}
	return updated, nil
}

// Roster retrieves the user's characters, strongest first
func (s *GuildService) Roster(ctx context.Context, userID string) ([]*model.Character, error) {
	guild, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.charRepo.ListByGuild(ctx, guild.ID)
}

// starterRoster builds the two characters every new guild begins with
func starterRoster(userID string) []*model.Character {
	return []*model.Character{
		{
			UserID:   userID,
			Name:     "Aria",
			Class:    model.ClassWarrior,
			Level:    1,
			Health:   120,
			Attack:   25,
			Defense:  20,
			Speed:    12,
			Rarity:   model.RarityCommon,
			Equipped: true,
		},
		{
			UserID:   userID,
			Name:     "Zephyr",
			Class:    model.ClassMage,
			Level:    1,
			Health:   80,
			Attack:   30,
			Defense:  10,
			Speed:    15,
			Rarity:   model.RarityRare,
			Equipped: true,
		},
	}
}
