package service

import (
	"context"
	"errors"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/rng"
)

// recruitPool is the rarity multiset for a standard draw. Three common
// slots, two rare, one epic: a 3/6, 2/6, 1/6 distribution.
var recruitPool = []model.CharacterRarity{
	model.RarityCommon, model.RarityCommon, model.RarityCommon,
	model.RarityRare, model.RarityRare,
	model.RarityEpic,
}

// RecruitmentService resolves recruitment draws
type RecruitmentService struct {
	guildRepo GuildRepository
	charRepo  CharacterRepository
	locks     *GuildLocks
	random    rng.Source
}

// RecruitmentServiceConfig holds configuration for the recruitment service
type RecruitmentServiceConfig struct {
	GuildRepo GuildRepository
	CharRepo  CharacterRepository
	Locks     *GuildLocks
	Random    rng.Source
}

// NewRecruitmentService creates a new recruitment service
func NewRecruitmentService(cfg RecruitmentServiceConfig) *RecruitmentService {
	return &RecruitmentService{
		guildRepo: cfg.GuildRepo,
		charRepo:  cfg.CharRepo,
		locks:     cfg.Locks,
		random:    cfg.Random,
	}
}

// Recruit performs a standard gold recruitment for the user's guild. The
// debit and the new character land in one write-set: a failed debit never
// produces a character, and vice versa.
func (s *RecruitmentService) Recruit(ctx context.Context, userID string) (*model.Character, *model.Guild, error) {
	rarity := rng.Pick(s.random, recruitPool)
	return s.recruit(ctx, userID, rarity, -model.RandomRecruitCost, 0)
}

// RecruitFixed recruits a character of a known rarity for an explicit price.
// The shop uses it: its recruit items sell a stated rarity, not a draw.
func (s *RecruitmentService) RecruitFixed(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error) {
	return s.recruit(ctx, userID, rarity, goldDelta, gemsDelta)
}

func (s *RecruitmentService) recruit(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error) {
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

	updates, err := ApplyDelta(guild, goldDelta, gemsDelta)
	if err != nil {
		return nil, nil, err
	}

	recruit := s.roll(userID, rarity)
	if err := s.charRepo.CreateWithDebit(ctx, recruit, guild.ID, guild.Revision, updates); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, nil, ErrRevisionConflict
		}
		return nil, nil, err
	}

	guild.Gold += goldDelta
	guild.Gems += gemsDelta
	guild.Revision++
	return recruit, guild, nil
}

// roll draws a recruit of the given rarity: uniform name and class, base
// stats scaled by the rarity multiplier.
func (s *RecruitmentService) roll(userID string, rarity model.CharacterRarity) *model.Character {
	mult := rarity.Multiplier()

	return &model.Character{
		UserID:   userID,
		Name:     rng.Pick(s.random, model.RecruitNames),
		Class:    rng.Pick(s.random, model.CharacterClasses),
		Level:    1,
		Health:   int(float64(model.BaseHealth) * mult),
		Attack:   int(float64(model.BaseAttack) * mult),
		Defense:  int(float64(model.BaseDefense) * mult),
		Speed:    int(float64(model.BaseSpeed) * mult),
		Rarity:   rarity,
		Equipped: false,
	}
}
