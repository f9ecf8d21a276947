package service

import (
	"context"
	"errors"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// catalog is the fixed shop inventory. Prices are server-authoritative;
// clients only ever send item IDs.
var catalog = []model.ShopItem{
	{
		ID:          model.ItemRecruitCommon,
		Name:        "Recruit Hero",
		Description: "Recruit a common hero to your guild",
		Price:       model.RandomRecruitCost,
		Currency:    model.CurrencyGold,
		Type:        model.ShopItemCharacter,
		Available:   true,
	},
	{
		ID:          model.ItemRecruitRare,
		Name:        "Rare Hero Contract",
		Description: "Recruit a rare hero to your guild",
		Price:       25,
		Currency:    model.CurrencyGems,
		Type:        model.ShopItemCharacter,
		Available:   true,
	},
	{
		ID:          model.ItemGoldPackSmall,
		Name:        "Small Gold Pack",
		Description: "A pouch of 1,000 gold",
		Price:       10,
		Currency:    model.CurrencyGems,
		Type:        model.ShopItemResource,
		Available:   true,
	},
	{
		ID:          model.ItemGoldPackLarge,
		Name:        "Large Gold Pack",
		Description: "A chest of 5,000 gold",
		Price:       40,
		Currency:    model.CurrencyGems,
		Type:        model.ShopItemResource,
		Available:   true,
	},
	{
		ID:          model.ItemExperienceBoost,
		Name:        "Experience Boost",
		Description: "Double battle experience for a day",
		Price:       15,
		Currency:    model.CurrencyGems,
		Type:        model.ShopItemUpgrade,
		Available:   false,
	},
	{
		ID:          model.ItemGuildUpgrade,
		Name:        "Guild Hall Upgrade",
		Description: "Raise your guild level by one",
		Price:       GuildUpgradeCost,
		Currency:    model.CurrencyGold,
		Type:        model.ShopItemUpgrade,
		Available:   true,
	},
}

// Recruiter is the recruitment surface the shop drives. Shop recruit items
// sell a stated rarity at a stated price, never a weighted draw.
type Recruiter interface {
	RecruitFixed(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error)
}

// GuildUpgrader is the progression surface the shop drives
type GuildUpgrader interface {
	UpgradeGuild(ctx context.Context, userID string) (*model.Guild, error)
}

// ShopService serves the catalog and dispatches purchases to the resolvers
// that own each item's effect
type ShopService struct {
	guildRepo   GuildRepository
	recruiter   Recruiter
	progression GuildUpgrader
	locks       *GuildLocks
}

// ShopServiceConfig holds configuration for the shop service
type ShopServiceConfig struct {
	GuildRepo   GuildRepository
	Recruiter   Recruiter
	Progression GuildUpgrader
	Locks       *GuildLocks
}

// NewShopService creates a new shop service
func NewShopService(cfg ShopServiceConfig) *ShopService {
	return &ShopService{
		guildRepo:   cfg.GuildRepo,
		recruiter:   cfg.Recruiter,
		progression: cfg.Progression,
		locks:       cfg.Locks,
	}
}

// Catalog returns the shop inventory
func (s *ShopService) Catalog() []model.ShopItem {
	items := make([]model.ShopItem, len(catalog))
	copy(items, catalog)
	return items
}

// Purchase buys one catalog item for the user's guild
func (s *ShopService) Purchase(ctx context.Context, userID string, req *model.PurchaseRequest) (*model.PurchaseResult, error) {
	item, ok := s.findItem(req.ItemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if !item.Available {
		return nil, ErrItemNotAvailable
	}

	switch item.ID {
	case model.ItemRecruitCommon:
		ch, guild, err := s.recruiter.RecruitFixed(ctx, userID, model.RarityCommon, -item.Price, 0)
		if err != nil {
			return nil, err
		}
		return &model.PurchaseResult{Item: item, Guild: guild, Character: ch}, nil

	case model.ItemRecruitRare:
		ch, guild, err := s.recruiter.RecruitFixed(ctx, userID, model.RarityRare, 0, -item.Price)
		if err != nil {
			return nil, err
		}
		return &model.PurchaseResult{Item: item, Guild: guild, Character: ch}, nil

	case model.ItemGoldPackSmall:
		return s.exchange(ctx, userID, item, model.GoldPackSmallAmount)

	case model.ItemGoldPackLarge:
		return s.exchange(ctx, userID, item, model.GoldPackLargeAmount)

	case model.ItemGuildUpgrade:
		guild, err := s.progression.UpgradeGuild(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &model.PurchaseResult{Item: item, Guild: guild}, nil
	}

	return nil, ErrItemNotAvailable
}

// exchange converts gems into gold at the pack's fixed rate
func (s *ShopService) exchange(ctx context.Context, userID string, item model.ShopItem, goldAmount int) (*model.PurchaseResult, error) {
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

	updates, err := ApplyDelta(guild, goldAmount, -item.Price)
	if err != nil {
		return nil, err
	}

	updated, err := s.guildRepo.UpdateFields(ctx, guild.ID, guild.Revision, updates)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRevisionConflict
		}
		return nil, err
	}

	return &model.PurchaseResult{Item: item, Guild: updated}, nil
}

func (s *ShopService) findItem(id string) (model.ShopItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return model.ShopItem{}, false
}
