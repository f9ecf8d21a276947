package service

import (
	"context"
	"errors"
	"testing"

	"github.com/emberforge/guildmaster/internal/model"
)

type mockRecruiter struct {
	recruitFixedFunc func(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error)
}

func (m *mockRecruiter) RecruitFixed(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error) {
	if m.recruitFixedFunc != nil {
		return m.recruitFixedFunc(ctx, userID, rarity, goldDelta, gemsDelta)
	}
	return nil, nil, nil
}

type mockGuildUpgrader struct {
	upgradeGuildFunc func(ctx context.Context, userID string) (*model.Guild, error)
}

func (m *mockGuildUpgrader) UpgradeGuild(ctx context.Context, userID string) (*model.Guild, error) {
	if m.upgradeGuildFunc != nil {
		return m.upgradeGuildFunc(ctx, userID)
	}
	return nil, nil
}

func newShopService(guildRepo *mockGuildRepo, recruiter *mockRecruiter, upgrader *mockGuildUpgrader) *ShopService {
	return NewShopService(ShopServiceConfig{
		GuildRepo:   guildRepo,
		Recruiter:   recruiter,
		Progression: upgrader,
		Locks:       NewGuildLocks(),
	})
}

func TestCatalog_Contents(t *testing.T) {
	t.Parallel()

	items := newShopService(&mockGuildRepo{}, &mockRecruiter{}, &mockGuildUpgrader{}).Catalog()
	if len(items) != 6 {
		t.Fatalf("expected 6 catalog items, got %d", len(items))
	}

	byID := make(map[string]model.ShopItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	if item := byID[model.ItemRecruitCommon]; item.Price != model.RandomRecruitCost || item.Currency != model.CurrencyGold {
		t.Errorf("unexpected recruit item: %+v", item)
	}
	if item := byID[model.ItemGuildUpgrade]; item.Price != GuildUpgradeCost || item.Currency != model.CurrencyGold {
		t.Errorf("unexpected guild upgrade item: %+v", item)
	}
	if byID[model.ItemExperienceBoost].Available {
		t.Error("experience boost must be listed but unavailable")
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{}, &mockGuildUpgrader{})
	items := svc.Catalog()
	items[0].Price = 1

	if svc.Catalog()[0].Price == 1 {
		t.Error("mutating the returned catalog must not affect the shop")
	}
}

func TestPurchase_UnknownItem(t *testing.T) {
	t.Parallel()

	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{}, &mockGuildUpgrader{})
	if _, err := svc.Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: "mystery_box"}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestPurchase_UnavailableItem(t *testing.T) {
	t.Parallel()

	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{}, &mockGuildUpgrader{})
	if _, err := svc.Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemExperienceBoost}); !errors.Is(err, ErrItemNotAvailable) {
		t.Errorf("expected ErrItemNotAvailable, got %v", err)
	}
}

func TestPurchase_RecruitDispatch(t *testing.T) {
	t.Parallel()

	recruit := &model.Character{ID: "character:new", Rarity: model.RarityCommon}
	guild := testGuild()
	var gotRarity model.CharacterRarity
	var gotGold, gotGems int
	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{
		recruitFixedFunc: func(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error) {
			gotRarity, gotGold, gotGems = rarity, goldDelta, gemsDelta
			return recruit, guild, nil
		},
	}, &mockGuildUpgrader{})

	result, err := svc.Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemRecruitCommon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Character != recruit {
		t.Error("expected the recruit in the purchase result")
	}
	if result.Item.ID != model.ItemRecruitCommon {
		t.Errorf("unexpected item: %+v", result.Item)
	}
	// The common recruit item sells exactly a common, priced in gold
	if gotRarity != model.RarityCommon {
		t.Errorf("expected a common recruit, got %s", gotRarity)
	}
	if gotGold != -model.RandomRecruitCost || gotGems != 0 {
		t.Errorf("unexpected price forwarded: gold %d gems %d", gotGold, gotGems)
	}
}

func TestPurchase_RareRecruitFixedRarity(t *testing.T) {
	t.Parallel()

	var gotRarity model.CharacterRarity
	var gotGold, gotGems int
	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{
		recruitFixedFunc: func(ctx context.Context, userID string, rarity model.CharacterRarity, goldDelta, gemsDelta int) (*model.Character, *model.Guild, error) {
			gotRarity, gotGold, gotGems = rarity, goldDelta, gemsDelta
			return &model.Character{Rarity: rarity}, testGuild(), nil
		},
	}, &mockGuildUpgrader{})

	result, err := svc.Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemRecruitRare})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRarity != model.RarityRare {
		t.Errorf("expected a rare recruit, got %s", gotRarity)
	}
	if gotGold != 0 || gotGems != -25 {
		t.Errorf("unexpected price forwarded: gold %d gems %d", gotGold, gotGems)
	}
	if result.Character.Rarity != model.RarityRare {
		t.Errorf("unexpected recruit rarity: %s", result.Character.Rarity)
	}
}

func TestPurchase_GoldPackExchange(t *testing.T) {
	t.Parallel()

	current := testGuild()
	var gotUpdates map[string]interface{}
	guildRepo := battleGuildRepo(current)
	guildRepo.updateFieldsFunc = func(ctx context.Context, id string, revision int, updates map[string]interface{}) (*model.Guild, error) {
		gotUpdates = updates
		updated := *current
		updated.Gold = current.Gold + model.GoldPackSmallAmount
		updated.Gems = current.Gems - 10
		updated.Revision = revision + 1
		return &updated, nil
	}

	result, err := newShopService(guildRepo, &mockRecruiter{}, &mockGuildUpgrader{}).Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemGoldPackSmall})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotUpdates["gold"] != model.StartingGold+model.GoldPackSmallAmount {
		t.Errorf("expected gold credit staged, got %v", gotUpdates)
	}
	if gotUpdates["gems"] != model.StartingGems-10 {
		t.Errorf("expected gem debit staged, got %v", gotUpdates)
	}
	if result.Guild.Gold != model.StartingGold+model.GoldPackSmallAmount {
		t.Errorf("unexpected balance: %d", result.Guild.Gold)
	}
	if result.Character != nil {
		t.Error("gold packs must not return a character")
	}
}

func TestPurchase_GoldPackInsufficientGems(t *testing.T) {
	t.Parallel()

	broke := testGuild()
	broke.Gems = 9

	if _, err := newShopService(battleGuildRepo(broke), &mockRecruiter{}, &mockGuildUpgrader{}).Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemGoldPackSmall}); !errors.Is(err, ErrInsufficientGems) {
		t.Errorf("expected ErrInsufficientGems, got %v", err)
	}
}

func TestPurchase_GuildUpgradeDispatch(t *testing.T) {
	t.Parallel()

	upgraded := testGuild()
	upgraded.Level = 2
	svc := newShopService(&mockGuildRepo{}, &mockRecruiter{}, &mockGuildUpgrader{
		upgradeGuildFunc: func(ctx context.Context, userID string) (*model.Guild, error) {
			return upgraded, nil
		},
	})

	result, err := svc.Purchase(context.Background(), "user:demo", &model.PurchaseRequest{ItemID: model.ItemGuildUpgrade})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Guild.Level != 2 {
		t.Errorf("expected upgraded guild, got level %d", result.Guild.Level)
	}
}
