package service

import (
	"context"
	"errors"
	"testing"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

type mockTerritoryRepo struct {
	listFunc          func(ctx context.Context) ([]*model.Territory, error)
	getByIDFunc       func(ctx context.Context, id string) (*model.Territory, error)
	countFunc         func(ctx context.Context) (int, error)
	createManyFunc    func(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error)
	applyConquestFunc func(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error
}

func (m *mockTerritoryRepo) List(ctx context.Context) ([]*model.Territory, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockTerritoryRepo) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockTerritoryRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockTerritoryRepo) CreateMany(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error) {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, seeds)
	}
	territories := make([]*model.Territory, 0, len(seeds))
	for _, seed := range seeds {
		territories = append(territories, &model.Territory{
			ID:               "territory:" + seed.Name,
			Name:             seed.Name,
			Difficulty:       seed.Difficulty,
			GoldReward:       seed.GoldReward,
			ExperienceReward: seed.ExperienceReward,
		})
	}
	return territories, nil
}

func (m *mockTerritoryRepo) ApplyConquest(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error {
	if m.applyConquestFunc != nil {
		return m.applyConquestFunc(ctx, territoryID, territoryUpdates, guildID, revision, guildUpdates, previousOwnerGuildID, battle)
	}
	battle.ID = "battle:conquest"
	return nil
}

func testTerritory() *model.Territory {
	return &model.Territory{
		ID:               "territory:whispering_woods",
		Name:             "Whispering Woods",
		Difficulty:       1,
		GoldReward:       150,
		ExperienceReward: 75,
	}
}

func newTerritoryService(territoryRepo *mockTerritoryRepo, guildRepo *mockGuildRepo, src *scriptedSource) *TerritoryService {
	return NewTerritoryService(TerritoryServiceConfig{
		TerritoryRepo: territoryRepo,
		GuildRepo:     guildRepo,
		Locks:         NewGuildLocks(),
		Random:        src,
	})
}

func TestList_SeedsEmptyWorld(t *testing.T) {
	t.Parallel()

	seeded := false
	svc := newTerritoryService(&mockTerritoryRepo{
		listFunc: func(ctx context.Context) ([]*model.Territory, error) {
			return []*model.Territory{}, nil
		},
		createManyFunc: func(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error) {
			seeded = true
			if len(seeds) != len(model.SeedTerritories) {
				t.Errorf("expected the canonical seeds, got %d", len(seeds))
			}
			return []*model.Territory{testTerritory()}, nil
		},
	}, &mockGuildRepo{}, &scriptedSource{})

	territories, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seeded {
		t.Error("an empty world must be seeded on first list")
	}
	if len(territories) != 1 {
		t.Errorf("expected seeded territories back, got %d", len(territories))
	}
}

func TestList_DoesNotReseed(t *testing.T) {
	t.Parallel()

	svc := newTerritoryService(&mockTerritoryRepo{
		listFunc: func(ctx context.Context) ([]*model.Territory, error) {
			return []*model.Territory{testTerritory()}, nil
		},
		createManyFunc: func(ctx context.Context, seeds []model.SeedTerritory) ([]*model.Territory, error) {
			t.Error("CreateMany must not run for a populated world")
			return nil, nil
		},
	}, &mockGuildRepo{}, &scriptedSource{})

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSeed_AlreadySeeded(t *testing.T) {
	t.Parallel()

	svc := newTerritoryService(&mockTerritoryRepo{
		countFunc: func(ctx context.Context) (int, error) {
			return 5, nil
		},
	}, &mockGuildRepo{}, &scriptedSource{})

	if _, err := svc.Seed(context.Background()); !errors.Is(err, ErrAlreadySeeded) {
		t.Errorf("expected ErrAlreadySeeded, got %v", err)
	}
}

func TestConquer_Success(t *testing.T) {
	t.Parallel()

	current := testGuild()
	territory := testTerritory()
	territory.OwnerGuildID = "guild:rival"
	territory.Conquered = true

	var gotTerritoryUpdates, gotGuildUpdates map[string]interface{}
	var gotPreviousOwner string
	repo := &mockTerritoryRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Territory, error) {
			return territory, nil
		},
		applyConquestFunc: func(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error {
			battle.ID = "battle:conquest"
			gotTerritoryUpdates = territoryUpdates
			gotGuildUpdates = guildUpdates
			gotPreviousOwner = previousOwnerGuildID
			return nil
		},
	}

	// 0.1 < 0.7 success chance
	svc := newTerritoryService(repo, battleGuildRepo(current), &scriptedSource{floats: []float64{0.1}})

	outcome, err := svc.Conquer(context.Background(), "user:demo", territory.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !outcome.Success {
		t.Fatal("expected a successful conquest")
	}
	if outcome.Battle.Type != model.BattleTypeTerritory || outcome.Battle.Result != model.BattleResultVictory {
		t.Errorf("unexpected battle record: %+v", outcome.Battle)
	}
	if outcome.Battle.RewardsGold != 150 || outcome.Battle.RewardsExperience != 75 {
		t.Errorf("unexpected battle rewards: %+v", outcome.Battle)
	}

	if outcome.Guild.Gold != model.StartingGold+150 {
		t.Errorf("expected reward credited, got %d", outcome.Guild.Gold)
	}
	if outcome.Guild.TerritoryCount != 1 {
		t.Errorf("expected territory count 1, got %d", outcome.Guild.TerritoryCount)
	}
	if gotGuildUpdates["territory_count"] != 1 || gotGuildUpdates["experience"] != 75 {
		t.Errorf("unexpected staged guild updates: %v", gotGuildUpdates)
	}

	if gotTerritoryUpdates["owner_guild_id"] != current.ID || gotTerritoryUpdates["conquered"] != true {
		t.Errorf("unexpected staged territory updates: %v", gotTerritoryUpdates)
	}
	if gotPreviousOwner != "guild:rival" {
		t.Errorf("previous owner must be passed for the count decrement, got %q", gotPreviousOwner)
	}

	if outcome.Territory.OwnerGuildID != current.ID || !outcome.Territory.Conquered {
		t.Errorf("territory must reflect new ownership: %+v", outcome.Territory)
	}
}

func TestConquer_FailedAttemptWritesNothing(t *testing.T) {
	t.Parallel()

	current := testGuild()
	territory := testTerritory()

	// 0.9 >= 0.7 fails the roll
	svc := newTerritoryService(&mockTerritoryRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Territory, error) {
			return territory, nil
		},
		applyConquestFunc: func(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error {
			t.Error("a failed attempt must not write anything")
			return nil
		},
	}, battleGuildRepo(current), &scriptedSource{floats: []float64{0.9}})

	outcome, err := svc.Conquer(context.Background(), "user:demo", territory.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Success {
		t.Fatal("expected a failed conquest")
	}
	if outcome.Battle != nil {
		t.Errorf("failed attempts leave no battle record, got %+v", outcome.Battle)
	}
	if outcome.Guild.Gold != model.StartingGold || outcome.Guild.Revision != current.Revision {
		t.Errorf("guild must be untouched on failure: %+v", outcome.Guild)
	}
	if outcome.Territory.OwnerGuildID != "" {
		t.Errorf("ownership must not change, got %q", outcome.Territory.OwnerGuildID)
	}
}

func TestConquer_LevelGate(t *testing.T) {
	t.Parallel()

	current := testGuild() // level 1
	territory := testTerritory()
	territory.Difficulty = 3

	svc := newTerritoryService(&mockTerritoryRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Territory, error) {
			return territory, nil
		},
	}, battleGuildRepo(current), &scriptedSource{})

	if _, err := svc.Conquer(context.Background(), "user:demo", territory.ID); !errors.Is(err, ErrGuildLevelTooLow) {
		t.Errorf("expected ErrGuildLevelTooLow, got %v", err)
	}
}

func TestConquer_AlreadyOwned(t *testing.T) {
	t.Parallel()

	current := testGuild()
	territory := testTerritory()
	territory.OwnerGuildID = current.ID
	territory.Conquered = true

	svc := newTerritoryService(&mockTerritoryRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Territory, error) {
			return territory, nil
		},
	}, battleGuildRepo(current), &scriptedSource{})

	if _, err := svc.Conquer(context.Background(), "user:demo", territory.ID); !errors.Is(err, ErrTerritoryOwnedBySelf) {
		t.Errorf("expected ErrTerritoryOwnedBySelf, got %v", err)
	}
}

func TestConquer_TerritoryNotFound(t *testing.T) {
	t.Parallel()

	svc := newTerritoryService(&mockTerritoryRepo{}, battleGuildRepo(testGuild()), &scriptedSource{})
	if _, err := svc.Conquer(context.Background(), "user:demo", "territory:gone"); !errors.Is(err, ErrTerritoryNotFound) {
		t.Errorf("expected ErrTerritoryNotFound, got %v", err)
	}
}

func TestConquer_RevisionConflict(t *testing.T) {
	t.Parallel()

	current := testGuild()
	territory := testTerritory()
	svc := newTerritoryService(&mockTerritoryRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Territory, error) {
			return territory, nil
		},
		applyConquestFunc: func(ctx context.Context, territoryID string, territoryUpdates map[string]interface{}, guildID string, revision int, guildUpdates map[string]interface{}, previousOwnerGuildID string, battle *model.Battle) error {
			return database.ErrConflict
		},
	}, battleGuildRepo(current), &scriptedSource{floats: []float64{0.1}})

	if _, err := svc.Conquer(context.Background(), "user:demo", territory.ID); !errors.Is(err, ErrRevisionConflict) {
		t.Errorf("expected ErrRevisionConflict, got %v", err)
	}
}
