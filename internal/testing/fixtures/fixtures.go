// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	guild := f.CreateGuild(t, "user:alice")
//	char := f.CreateCharacter(t, guild)
//	territory := f.CreateTerritory(t)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/model"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// Guild Fixtures
// ============================================================================

// GuildOpts customizes guild creation
type GuildOpts struct {
	Name           string
	Description    string
	Level          int
	Experience     int
	Gold           int
	Gems           int
	TerritoryCount int
	Revision       int
}

// CreateGuild creates a guild owned by the given user
func (f *Factory) CreateGuild(t *testing.T, userID string, opts ...func(*GuildOpts)) *model.Guild {
	t.Helper()

	o := &GuildOpts{
		Name:        model.DefaultGuildName,
		Description: model.DefaultGuildDesc,
		Level:       1,
		Gold:        model.StartingGold,
		Gems:        model.StartingGems,
	}
	for _, fn := range opts {
		fn(o)
	}

	id := "guild:" + randomID()
	query := `
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
			revision: $revision,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"guild_id":        id,
		"user_id":         userID,
		"name":            o.Name,
		"description":     o.Description,
		"level":           o.Level,
		"experience":      o.Experience,
		"gold":            o.Gold,
		"gems":            o.Gems,
		"territory_count": o.TerritoryCount,
		"member_count":    0,
		"revision":        o.Revision,
	}); err != nil {
		t.Fatalf("fixtures: failed to create guild: %v", err)
	}

	return &model.Guild{
		ID:             id,
		UserID:         userID,
		Name:           o.Name,
		Description:    o.Description,
		Level:          o.Level,
		Experience:     o.Experience,
		Gold:           o.Gold,
		Gems:           o.Gems,
		TerritoryCount: o.TerritoryCount,
		Revision:       o.Revision,
	}
}

// WithBalances sets the guild's gold and gems
func WithBalances(gold, gems int) func(*GuildOpts) {
	return func(o *GuildOpts) {
		o.Gold = gold
		o.Gems = gems
	}
}

// WithGuildLevel sets the guild's level
func WithGuildLevel(level int) func(*GuildOpts) {
	return func(o *GuildOpts) {
		o.Level = level
	}
}

// ============================================================================
// Character Fixtures
// ============================================================================

// CharacterOpts customizes character creation
type CharacterOpts struct {
	Name       string
	Class      model.CharacterClass
	Rarity     model.CharacterRarity
	Level      int
	Experience int
	Health     int
	Attack     int
	Defense    int
	Speed      int
	Equipped   bool
}

// CreateCharacter creates a character belonging to the given guild
func (f *Factory) CreateCharacter(t *testing.T, guild *model.Guild, opts ...func(*CharacterOpts)) *model.Character {
	t.Helper()

	o := &CharacterOpts{
		Name:     fmt.Sprintf("Recruit %s", randomID()[:4]),
		Class:    model.ClassWarrior,
		Rarity:   model.RarityCommon,
		Level:    1,
		Health:   100,
		Attack:   20,
		Defense:  15,
		Speed:    10,
		Equipped: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	id := "character:" + randomID()
	query := `
		CREATE type::record($character_id) CONTENT {
			user_id: $user_id,
			guild_id: $guild_id,
			name: $name,
			class: $class,
			level: $level,
			experience: $experience,
			health: $health,
			attack: $attack,
			defense: $defense,
			speed: $speed,
			rarity: $rarity,
			equipped: $equipped,
			created_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"character_id": id,
		"user_id":      guild.UserID,
		"guild_id":     guild.ID,
		"name":         o.Name,
		"class":        string(o.Class),
		"level":        o.Level,
		"experience":   o.Experience,
		"health":       o.Health,
		"attack":       o.Attack,
		"defense":      o.Defense,
		"speed":        o.Speed,
		"rarity":       string(o.Rarity),
		"equipped":     o.Equipped,
	}); err != nil {
		t.Fatalf("fixtures: failed to create character: %v", err)
	}

	return &model.Character{
		ID:         id,
		UserID:     guild.UserID,
		GuildID:    guild.ID,
		Name:       o.Name,
		Class:      o.Class,
		Level:      o.Level,
		Experience: o.Experience,
		Health:     o.Health,
		Attack:     o.Attack,
		Defense:    o.Defense,
		Speed:      o.Speed,
		Rarity:     o.Rarity,
		Equipped:   o.Equipped,
	}
}

// WithStats sets the character's combat stats
func WithStats(health, attack, defense, speed int) func(*CharacterOpts) {
	return func(o *CharacterOpts) {
		o.Health = health
		o.Attack = attack
		o.Defense = defense
		o.Speed = speed
	}
}

// WithRarity sets the character's rarity
func WithRarity(rarity model.CharacterRarity) func(*CharacterOpts) {
	return func(o *CharacterOpts) {
		o.Rarity = rarity
	}
}

// WithCharacterLevel sets the character's level and experience
func WithCharacterLevel(level, experience int) func(*CharacterOpts) {
	return func(o *CharacterOpts) {
		o.Level = level
		o.Experience = experience
	}
}

// ============================================================================
// Battle Fixtures
// ============================================================================

// BattleOpts customizes battle creation
type BattleOpts struct {
	Type              model.BattleType
	Result            model.BattleResult
	RewardsGold       int
	RewardsExperience int
}

// CreateBattle creates a completed battle record for the given guild
func (f *Factory) CreateBattle(t *testing.T, guild *model.Guild, opts ...func(*BattleOpts)) *model.Battle {
	t.Helper()

	o := &BattleOpts{
		Type:              model.BattleTypePvE,
		Result:            model.BattleResultVictory,
		RewardsGold:       150,
		RewardsExperience: 75,
	}
	for _, fn := range opts {
		fn(o)
	}

	id := "battle:" + randomID()
	query := `
		CREATE type::record($battle_id) CONTENT {
			user_id: $user_id,
			guild_id: $guild_id,
			battle_type: $battle_type,
			status: $status,
			result: $result,
			rewards_gold: $rewards_gold,
			rewards_experience: $rewards_experience,
			created_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"battle_id":          id,
		"user_id":            guild.UserID,
		"guild_id":           guild.ID,
		"battle_type":        string(o.Type),
		"status":             string(model.BattleStatusCompleted),
		"result":             string(o.Result),
		"rewards_gold":       o.RewardsGold,
		"rewards_experience": o.RewardsExperience,
	}); err != nil {
		t.Fatalf("fixtures: failed to create battle: %v", err)
	}

	return &model.Battle{
		ID:                id,
		UserID:            guild.UserID,
		GuildID:           guild.ID,
		Type:              o.Type,
		Status:            model.BattleStatusCompleted,
		Result:            o.Result,
		RewardsGold:       o.RewardsGold,
		RewardsExperience: o.RewardsExperience,
	}
}

// WithResult sets the battle's result
func WithResult(result model.BattleResult) func(*BattleOpts) {
	return func(o *BattleOpts) {
		o.Result = result
	}
}

// ============================================================================
// Territory Fixtures
// ============================================================================

// TerritoryOpts customizes territory creation
type TerritoryOpts struct {
	Name             string
	Difficulty       int
	GoldReward       int
	ExperienceReward int
	OwnerGuildID     string
	OwnerUserID      string
	Conquered        bool
}

// CreateTerritory creates a conquerable territory
func (f *Factory) CreateTerritory(t *testing.T, opts ...func(*TerritoryOpts)) *model.Territory {
	t.Helper()

	o := &TerritoryOpts{
		Name:             fmt.Sprintf("Testlands %s", randomID()[:4]),
		Difficulty:       1,
		GoldReward:       150,
		ExperienceReward: 75,
	}
	for _, fn := range opts {
		fn(o)
	}

	id := "territory:" + randomID()
	query := `
		CREATE type::record($territory_id) CONTENT {
			name: $name,
			difficulty: $difficulty,
			gold_reward: $gold_reward,
			experience_reward: $experience_reward,
			owner_guild_id: $owner_guild_id,
			owner_user_id: $owner_user_id,
			conquered: $conquered,
			created_on: time::now()
		}
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"territory_id":      id,
		"name":              o.Name,
		"difficulty":        o.Difficulty,
		"gold_reward":       o.GoldReward,
		"experience_reward": o.ExperienceReward,
		"owner_guild_id":    o.OwnerGuildID,
		"owner_user_id":     o.OwnerUserID,
		"conquered":         o.Conquered,
	}); err != nil {
		t.Fatalf("fixtures: failed to create territory: %v", err)
	}

	return &model.Territory{
		ID:               id,
		Name:             o.Name,
		Difficulty:       o.Difficulty,
		GoldReward:       o.GoldReward,
		ExperienceReward: o.ExperienceReward,
		OwnerGuildID:     o.OwnerGuildID,
		OwnerUserID:      o.OwnerUserID,
		Conquered:        o.Conquered,
	}
}

// WithDifficulty sets the territory's difficulty
func WithDifficulty(difficulty int) func(*TerritoryOpts) {
	return func(o *TerritoryOpts) {
		o.Difficulty = difficulty
	}
}

// WithOwner marks the territory as conquered by the given guild
func WithOwner(guild *model.Guild) func(*TerritoryOpts) {
	return func(o *TerritoryOpts) {
		o.OwnerGuildID = guild.ID
		o.OwnerUserID = guild.UserID
		o.Conquered = true
	}
}
