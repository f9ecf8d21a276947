package model

import "time"

// Territory is a global conquerable region. Ownership is exclusive: at most
// one guild holds a territory at a time.
type Territory struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Difficulty       int       `json:"difficulty"`
	GoldReward       int       `json:"gold_reward"`
	ExperienceReward int       `json:"experience_reward"`
	OwnerGuildID     string    `json:"owner_guild_id,omitempty"`
	OwnerUserID      string    `json:"owner_user_id,omitempty"`
	Conquered        bool      `json:"conquered"`
	CreatedOn        time.Time `json:"created_on"`
}

// Difficulty bounds
const (
	MinTerritoryDifficulty = 1
	MaxTerritoryDifficulty = 5
)

// SeedTerritory describes one canonical territory for first-run seeding
type SeedTerritory struct {
	Name             string
	Difficulty       int
	GoldReward       int
	ExperienceReward int
}

// SeedTerritories is the canonical world map, ordered by difficulty
var SeedTerritories = []SeedTerritory{
	{Name: "Whispering Woods", Difficulty: 1, GoldReward: 150, ExperienceReward: 75},
	{Name: "Crystal Caverns", Difficulty: 2, GoldReward: 250, ExperienceReward: 125},
	{Name: "Shadow Peaks", Difficulty: 3, GoldReward: 400, ExperienceReward: 200},
	{Name: "Frozen Wastes", Difficulty: 4, GoldReward: 600, ExperienceReward: 300},
	{Name: "Dragon's Lair", Difficulty: 5, GoldReward: 1000, ExperienceReward: 500},
}
