package model

import "time"

// CharacterClass is one of the six playable classes
type CharacterClass string

const (
	ClassWarrior  CharacterClass = "warrior"
	ClassMage     CharacterClass = "mage"
	ClassArcher   CharacterClass = "archer"
	ClassAssassin CharacterClass = "assassin"
	ClassHealer   CharacterClass = "healer"
	ClassTank     CharacterClass = "tank"
)

// CharacterClasses lists all classes in canonical order, used for uniform draws
var CharacterClasses = []CharacterClass{
	ClassWarrior, ClassMage, ClassArcher, ClassAssassin, ClassHealer, ClassTank,
}

// IsValid returns true if the class is one of the six playable classes
func (c CharacterClass) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassArcher, ClassAssassin, ClassHealer, ClassTank:
		return true
	default:
		return false
	}
}

// CharacterRarity determines the stat multiplier applied at recruitment
type CharacterRarity string

const (
	RarityCommon    CharacterRarity = "common"
	RarityRare      CharacterRarity = "rare"
	RarityEpic      CharacterRarity = "epic"
	RarityLegendary CharacterRarity = "legendary"
)

// Multiplier returns the stat multiplier for the rarity. Stats are scaled as
// floor(base * multiplier).
func (r CharacterRarity) Multiplier() float64 {
	switch r {
	case RarityRare:
		return 1.2
	case RarityEpic:
		return 1.5
	case RarityLegendary:
		return 2.0
	default:
		return 1.0
	}
}

// IsValid returns true if the rarity is one of the four known tiers
func (r CharacterRarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// Character is a recruitable combat unit owned by a guild
type Character struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	GuildID    string          `json:"guild_id"`
	Name       string          `json:"name"`
	Class      CharacterClass  `json:"class"`
	Level      int             `json:"level"`
	Experience int             `json:"experience"`
	Health     int             `json:"health"`
	Attack     int             `json:"attack"`
	Defense    int             `json:"defense"`
	Speed      int             `json:"speed"`
	Rarity     CharacterRarity `json:"rarity"`
	Equipped   bool            `json:"equipped"`
	CreatedOn  time.Time       `json:"created_on"`
}

// Power is the character's contribution to team power in battle
func (c *Character) Power() int {
	return c.Attack + c.Defense + c.Speed + c.Health
}

// Base stats before the rarity multiplier is applied
const (
	BaseHealth  = 100
	BaseAttack  = 20
	BaseDefense = 15
	BaseSpeed   = 10
)

// RecruitNames is the fixed pool recruits draw their names from
var RecruitNames = []string{
	"Theron", "Luna", "Kael", "Vera", "Darius", "Nyx", "Orion", "Zara",
	"Magnus", "Lyra", "Vex", "Aria", "Raven", "Phoenix", "Storm", "Sage",
}
