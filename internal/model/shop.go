package model

// Currency a shop item is priced in
type Currency string

const (
	CurrencyGold Currency = "gold"
	CurrencyGems Currency = "gems"
)

// ShopItemType groups catalog entries for the UI
type ShopItemType string

const (
	ShopItemCharacter ShopItemType = "character"
	ShopItemUpgrade   ShopItemType = "upgrade"
	ShopItemResource  ShopItemType = "resource"
)

// ShopItem is one fixed catalog entry
type ShopItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       int          `json:"price"`
	Currency    Currency     `json:"currency"`
	Type        ShopItemType `json:"type"`
	Available   bool         `json:"available"`
}

// Catalog item IDs
const (
	ItemRecruitCommon   = "recruit_common"
	ItemRecruitRare     = "recruit_rare"
	ItemGoldPackSmall   = "gold_pack_small"
	ItemGoldPackLarge   = "gold_pack_large"
	ItemExperienceBoost = "experience_boost"
	ItemGuildUpgrade    = "guild_upgrade"
)

// Fixed prices and payouts
const (
	RandomRecruitCost = 500 // gold, characters-screen recruit flow

	GoldPackSmallAmount = 1000
	GoldPackLargeAmount = 5000
)

// PurchaseRequest identifies the catalog item to buy
type PurchaseRequest struct {
	ItemID string `json:"item_id"`
}

// PurchaseResult is returned from a successful shop purchase. Character is set
// only for recruit items.
type PurchaseResult struct {
	Item      ShopItem   `json:"item"`
	Guild     *Guild     `json:"guild"`
	Character *Character `json:"character,omitempty"`
}
