package domain

// Category identifies the cosmetic slot an item belongs to.
// Exactly one item per category can be equipped at a time.
type Category string

const (
	CategoryAvatar Category = "avatar"
	CategoryTheme  Category = "theme"
	CategoryBadge  Category = "badge"
	CategoryBoost  Category = "boost"
)

// Categories lists all valid categories in display order.
var Categories = []Category{CategoryAvatar, CategoryTheme, CategoryBadge, CategoryBoost}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAvatar, CategoryTheme, CategoryBadge, CategoryBoost:
		return true
	}
	return false
}

// Rarity represents the price band and visual tier of a catalog item.
// The ordering common < rare < epic < legendary is meaningful for pricing.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists all rarities from most to least common.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// CatalogItem is an immutable content record from one catalog generation pass.
// ID is globally unique within a pass and stable across days; Category and
// Rarity never change after creation.
type CatalogItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Rarity      Rarity   `json:"rarity"`
	BasePrice   int      `json:"base_price"`
	// DurationHours is set only for boost items (>= 1).
	DurationHours int `json:"duration_hours,omitempty"`
}
