package catalog

import (
	"fmt"
	"strings"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/utils"
)

// Price bands per category, indexed by rarity in ascending order
// (common, rare, epic, legendary). The generated price is the band value
// plus a bounded seeded offset.
var priceBands = map[domain.Category][4]int{
	domain.CategoryAvatar: {100, 200, 350, 500},
	domain.CategoryTheme:  {80, 150, 250, 400},
	domain.CategoryBadge:  {120, 250, 400, 600},
	domain.CategoryBoost:  {150, 300, 500, 750},
}

// Price offset bounds per category (exclusive upper bound on the offset).
var offsetBounds = map[domain.Category]int{
	domain.CategoryAvatar: 100,
	domain.CategoryTheme:  50,
	domain.CategoryBadge:  100,
	domain.CategoryBoost:  100,
}

// Boost durations are drawn from [1, 24] hours.
const (
	boostDurationMin = 1
	boostDurationMax = 24
)

// catalogSeedStride separates the generator's seed stream from the rotation
// selector's (which consumes seed+0..seed+N).
const catalogSeedStride = 971

// Generator produces the full item universe for a given day. Item IDs are
// derived from category and name, so they stay stable across days; rarity,
// price, and boost duration derive from the date seed, so a generation pass
// is identical for every caller on the same calendar day.
type Generator struct {
	cfg *Config
}

// NewGenerator creates a Generator over a validated content pack.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate returns the complete ordered catalog for the given date key.
func (g *Generator) Generate(key domain.DateKey) []domain.CatalogItem {
	var items []domain.CatalogItem
	ordinal := 0
	for _, cat := range domain.Categories {
		for _, name := range g.cfg.Names(cat) {
			items = append(items, g.generateItem(key, cat, name, ordinal))
			ordinal++
		}
	}
	return items
}

func (g *Generator) generateItem(key domain.DateKey, cat domain.Category, name string, ordinal int) domain.CatalogItem {
	// Three independent draws per item, on a stream disjoint from the
	// rotation selector's.
	base := int(key)*catalogSeedStride + ordinal*3

	rarity := domain.Rarities[utils.SeededIndex(base, len(domain.Rarities))]
	price := priceBands[cat][rarityIndex(rarity)] + utils.SeededIndex(base+1, offsetBounds[cat])

	item := domain.CatalogItem{
		ID:          ItemID(cat, name),
		Name:        name,
		Description: describe(cat, rarity),
		Category:    cat,
		Rarity:      rarity,
		BasePrice:   price,
	}

	if cat == domain.CategoryBoost {
		item.DurationHours = utils.SeededRange(base+2, boostDurationMin, boostDurationMax)
	}

	return item
}

// ItemID builds the stable identifier for a catalog item. The category is
// part of the id for readability only; consumers must use the Category
// field, never parse the id.
func ItemID(cat domain.Category, name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, slug)
	return fmt.Sprintf("%s-%s", cat, slug)
}

func rarityIndex(r domain.Rarity) int {
	for i, known := range domain.Rarities {
		if known == r {
			return i
		}
	}
	return 0
}

func describe(cat domain.Category, rarity domain.Rarity) string {
	switch cat {
	case domain.CategoryAvatar:
		return fmt.Sprintf("Unique %s avatar with special effects", rarity)
	case domain.CategoryTheme:
		return fmt.Sprintf("Beautiful %s theme with custom colors and effects", rarity)
	case domain.CategoryBadge:
		return fmt.Sprintf("Prestigious %s badge to show off your achievements", rarity)
	case domain.CategoryBoost:
		return fmt.Sprintf("Powerful %s boost to enhance your gaming experience", rarity)
	}
	return string(rarity)
}
