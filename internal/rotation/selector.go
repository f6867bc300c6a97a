package rotation

import (
	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/utils"
)

// attemptFactor bounds the selection loop: at most attemptFactor*M slot
// draws are made before falling back to a deterministic fill. This keeps
// termination bounded even if the hash clusters on a few indices.
const attemptFactor = 4

// Select picks the daily rotation subset from the catalog. It is a pure
// function of its inputs: given the same catalog and date key it returns
// the same ordered list for every caller, with no duplicate ids.
//
// Items are chosen one per slot by mapping SeededFraction(seed+i) to an
// index into the full catalog. A draw that lands on an already-chosen item
// advances the slot counter without consuming an output slot. If the
// attempt bound is exhausted before size items are collected, the remaining
// slots are filled from the first not-yet-chosen items in catalog order, so
// the result always has exactly min(size, len(catalog)) items.
//
// Output order is insertion order (order of first successful pick), not any
// item attribute.
func Select(catalog []domain.CatalogItem, key domain.DateKey, size int) []domain.CatalogItem {
	m := len(catalog)
	if m == 0 || size <= 0 {
		return nil
	}
	if size > m {
		size = m
	}

	seed := int(key)
	chosen := make(map[string]bool, size)
	picked := make([]domain.CatalogItem, 0, size)

	maxAttempts := attemptFactor * m
	for i := 0; i < maxAttempts && len(picked) < size; i++ {
		item := catalog[utils.SeededIndex(seed+i, m)]
		if chosen[item.ID] {
			continue
		}
		chosen[item.ID] = true
		picked = append(picked, item)
	}

	// Deterministic fill for the pathological collision case.
	for i := 0; len(picked) < size && i < m; i++ {
		if chosen[catalog[i].ID] {
			continue
		}
		chosen[catalog[i].ID] = true
		picked = append(picked, catalog[i])
	}

	return picked
}
