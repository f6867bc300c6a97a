package rotation

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
)

// Generator supplies the full, stable-for-the-day item universe.
type Generator interface {
	Generate(key domain.DateKey) []domain.CatalogItem
}

// Service serves daily rotations and the full catalog.
type Service interface {
	// Rotation returns the rotation for the given date key. The result is
	// identical for every caller on the same day.
	Rotation(ctx context.Context, key domain.DateKey) domain.DailyRotation
	// Today returns the rotation for the current UTC day.
	Today(ctx context.Context) domain.DailyRotation
	// Catalog returns the full item universe for the given date key.
	Catalog(ctx context.Context, key domain.DateKey) []domain.CatalogItem
	// Item looks up one catalog item by id for the given date key.
	Item(ctx context.Context, key domain.DateKey, itemID string) (*domain.CatalogItem, error)
}

// Rotations are recomputable from the date key alone, so the cache is a
// throughput optimization, not a source of truth. A handful of entries
// covers today plus rollover boundaries.
const (
	cacheSize = 8
	cacheTTL  = 48 * time.Hour
)

type service struct {
	gen   Generator
	size  int
	cache *expirable.LRU[domain.DateKey, domain.DailyRotation]
	now   func() time.Time
}

// NewService creates a rotation service drawing size items per day.
func NewService(gen Generator, size int) Service {
	return &service{
		gen:   gen,
		size:  size,
		cache: expirable.NewLRU[domain.DateKey, domain.DailyRotation](cacheSize, nil, cacheTTL),
		now:   time.Now,
	}
}

func (s *service) Rotation(ctx context.Context, key domain.DateKey) domain.DailyRotation {
	if rot, ok := s.cache.Get(key); ok {
		metrics.RotationCacheHits.Inc()
		return rot
	}

	log := logger.FromContext(ctx)

	rot := domain.DailyRotation{
		DateKey: key,
		Items:   Select(s.gen.Generate(key), key, s.size),
	}
	s.cache.Add(key, rot)
	metrics.RotationsComputed.Inc()

	log.Info("Daily rotation computed", "date_key", int(key), "items", len(rot.Items))
	return rot
}

func (s *service) Today(ctx context.Context) domain.DailyRotation {
	return s.Rotation(ctx, domain.NewDateKey(s.now()))
}

func (s *service) Catalog(ctx context.Context, key domain.DateKey) []domain.CatalogItem {
	return s.gen.Generate(key)
}

func (s *service) Item(ctx context.Context, key domain.DateKey, itemID string) (*domain.CatalogItem, error) {
	for _, item := range s.gen.Generate(key) {
		if item.ID == itemID {
			return &item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}
