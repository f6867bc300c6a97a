package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/validation"
)

// Sentinel errors for the content loader
var (
	ErrDuplicateName = errors.New("duplicate item name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

//go:embed content/items.json
var defaultContent []byte

//go:embed content/items.schema.json
var contentSchema []byte

const contentSchemaName = "items.schema.json"

// Config represents the JSON content pack the catalog is generated from.
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Avatars []string `json:"avatars"`
	Themes  []string `json:"themes"`
	Badges  []string `json:"badges"`
	Boosts  []string `json:"boosts"`
}

// Names returns the name pool for a category.
func (c *Config) Names(cat domain.Category) []string {
	switch cat {
	case domain.CategoryAvatar:
		return c.Avatars
	case domain.CategoryTheme:
		return c.Themes
	case domain.CategoryBadge:
		return c.Badges
	case domain.CategoryBoost:
		return c.Boosts
	}
	return nil
}

// DefaultConfig parses the content pack compiled into the binary.
func DefaultConfig() (*Config, error) {
	return parse(defaultContent)
}

// LoadFile reads and parses a content pack from disk, for deployments that
// override the embedded default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	if err := validation.NewSchemaValidator().ValidateAgainst(data, contentSchema, contentSchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse content pack: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every category has a non-empty pool of unique names.
func (c *Config) Validate() error {
	for _, cat := range domain.Categories {
		names := c.Names(cat)
		if len(names) == 0 {
			return fmt.Errorf("%w: empty %s pool", ErrInvalidConfig, cat)
		}
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w: empty name in %s pool", ErrInvalidConfig, cat)
			}
			if seen[name] {
				return fmt.Errorf("%w: %q in %s pool", ErrDuplicateName, name, cat)
			}
			seen[name] = true
		}
	}
	return nil
}
