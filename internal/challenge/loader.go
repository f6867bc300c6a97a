package challenge

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/validation"
)

var (
	ErrDuplicateKey    = errors.New("duplicate template key")
	ErrInvalidTemplate = errors.New("invalid challenge template")
)

//go:embed content/templates.json
var defaultContent []byte

//go:embed content/templates.schema.json
var templateSchema []byte

const templateSchemaName = "templates.schema.json"

// Pool is the JSON content pack the daily challenge set is drawn from.
type Pool struct {
	Version     string                     `json:"version"`
	Description string                     `json:"description"`
	Templates   []domain.ChallengeTemplate `json:"templates"`
}

// DefaultPool parses the template pool compiled into the binary.
func DefaultPool() (*Pool, error) {
	return parsePool(defaultContent)
}

// LoadPool reads and parses a template pool from disk, for deployments that
// override the embedded default.
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return parsePool(data)
}

func parsePool(data []byte) (*Pool, error) {
	if err := validation.NewSchemaValidator().ValidateAgainst(data, templateSchema, templateSchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	var pool Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse template pool: %w", err)
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return &pool, nil
}

// Validate checks every template has a unique key and sane goal numbers.
func (p *Pool) Validate() error {
	if len(p.Templates) == 0 {
		return fmt.Errorf("%w: empty template pool", ErrInvalidTemplate)
	}
	seen := make(map[string]bool, len(p.Templates))
	for _, tpl := range p.Templates {
		if tpl.Key == "" {
			return fmt.Errorf("%w: missing key", ErrInvalidTemplate)
		}
		if seen[tpl.Key] {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, tpl.Key)
		}
		seen[tpl.Key] = true
		if tpl.Target <= 0 {
			return fmt.Errorf("%w: %q has non-positive target", ErrInvalidTemplate, tpl.Key)
		}
		if tpl.Reward <= 0 {
			return fmt.Errorf("%w: %q has non-positive reward", ErrInvalidTemplate, tpl.Key)
		}
	}
	return nil
}
