package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"prodsearch/internal/domain"
)

// LoadSeed reads a JSON array of products. Comments and trailing commas
// are allowed.
func LoadSeed(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed file contents. Every product needs a unique
// positive id and a name.
func ParseSeed(data []byte) ([]domain.Item, error) {
	var items []domain.Item
	if err := json.Unmarshal(jsonc.ToJSON(data), &items); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	seen := make(map[int64]bool, len(items))
	for i, it := range items {
		if it.ID <= 0 {
			return nil, fmt.Errorf("seed entry %d: id must be positive", i)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("seed entry %d (id %d): name is required", i, it.ID)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("seed entry %d: duplicate id %d", i, it.ID)
		}
		seen[it.ID] = true
	}
	return items, nil
}

//go:embed products.jsonc
var defaultSeed []byte

// DefaultSeed returns the built-in fixture catalog.
func DefaultSeed() []domain.Item {
	items, err := ParseSeed(defaultSeed)
	if err != nil {
		panic("store: built-in seed is invalid: " + err.Error())
	}
	return items
}
