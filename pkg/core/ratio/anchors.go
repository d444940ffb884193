package ratio

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// Canonical anchor categories. Labels in uploaded files rarely match a fixed
// schema, so each category maps to a set of accepted substring patterns,
// resolved against the table in document order, first match wins.
const (
	CategoryTotalAssets        = "total_assets"
	CategoryCurrentAssets      = "current_assets"
	CategoryCurrentLiabilities = "current_liabilities"
)

// AnchorConfig maps canonical categories to accepted label patterns.
// Matching is case-insensitive substring.
type AnchorConfig struct {
	TotalAssets        []string `json:"total_assets"`
	CurrentAssets      []string `json:"current_assets"`
	CurrentLiabilities []string `json:"current_liabilities"`
}

// DefaultAnchors covers the Vietnamese labels of the balance sheets this
// tool was built for plus common English variants.
func DefaultAnchors() AnchorConfig {
	return AnchorConfig{
		TotalAssets:        []string{"tổng cộng tài sản", "total assets"},
		CurrentAssets:      []string{"tài sản ngắn hạn", "current assets"},
		CurrentLiabilities: []string{"nợ ngắn hạn", "current liabilities"},
	}
}

// LoadAnchors reads an AnchorConfig from an Hjson file. Hjson keeps the
// file comfortable to hand-edit (comments, unquoted keys). Categories left
// empty in the file fall back to the defaults.
func LoadAnchors(path string) (AnchorConfig, error) {
	cfg := DefaultAnchors()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read anchor config: %w", err)
	}

	var loaded AnchorConfig
	if err := hjson.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse anchor config: %w", err)
	}

	if len(loaded.TotalAssets) > 0 {
		cfg.TotalAssets = loaded.TotalAssets
	}
	if len(loaded.CurrentAssets) > 0 {
		cfg.CurrentAssets = loaded.CurrentAssets
	}
	if len(loaded.CurrentLiabilities) > 0 {
		cfg.CurrentLiabilities = loaded.CurrentLiabilities
	}
	return cfg, nil
}

// Patterns returns the accepted patterns for a canonical category.
func (c AnchorConfig) Patterns(category string) []string {
	switch category {
	case CategoryTotalAssets:
		return c.TotalAssets
	case CategoryCurrentAssets:
		return c.CurrentAssets
	case CategoryCurrentLiabilities:
		return c.CurrentLiabilities
	}
	return nil
}

// findAnchor returns the first row whose label contains any accepted
// pattern for the category, scanning in document order.
func findAnchor(table LineItemTable, patterns []string) (LineItem, bool) {
	for _, row := range table {
		label := strings.ToLower(row.Label)
		for _, p := range patterns {
			if p == "" {
				continue
			}
			if strings.Contains(label, strings.ToLower(p)) {
				return row, true
			}
		}
	}
	return LineItem{}, false
}
