package ratio

import (
	"fmt"
	"strings"
)

// epsilon replaces an exact-zero denominator so a growth rate off a zero
// base yields a very large finite number instead of a division failure.
// The resulting figure is a display convention, not an economically
// meaningful rate.
const epsilon = 1e-9

// MissingAnchorError is the one fatal condition of the engine: no row
// matched the total-assets anchor, so composition shares have no
// denominator and no enriched table can be produced.
type MissingAnchorError struct {
	Category string
	Patterns []string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("no row matching anchor %q (accepted: %s)",
		e.Category, strings.Join(e.Patterns, ", "))
}

func safeDivisor(x float64) float64 {
	if x == 0 {
		return epsilon
	}
	return x
}

// ComputeGrowthAndComposition derives the three per-row columns:
// growth % from prior to current, and each period's value as a percentage
// of the total-assets anchor for that period. The prior and current anchor
// values are guarded independently; one may be zero while the other is not.
//
// Fails with *MissingAnchorError when no row matches the total-assets
// category. No partially populated table is ever returned.
func ComputeGrowthAndComposition(table LineItemTable, anchors AnchorConfig) (EnrichedLineItemTable, error) {
	anchor, ok := findAnchor(table, anchors.TotalAssets)
	if !ok {
		return nil, &MissingAnchorError{
			Category: CategoryTotalAssets,
			Patterns: anchors.TotalAssets,
		}
	}

	priorAnchor := safeDivisor(anchor.Prior)
	currentAnchor := safeDivisor(anchor.Current)

	enriched := make(EnrichedLineItemTable, 0, len(table))
	for _, row := range table {
		enriched = append(enriched, EnrichedLineItem{
			LineItem:        row,
			GrowthPct:       (row.Current - row.Prior) / safeDivisor(row.Prior) * 100,
			PriorSharePct:   row.Prior / priorAnchor * 100,
			CurrentSharePct: row.Current / currentAnchor * 100,
		})
	}
	return enriched, nil
}

// ComputeCurrentRatio derives the liquidity ratio (current assets / current
// liabilities) for both periods. Missing anchor rows degrade to unavailable
// rather than failing: the function always returns a summary.
//
// The two periods are evaluated independently: upstream data often carries
// a valid liabilities figure for one year and a zero for the other, and one
// bad year must not invalidate the other.
func ComputeCurrentRatio(table EnrichedLineItemTable, anchors AnchorConfig) RatioSummary {
	raw := make(LineItemTable, len(table))
	for i, row := range table {
		raw[i] = row.LineItem
	}

	assets, okAssets := findAnchor(raw, anchors.CurrentAssets)
	liabs, okLiabs := findAnchor(raw, anchors.CurrentLiabilities)
	if !okAssets || !okLiabs {
		return RatioSummary{
			CurrentRatioPrior:   Unavailable(ReasonMissingRow),
			CurrentRatioCurrent: Unavailable(ReasonMissingRow),
		}
	}

	return RatioSummary{
		CurrentRatioPrior:   periodRatio(assets.Prior, liabs.Prior),
		CurrentRatioCurrent: periodRatio(assets.Current, liabs.Current),
	}
}

func periodRatio(assets, liabilities float64) RatioValue {
	if liabilities == 0 {
		return Unavailable(ReasonZeroDenominator)
	}
	return Available(assets / liabilities)
}
