// Package ratio implements the balance-sheet ratio engine: year-over-year
// growth, asset-composition shares against the total-assets anchor, and the
// current (liquidity) ratio. All operations are pure functions over an
// immutable input table; the only fatal condition is a missing total-assets
// anchor row.
package ratio

// LineItem is one row of the uploaded three-column table:
// label, prior-year value, current-year value.
type LineItem struct {
	Label   string  `json:"label"`
	Prior   float64 `json:"prior"`
	Current float64 `json:"current"`
}

// LineItemTable is the raw input, in document order. The engine never
// mutates it; enrichment returns a new table.
type LineItemTable []LineItem

// EnrichedLineItem extends a LineItem with the three derived columns.
type EnrichedLineItem struct {
	LineItem
	GrowthPct       float64 `json:"growth_pct"`
	PriorSharePct   float64 `json:"prior_share_pct"`
	CurrentSharePct float64 `json:"current_share_pct"`
}

// EnrichedLineItemTable is the enriched output, row-aligned with the input.
type EnrichedLineItemTable []EnrichedLineItem

// Reason explains why a ratio is unavailable.
type Reason string

const (
	ReasonMissingRow      Reason = "missing_row"
	ReasonZeroDenominator Reason = "zero_denominator"
)

// RatioValue is a scalar ratio that may be unavailable. Unavailable is a
// valid terminal value, not an error; Reason says whether the anchor row was
// missing or its denominator was exactly zero.
type RatioValue struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Reason    Reason  `json:"reason,omitempty"`
}

// Unavailable builds an unavailable RatioValue with the given reason.
func Unavailable(r Reason) RatioValue {
	return RatioValue{Available: false, Reason: r}
}

// Available builds a computed RatioValue.
func Available(v float64) RatioValue {
	return RatioValue{Value: v, Available: true}
}

// RatioSummary holds the scalar outputs not tied to a single row. The two
// periods are independent: one may be unavailable while the other is numeric.
type RatioSummary struct {
	CurrentRatioPrior   RatioValue `json:"current_ratio_prior"`
	CurrentRatioCurrent RatioValue `json:"current_ratio_current"`
}

// Analysis bundles everything computed for one uploaded table.
type Analysis struct {
	Enriched EnrichedLineItemTable `json:"enriched"`
	Summary  RatioSummary          `json:"summary"`
}
