// Package commentary turns a computed analysis into an LLM-written
// assessment. The numeric results never depend on this package: a failed
// call surfaces as a message, not a crash, and the caller renders the
// tables regardless.
package commentary

import (
	"fmt"
	"strings"

	"finlens/pkg/core/ratio"
)

// BuildDigest renders the analysis as the markdown frame sent to the model:
// the enriched table plus the headline indicators, with explicit "No data"
// markers so the model does not hallucinate missing ratios.
func BuildDigest(analysis *ratio.Analysis, anchors ratio.AnchorConfig) string {
	var sb strings.Builder

	sb.WriteString("### Analyzed balance sheet\n\n")
	sb.WriteString(renderEnrichedTable(analysis.Enriched))
	sb.WriteString("\n### Key indicators\n\n")
	sb.WriteString("| Indicator | Value |\n|---|---|\n")

	if growth, ok := currentAssetsGrowth(analysis.Enriched, anchors); ok {
		fmt.Fprintf(&sb, "| Current assets growth (%%) | %.2f%% |\n", growth)
	} else {
		sb.WriteString("| Current assets growth (%) | No data |\n")
	}
	fmt.Fprintf(&sb, "| Current ratio (prior year) | %s |\n", formatRatio(analysis.Summary.CurrentRatioPrior))
	fmt.Fprintf(&sb, "| Current ratio (current year) | %s |\n", formatRatio(analysis.Summary.CurrentRatioCurrent))

	return sb.String()
}

func renderEnrichedTable(table ratio.EnrichedLineItemTable) string {
	var sb strings.Builder
	sb.WriteString("| Line item | Prior | Current | Growth % | Prior share % | Current share % |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range table {
		fmt.Fprintf(&sb, "| %s | %.0f | %.0f | %.2f | %.2f | %.2f |\n",
			strings.ReplaceAll(row.Label, "|", "\\|"),
			row.Prior, row.Current, row.GrowthPct, row.PriorSharePct, row.CurrentSharePct)
	}
	return sb.String()
}

func currentAssetsGrowth(table ratio.EnrichedLineItemTable, anchors ratio.AnchorConfig) (float64, bool) {
	for _, row := range table {
		label := strings.ToLower(row.Label)
		for _, p := range anchors.CurrentAssets {
			if p != "" && strings.Contains(label, strings.ToLower(p)) {
				return row.GrowthPct, true
			}
		}
	}
	return 0, false
}

func formatRatio(rv ratio.RatioValue) string {
	if !rv.Available {
		return "No data (" + string(rv.Reason) + ")"
	}
	return fmt.Sprintf("%.2f", rv.Value)
}
