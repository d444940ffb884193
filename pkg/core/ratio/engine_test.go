package ratio

import (
	"errors"
	"math"
	"testing"
)

func sampleTable() LineItemTable {
	return LineItemTable{
		{Label: "TOTAL CURRENT ASSETS", Prior: 100, Current: 150},
		{Label: "TOTAL CURRENT LIABILITIES", Prior: 50, Current: 0},
		{Label: "TOTAL ASSETS", Prior: 200, Current: 300},
	}
}

func TestGrowthAndComposition_EndToEnd(t *testing.T) {
	enriched, err := ComputeGrowthAndComposition(sampleTable(), DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enriched) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(enriched))
	}

	// Row 1: (150-100)/100*100 = 50; 100/200 = 50%; 150/300 = 50%
	row := enriched[0]
	if math.Abs(row.GrowthPct-50.0) > 0.0001 {
		t.Errorf("GrowthPct expected 50.0, got %f", row.GrowthPct)
	}
	if math.Abs(row.PriorSharePct-50.0) > 0.0001 {
		t.Errorf("PriorSharePct expected 50.0, got %f", row.PriorSharePct)
	}
	if math.Abs(row.CurrentSharePct-50.0) > 0.0001 {
		t.Errorf("CurrentSharePct expected 50.0, got %f", row.CurrentSharePct)
	}

	// Anchor row shares are 100% by construction.
	anchor := enriched[2]
	if math.Abs(anchor.PriorSharePct-100.0) > 0.0001 || math.Abs(anchor.CurrentSharePct-100.0) > 0.0001 {
		t.Errorf("anchor shares expected 100/100, got %f/%f", anchor.PriorSharePct, anchor.CurrentSharePct)
	}
}

func TestGrowthAndComposition_ExactGrowthWhenPriorNonZero(t *testing.T) {
	table := LineItemTable{
		{Label: "Inventories", Prior: 80, Current: 60},
		{Label: "TOTAL ASSETS", Prior: 400, Current: 500},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (60.0 - 80.0) / 80.0 * 100
	if enriched[0].GrowthPct != want {
		t.Errorf("GrowthPct expected exactly %f, got %f", want, enriched[0].GrowthPct)
	}
}

func TestGrowthAndComposition_ZeroPriorYieldsLargeFinite(t *testing.T) {
	table := LineItemTable{
		{Label: "Goodwill", Prior: 0, Current: 25},
		{Label: "TOTAL ASSETS", Prior: 200, Current: 300},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := enriched[0].GrowthPct
	if math.IsInf(g, 0) || math.IsNaN(g) {
		t.Fatalf("growth from zero base must be finite, got %f", g)
	}
	if g < 1e9 {
		t.Errorf("growth from zero base should be very large, got %f", g)
	}
}

func TestGrowthAndComposition_ZeroAnchorsGuardedIndependently(t *testing.T) {
	table := LineItemTable{
		{Label: "Cash", Prior: 10, Current: 10},
		{Label: "TOTAL ASSETS", Prior: 0, Current: 100},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Prior anchor is zero: prior share blows up but stays finite.
	if math.IsInf(enriched[0].PriorSharePct, 0) || math.IsNaN(enriched[0].PriorSharePct) {
		t.Errorf("prior share must be finite, got %f", enriched[0].PriorSharePct)
	}
	// Current anchor is valid: current share is exact.
	if math.Abs(enriched[0].CurrentSharePct-10.0) > 0.0001 {
		t.Errorf("CurrentSharePct expected 10.0, got %f", enriched[0].CurrentSharePct)
	}
}

func TestGrowthAndComposition_AnchorMatchIsCaseInsensitiveSubstring(t *testing.T) {
	table := LineItemTable{
		{Label: "A. TÀI SẢN NGẮN HẠN", Prior: 120, Current: 130},
		{Label: "TỔNG CỘNG TÀI SẢN (A+B)", Prior: 240, Current: 260},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("Vietnamese anchor label should match: %v", err)
	}
	if math.Abs(enriched[0].PriorSharePct-50.0) > 0.0001 {
		t.Errorf("PriorSharePct expected 50.0, got %f", enriched[0].PriorSharePct)
	}
}

func TestGrowthAndComposition_FirstAnchorMatchWins(t *testing.T) {
	table := LineItemTable{
		{Label: "Total assets of segment X", Prior: 100, Current: 100},
		{Label: "TOTAL ASSETS", Prior: 500, Current: 500},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Document order: the first matching row (100) is the anchor, not the
	// later consolidated line.
	if math.Abs(enriched[1].PriorSharePct-500.0) > 0.0001 {
		t.Errorf("expected share against first match, got %f", enriched[1].PriorSharePct)
	}
}

func TestGrowthAndComposition_MissingAnchorFails(t *testing.T) {
	table := LineItemTable{
		{Label: "Cash", Prior: 10, Current: 20},
		{Label: "Inventories", Prior: 30, Current: 40},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err == nil {
		t.Fatal("expected MissingAnchorError")
	}
	var missing *MissingAnchorError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingAnchorError, got %T", err)
	}
	if missing.Category != CategoryTotalAssets {
		t.Errorf("expected category %s, got %s", CategoryTotalAssets, missing.Category)
	}
	if enriched != nil {
		t.Error("no partially populated table may be returned on failure")
	}
}

func TestGrowthAndComposition_SharesSumToHundred(t *testing.T) {
	// A complete balance sheet: current + non-current = total.
	table := LineItemTable{
		{Label: "A. TÀI SẢN NGẮN HẠN", Prior: 350, Current: 420},
		{Label: "B. TÀI SẢN DÀI HẠN", Prior: 650, Current: 580},
		{Label: "TỔNG CỘNG TÀI SẢN", Prior: 1000, Current: 1000},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var priorSum, currentSum float64
	for _, row := range enriched[:2] {
		priorSum += row.PriorSharePct
		currentSum += row.CurrentSharePct
	}
	if math.Abs(priorSum-100.0) > 0.0001 {
		t.Errorf("prior shares should sum to ~100, got %f", priorSum)
	}
	if math.Abs(currentSum-100.0) > 0.0001 {
		t.Errorf("current shares should sum to ~100, got %f", currentSum)
	}
}

func TestCurrentRatio_PeriodsAreIndependent(t *testing.T) {
	enriched, err := ComputeGrowthAndComposition(sampleTable(), DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary := ComputeCurrentRatio(enriched, DefaultAnchors())

	if !summary.CurrentRatioPrior.Available {
		t.Fatal("prior ratio should be available")
	}
	if math.Abs(summary.CurrentRatioPrior.Value-2.0) > 0.0001 {
		t.Errorf("prior ratio expected 2.0, got %f", summary.CurrentRatioPrior.Value)
	}

	// Current-year liabilities are exactly zero: unavailable, not an error.
	if summary.CurrentRatioCurrent.Available {
		t.Error("current ratio should be unavailable for zero liabilities")
	}
	if summary.CurrentRatioCurrent.Reason != ReasonZeroDenominator {
		t.Errorf("expected reason %s, got %s", ReasonZeroDenominator, summary.CurrentRatioCurrent.Reason)
	}
}

func TestCurrentRatio_MissingAnchorDegrades(t *testing.T) {
	table := LineItemTable{
		{Label: "TOTAL CURRENT ASSETS", Prior: 100, Current: 150},
		{Label: "TOTAL ASSETS", Prior: 200, Current: 300},
	}
	enriched, err := ComputeGrowthAndComposition(table, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary := ComputeCurrentRatio(enriched, DefaultAnchors())

	for _, rv := range []RatioValue{summary.CurrentRatioPrior, summary.CurrentRatioCurrent} {
		if rv.Available {
			t.Error("ratio should be unavailable without a liabilities row")
		}
		if rv.Reason != ReasonMissingRow {
			t.Errorf("expected reason %s, got %s", ReasonMissingRow, rv.Reason)
		}
	}
}

func TestGrowthAndComposition_InputNotMutated(t *testing.T) {
	table := sampleTable()
	if _, err := ComputeGrowthAndComposition(table, DefaultAnchors()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table[0].Prior != 100 || table[0].Current != 150 || table[0].Label != "TOTAL CURRENT ASSETS" {
		t.Error("input table was mutated")
	}
}
