package store

import (
	"context"
	"testing"

	"finlens/pkg/core/ratio"
)

func TestReportCache_FileRoundTrip(t *testing.T) {
	cache := NewReportCache(nil, t.TempDir())
	ctx := context.Background()

	table := ratio.LineItemTable{
		{Label: "TOTAL CURRENT ASSETS", Prior: 100, Current: 150},
		{Label: "TOTAL ASSETS", Prior: 200, Current: 300},
	}
	analysis, err := ratio.NewEngineNoCache(ratio.DefaultAnchors()).Analyze(table)
	if err != nil {
		t.Fatal(err)
	}
	hash := ratio.ContentHash(table)

	if cache.Exists(ctx, hash) {
		t.Fatal("cache should start empty")
	}
	if got, err := cache.Get(ctx, hash); err != nil || got != nil {
		t.Fatalf("miss should be (nil, nil), got (%v, %v)", got, err)
	}

	if err := cache.Save(ctx, hash, "bs_2024.xlsx", analysis); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !cache.Exists(ctx, hash) {
		t.Error("Exists should report the saved entry")
	}

	loaded, err := cache.Get(ctx, hash)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected cache hit")
	}
	if len(loaded.Enriched) != len(analysis.Enriched) {
		t.Errorf("row count mismatch: %d vs %d", len(loaded.Enriched), len(analysis.Enriched))
	}
	if loaded.Enriched[0].GrowthPct != analysis.Enriched[0].GrowthPct {
		t.Error("derived columns should survive the round trip")
	}
	if loaded.Summary.CurrentRatioPrior.Available != analysis.Summary.CurrentRatioPrior.Available {
		t.Error("summary availability should survive the round trip")
	}
}
