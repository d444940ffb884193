package ratio

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
)

// Engine owns the anchor configuration and an optional memo cache so
// unrelated re-renders of the same upload do not recompute the analysis.
// The cache is keyed by a content hash of the input table, never by object
// identity; recomputation is idempotent, so disabling the cache changes
// nothing but speed.
type Engine struct {
	anchors AnchorConfig

	mu   sync.RWMutex
	memo map[string]*Analysis // nil when caching disabled
}

// NewEngine creates an engine with memoization enabled.
func NewEngine(anchors AnchorConfig) *Engine {
	return &Engine{
		anchors: anchors,
		memo:    make(map[string]*Analysis),
	}
}

// NewEngineNoCache creates an engine that always recomputes.
func NewEngineNoCache(anchors AnchorConfig) *Engine {
	return &Engine{anchors: anchors}
}

// Anchors returns the engine's anchor configuration.
func (e *Engine) Anchors() AnchorConfig {
	return e.anchors
}

// Analyze runs both engine operations over the table, consulting the memo
// cache first. The returned Analysis is shared between callers on a cache
// hit and must be treated as read-only.
func (e *Engine) Analyze(table LineItemTable) (*Analysis, error) {
	key := ContentHash(table)

	if e.memo != nil {
		e.mu.RLock()
		cached, ok := e.memo[key]
		e.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	enriched, err := ComputeGrowthAndComposition(table, e.anchors)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{
		Enriched: enriched,
		Summary:  ComputeCurrentRatio(enriched, e.anchors),
	}

	if e.memo != nil {
		e.mu.Lock()
		e.memo[key] = analysis
		e.mu.Unlock()
	}
	return analysis, nil
}

// ContentHash returns a stable hex digest of the table's content. Rows are
// serialized in order with field separators so permuted or edited tables
// never collide.
func ContentHash(table LineItemTable) string {
	var sb strings.Builder
	for _, row := range table {
		fmt.Fprintf(&sb, "%s\x1f%g\x1f%g\x1e", row.Label, row.Prior, row.Current)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
