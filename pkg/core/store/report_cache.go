package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"finlens/pkg/core/ratio"
)

// ReportCache persists computed analyses keyed by the content hash of the
// uploaded table. Hybrid vault: DB when a pool is configured, local files
// otherwise. It is purely an optimization; the engine recomputes
// identically when the cache is cold or disabled.
type ReportCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewReportCache creates a cache instance. With a nil pool and empty dir it
// defaults to a file vault under .cache/finlens/reports.
func NewReportCache(pool *pgxpool.Pool, dir string) *ReportCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "finlens", "reports")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check ReportCache dir: %v\n", err)
		}
	}
	return &ReportCache{pool: pool, fileDir: dir}
}

// ReportEntry is the stored record for one analyzed upload.
type ReportEntry struct {
	ContentHash string          `json:"content_hash"`
	FileName    string          `json:"file_name"`
	Analysis    *ratio.Analysis `json:"analysis"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Get retrieves a cached analysis by content hash. A miss returns
// (nil, nil): the caller computes and saves.
func (c *ReportCache) Get(ctx context.Context, contentHash string) (*ratio.Analysis, error) {
	if c.pool != nil {
		query := `
			SELECT analysis
			FROM analysis_reports
			WHERE content_hash = $1
			LIMIT 1
		`
		var dataJSON []byte
		err := c.pool.QueryRow(ctx, query, contentHash).Scan(&dataJSON)
		if err != nil {
			return nil, nil // Cache miss
		}
		var analysis ratio.Analysis
		if err := json.Unmarshal(dataJSON, &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached analysis: %w", err)
		}
		return &analysis, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.reportPath(contentHash))
	}

	return nil, nil
}

// Save stores an analysis under its content hash.
func (c *ReportCache) Save(ctx context.Context, contentHash, fileName string, analysis *ratio.Analysis) error {
	dataJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO analysis_reports (content_hash, file_name, analysis)
			VALUES ($1, $2, $3)
			ON CONFLICT (content_hash)
			DO UPDATE SET
				file_name = EXCLUDED.file_name,
				analysis = EXCLUDED.analysis,
				updated_at = NOW()
		`
		if _, err := c.pool.Exec(ctx, query, contentHash, fileName, dataJSON); err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
		return nil
	}

	if c.fileDir != "" {
		entry := ReportEntry{
			ContentHash: contentHash,
			FileName:    fileName,
			Analysis:    analysis,
			CreatedAt:   time.Now(),
		}
		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		if err := os.WriteFile(c.reportPath(contentHash), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether an analysis is already cached.
func (c *ReportCache) Exists(ctx context.Context, contentHash string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM analysis_reports WHERE content_hash = $1 LIMIT 1`
		var one int
		return c.pool.QueryRow(ctx, query, contentHash).Scan(&one) == nil
	}
	if c.fileDir != "" {
		_, err := os.Stat(c.reportPath(contentHash))
		return err == nil
	}
	return false
}

func (c *ReportCache) reportPath(contentHash string) string {
	return filepath.Join(c.fileDir, contentHash+".json")
}

func (c *ReportCache) loadFromFile(path string) (*ratio.Analysis, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry ReportEntry
	if err := json.Unmarshal(bytes, &entry); err == nil && entry.Analysis != nil {
		return entry.Analysis, nil
	}

	// Fallback: raw Analysis written by older versions
	var analysis ratio.Analysis
	if err := json.Unmarshal(bytes, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
