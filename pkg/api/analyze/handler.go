// Package analyze exposes the upload-and-compute endpoint: a spreadsheet
// goes in, the enriched table and ratio summary come out.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"finlens/pkg/core/ingest"
	"finlens/pkg/core/ratio"
	"finlens/pkg/core/store"
)

// Handler wires the ratio engine and the report cache into HTTP.
type Handler struct {
	engine *ratio.Engine
	cache  *store.ReportCache
}

// NewHandler creates an analyze handler. cache may be nil to disable
// persistence entirely.
func NewHandler(engine *ratio.Engine, cache *store.ReportCache) *Handler {
	return &Handler{engine: engine, cache: cache}
}

// Request is the JSON alternative to a multipart upload: pre-parsed rows
// or a pasted HTML table.
type Request struct {
	Rows []ratio.LineItem `json:"rows,omitempty"`
	HTML string           `json:"html,omitempty"`
}

// Response carries everything the presentation layer renders.
type Response struct {
	ContentHash string                      `json:"content_hash"`
	Enriched    ratio.EnrichedLineItemTable `json:"enriched"`
	Summary     ratio.RatioSummary          `json:"summary"`
	Cached      bool                        `json:"cached"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Category string   `json:"category,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
}

// HandleAnalyze accepts a multipart upload (field "file", xlsx or csv) or
// a JSON body with rows/html, computes the analysis, and returns it.
// A missing total-assets anchor is a 422 with the accepted patterns so the
// user can fix their labels; malformed uploads are 400s. Neither crashes
// the session.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	table, fileName, err := h.readTable(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hash := ratio.ContentHash(table)
	ctx := r.Context()

	if analysis := h.cachedAnalysis(ctx, hash); analysis != nil {
		writeJSON(w, Response{ContentHash: hash, Enriched: analysis.Enriched, Summary: analysis.Summary, Cached: true})
		return
	}

	analysis, err := h.engine.Analyze(table)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Save(ctx, hash, fileName, analysis); err != nil {
			fmt.Printf("[WARNING] Failed to save report cache: %v\n", err)
		}
	}

	writeJSON(w, Response{ContentHash: hash, Enriched: analysis.Enriched, Summary: analysis.Summary})
}

func (h *Handler) cachedAnalysis(ctx context.Context, hash string) *ratio.Analysis {
	if h.cache == nil {
		return nil
	}
	analysis, err := h.cache.Get(ctx, hash)
	if err != nil {
		fmt.Printf("[WARNING] Report cache read failed: %v\n", err)
		return nil
	}
	return analysis
}

// readTable extracts a LineItemTable from whichever input form the request
// uses.
func (h *Handler) readTable(r *http.Request) (ratio.LineItemTable, string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", &ingest.StructureError{Detail: "missing upload field \"file\""}
		}
		defer file.Close()

		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".xlsx", ".xlsm", ".xls":
			table, err := ingest.ParseXLSX(file)
			return table, header.Filename, err
		case ".csv":
			data, err := io.ReadAll(file)
			if err != nil {
				return nil, "", fmt.Errorf("failed to read upload: %w", err)
			}
			table, err := ingest.ParseCSV(data)
			return table, header.Filename, err
		default:
			return nil, "", &ingest.StructureError{Detail: "unsupported file type: " + header.Filename}
		}
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "", &ingest.StructureError{Detail: "invalid request body"}
	}
	if req.HTML != "" {
		table, err := ingest.ParseHTMLTable(req.HTML)
		return table, "pasted-table", err
	}
	if len(req.Rows) == 0 {
		return nil, "", &ingest.StructureError{Detail: "no rows, html, or file provided"}
	}
	return ratio.LineItemTable(req.Rows), "inline-rows", nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var missing *ratio.MissingAnchorError
	if errors.As(err, &missing) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(errorResponse{
			Error:    missing.Error(),
			Category: missing.Category,
			Patterns: missing.Patterns,
		})
		return
	}

	var structural *ingest.StructureError
	if errors.As(err, &structural) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: structural.Error()})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
