// Package commentary exposes the AI assessment endpoint. It is strictly
// advisory: a failed model call returns a message, and the numeric results
// the client already holds stay untouched.
package commentary

import (
	"encoding/json"
	"net/http"

	"finlens/pkg/core/commentary"
	"finlens/pkg/core/ratio"
)

type Handler struct {
	svc     *commentary.Service
	anchors ratio.AnchorConfig
}

func NewHandler(svc *commentary.Service, anchors ratio.AnchorConfig) *Handler {
	return &Handler{svc: svc, anchors: anchors}
}

// Request carries the analysis the client already computed via /api/analyze.
type Request struct {
	Enriched   ratio.EnrichedLineItemTable `json:"enriched"`
	Summary    ratio.RatioSummary          `json:"summary"`
	Structured bool                        `json:"structured,omitempty"`
}

func (h *Handler) HandleCommentary(w http.ResponseWriter, r *http.Request) {
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Enriched) == 0 {
		http.Error(w, "No analysis rows provided", http.StatusBadRequest)
		return
	}

	analysis := &ratio.Analysis{Enriched: req.Enriched, Summary: req.Summary}

	var result *commentary.Result
	var err error
	if req.Structured {
		result, err = h.svc.GenerateStructured(r.Context(), analysis, h.anchors)
	} else {
		result, err = h.svc.Generate(r.Context(), analysis, h.anchors)
	}
	if err != nil {
		// Advisory feature: report the failure, keep the session alive.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "AI commentary unavailable: " + err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
