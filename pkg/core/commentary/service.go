package commentary

import (
	"context"
	"fmt"

	"finlens/pkg/core/agent"
	"finlens/pkg/core/prompt"
	"finlens/pkg/core/ratio"
	"finlens/pkg/core/utils"
)

const agentType = "commentary"

// Verdict is an optional structured reading of the commentary, parsed
// leniently from the model's JSON.
type Verdict struct {
	Stance     string   `json:"stance"` // "positive", "neutral", "negative"
	Highlights []string `json:"highlights"`
}

// Result is the commentary returned to the presentation layer.
type Result struct {
	Markdown string   `json:"markdown"`
	Verdict  *Verdict `json:"verdict,omitempty"`
}

// Service asks the commentary agent for a prose assessment.
type Service struct {
	agentMgr *agent.Manager
}

func NewService(agentMgr *agent.Manager) *Service {
	return &Service{agentMgr: agentMgr}
}

// Generate produces the prose commentary for an analysis. The returned
// error is advisory: callers show the message and keep the numeric results.
func (s *Service) Generate(ctx context.Context, analysis *ratio.Analysis, anchors ratio.AnchorConfig) (*Result, error) {
	pt, err := prompt.Get().GetPrompt(prompt.IDCommentary)
	if err != nil {
		return nil, fmt.Errorf("commentary prompt missing: %w", err)
	}

	digest := BuildDigest(analysis, anchors)
	userPrompt, err := prompt.RenderUserPrompt(pt, prompt.NewContext().Set("Digest", digest))
	if err != nil {
		return nil, fmt.Errorf("failed to render commentary prompt: %w", err)
	}

	raw, err := s.agentMgr.ExecutePrompt(ctx, agentType, userPrompt, pt.SystemPrompt, nil)
	if err != nil {
		return nil, fmt.Errorf("commentary call failed: %w", err)
	}

	return &Result{Markdown: utils.CleanMarkdown(raw)}, nil
}

// GenerateStructured additionally asks for a JSON verdict and parses it
// leniently. A malformed verdict degrades to prose-only, never to an error.
func (s *Service) GenerateStructured(ctx context.Context, analysis *ratio.Analysis, anchors ratio.AnchorConfig) (*Result, error) {
	result, err := s.Generate(ctx, analysis, anchors)
	if err != nil {
		return nil, err
	}

	verdictPrompt := fmt.Sprintf(
		"Based on this commentary, respond with ONLY a JSON object "+
			`{"stance": "positive"|"neutral"|"negative", "highlights": ["..."]}`+
			" summarizing it.\n\n%s", result.Markdown)

	raw, err := s.agentMgr.ExecutePrompt(ctx, agentType, verdictPrompt, "", nil)
	if err != nil {
		return result, nil
	}

	var v Verdict
	if parseErr := utils.SmartParse(utils.CleanMarkdown(raw), &v); parseErr == nil && v.Stance != "" {
		result.Verdict = &v
	}
	return result, nil
}
