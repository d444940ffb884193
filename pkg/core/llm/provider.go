package llm

import (
	"context"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Provider is the interface for all LLM providers. GenerateResponse covers
// one-shot calls (commentary); GenerateChat replays a transcript so the
// model keeps prior turns for context.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	GenerateChat(ctx context.Context, history []Message, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// OpenAIProvider is a placeholder slot so configs naming "openai" still
// resolve to a provider.
type OpenAIProvider struct{}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return "Not implemented: OpenAI Response", nil
}

func (p *OpenAIProvider) GenerateChat(ctx context.Context, history []Message, systemPrompt string, options map[string]interface{}) (string, error) {
	return "Not implemented: OpenAI Chat", nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return raw
}
