package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google's Gemini
// models via the official GenAI SDK.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.5-flash"
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

const defaultGeminiModel = "gemini-2.5-flash"

func (p *GeminiProvider) client(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func (p *GeminiProvider) resolveModel(options map[string]interface{}) string {
	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}
	return model
}

func buildConfig(systemPrompt string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}
	return config
}

// GenerateResponse sends a single-turn generateContent request.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		p.resolveModel(options),
		genai.Text(prompt),
		buildConfig(systemPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}

// GenerateChat replays the full transcript as alternating user/model
// contents so the model answers with prior turns in context.
func (p *GeminiProvider) GenerateChat(ctx context.Context, history []Message, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	result, err := client.Models.GenerateContent(
		ctx,
		p.resolveModel(options),
		contents,
		buildConfig(systemPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return result.Text(), nil
}

func (p *GeminiProvider) AdaptInstructions(raw string) string {
	return raw
}
