package prompt

import (
	"fmt"
	"sync"
)

// Registry holds all loaded prompts.
type Registry struct {
	prompts map[string]*Template
	mu      sync.RWMutex
}

var globalRegistry *Registry
var once sync.Once

// Get returns the global registry singleton, pre-seeded with the built-in
// defaults. Loading a resources directory overwrites matching IDs.
func Get() *Registry {
	once.Do(func() {
		globalRegistry = &Registry{prompts: make(map[string]*Template)}
		for _, pt := range builtinDefaults() {
			globalRegistry.prompts[pt.ID] = pt
		}
	})
	return globalRegistry
}

// Register adds a prompt template to the registry.
func (r *Registry) Register(pt *Template) error {
	if pt.ID == "" {
		return fmt.Errorf("prompt ID cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[pt.ID] = pt
	return nil
}

// GetPrompt retrieves a prompt by ID.
func (r *Registry) GetPrompt(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.prompts[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("prompt not found: %s", id)
}

// SystemPrompt is a convenience accessor returning only the system prompt.
func (r *Registry) SystemPrompt(id string) (string, error) {
	pt, err := r.GetPrompt(id)
	if err != nil {
		return "", err
	}
	return pt.SystemPrompt, nil
}

// Count returns the number of registered prompts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prompts)
}

// Built-in prompt IDs.
const (
	IDCommentary = "analysis.commentary"
	IDChat       = "chat.assistant"
)

func builtinDefaults() []*Template {
	return []*Template{
		{
			ID:       IDCommentary,
			Name:     "Financial Commentary",
			Category: "analysis",
			SystemPrompt: "You are a professional financial analyst. Based on the " +
				"indicators provided, write an objective, concise assessment " +
				"(3-4 paragraphs) of the company's financial position. Focus on " +
				"growth rates, shifts in asset composition, and short-term " +
				"liquidity (the current ratio). Do not invent figures that are " +
				"not in the data.",
			UserPromptTmpl: "Raw data and computed indicators:\n\n{{.Digest}}",
			Version:        "1",
		},
		{
			ID:       IDChat,
			Name:     "Finance Chat Assistant",
			Category: "chat",
			SystemPrompt: "You are a professional financial analysis assistant. " +
				"Answer questions about financial indicators, analysis methods, " +
				"and accounting concepts accurately and concisely. Stay polite " +
				"and professional.",
			Version: "1",
		},
	}
}
