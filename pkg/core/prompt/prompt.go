// Package prompt provides a small prompt library for LLM interactions.
// Prompts live in JSON files loaded at runtime so wording can change
// without code changes; built-in defaults keep the service functional when
// no resources directory is present.
package prompt

// Template represents a reusable prompt with metadata.
type Template struct {
	ID             string `json:"id"`                   // e.g. "analysis.commentary"
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // analysis, chat, ...
	Description    string `json:"description"`          // Purpose of the prompt
	SystemPrompt   string `json:"system_prompt"`        // System prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for the user prompt
	Version        string `json:"version"`
}

// ExecutionContext holds runtime values for template substitution.
type ExecutionContext struct {
	Variables map[string]interface{}
}

// NewContext creates an empty execution context.
func NewContext() *ExecutionContext {
	return &ExecutionContext{Variables: make(map[string]interface{})}
}

// Set adds a variable to the context.
func (c *ExecutionContext) Set(key string, value interface{}) *ExecutionContext {
	c.Variables[key] = value
	return c
}
