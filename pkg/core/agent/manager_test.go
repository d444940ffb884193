package agent

import (
	"testing"

	"finlens/pkg/core/llm"
)

func TestGetProvider_AgentOverrideBeatsGlobal(t *testing.T) {
	mgr := NewManager(Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"chat": {Provider: "deepseek"},
		},
	})

	if _, ok := mgr.GetProvider("chat").(*llm.DeepSeekProvider); !ok {
		t.Errorf("chat agent should resolve to DeepSeek, got %T", mgr.GetProvider("chat"))
	}
	if _, ok := mgr.GetProvider("commentary").(*llm.GeminiProvider); !ok {
		t.Errorf("unconfigured agent should use global provider, got %T", mgr.GetProvider("commentary"))
	}
}

func TestGetProvider_FallbackWhenUnknown(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "does-not-exist"})
	if _, ok := mgr.GetProvider("anything").(*llm.GeminiProvider); !ok {
		t.Errorf("unknown active provider should fall back to gemini, got %T", mgr.GetProvider("anything"))
	}
}

func TestSetGlobalProvider(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "gemini"})
	if err := mgr.SetGlobalProvider("qwen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.GetActiveProvider() != "qwen" {
		t.Errorf("expected qwen, got %s", mgr.GetActiveProvider())
	}
	if err := mgr.SetGlobalProvider("nope"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestOptions_ModelMergedFromAgentConfig(t *testing.T) {
	mgr := NewManager(Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"commentary": {Model: "gemini-2.5-pro"},
		},
	})

	opts := mgr.options("commentary", nil)
	if opts["model"] != "gemini-2.5-pro" {
		t.Errorf("expected configured model, got %v", opts["model"])
	}

	// Explicit caller option wins.
	opts = mgr.options("commentary", map[string]interface{}{"model": "override"})
	if opts["model"] != "override" {
		t.Errorf("caller option should win, got %v", opts["model"])
	}
}
