package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"finlens/pkg/api/analyze"
	apichat "finlens/pkg/api/chat"
	apicommentary "finlens/pkg/api/commentary"
	"finlens/pkg/api/config"
	"finlens/pkg/core/agent"
	corechat "finlens/pkg/core/chat"
	corecommentary "finlens/pkg/core/commentary"
	"finlens/pkg/core/prompt"
	"finlens/pkg/core/ratio"
	"finlens/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to built-in prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Anchor patterns, overridable without a rebuild
	anchors, err := ratio.LoadAnchors("config/anchors.hjson")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load anchor config: %v\n", err)
		fmt.Println("  Falling back to built-in anchor patterns")
		anchors = ratio.DefaultAnchors()
	}
	engine := ratio.NewEngine(anchors)

	// Report cache: Postgres when DATABASE_URL is set, files otherwise
	var reportCache *store.ReportCache
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using file cache only: %v\n", err)
		}
	}
	reportCache = store.NewReportCache(store.GetPool(), "")

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Analysis endpoint
	analyzeHandler := analyze.NewHandler(engine, reportCache)
	http.HandleFunc("/api/analyze", analyzeHandler.HandleAnalyze)

	// AI commentary endpoint
	commentarySvc := corecommentary.NewService(agentMgr)
	commentaryHandler := apicommentary.NewHandler(commentarySvc, anchors)
	http.HandleFunc("/api/commentary", commentaryHandler.HandleCommentary)

	// Chat assistant endpoints
	chatSvc := corechat.NewService(agentMgr, 2*time.Hour)
	chatHandler := apichat.NewHandler(chatSvc)
	http.HandleFunc("/api/chat/start", chatHandler.HandleStart)
	http.HandleFunc("/api/chat/message", chatHandler.HandleMessage)
	http.HandleFunc("/api/chat/history", chatHandler.HandleHistory)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/analyze")
	fmt.Println("  - POST /api/commentary")
	fmt.Println("  - POST /api/chat/start")
	fmt.Println("  - POST /api/chat/message")
	fmt.Println("  - GET  /api/chat/history")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
