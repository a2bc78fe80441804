package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/config"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/history"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/llm"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/logger"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/relay"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	if cfg.LLM.APIKey == "" {
		logger.L.Warn("GEMINI_API_KEY not set, all replies will use the keyword fallback")
	}

	store := history.NewStore(cfg.Database.Path)
	llmClient := llm.NewClient(cfg.LLM)
	chatRelay := relay.New(llmClient, cfg.LLM)
	srv := server.New(chatRelay, store)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server",
		"address", addr,
		"model", cfg.LLM.Model,
		"environment", cfg.Environment,
	)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
