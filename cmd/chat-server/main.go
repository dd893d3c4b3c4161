package main

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"bounty-chat-backend/internal/config"
	"bounty-chat-backend/internal/logger"
	"bounty-chat-backend/internal/phrases"
	"bounty-chat-backend/internal/server"
	"bounty-chat-backend/internal/webhook"
)

func main() {
	cfg := config.Load()
	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zl.Sync() }()
	log := logger.NewZapAdapter(zl)

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}
	p, err := phrases.Load(cfg.PhrasesFile)
	if err != nil {
		zl.Fatal("failed to load phrases", zap.Error(err), zap.String("path", cfg.PhrasesFile))
	}

	s := server.NewServer(cfg, webhook.NewClient(cfg, log), p, log)
	addr := ":" + cfg.Port
	zl.Info("chat server listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.Duration("webhook_timeout", cfg.WebhookTimeout),
	)
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		zl.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
