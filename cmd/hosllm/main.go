package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"hosllm/internal/app"
	"hosllm/internal/config"
	"hosllm/internal/logging"
	"hosllm/internal/session"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debugf(".env file not found: %v", err)
	}

	cfg := config.New()
	if err := logging.Setup(cfg.LogLevel, cfg.LogFilePath); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	a := app.New(cfg)

	s := session.New(os.Stdin, os.Stdout, a.Historian,
		session.WithLoadedCount(a.Store.Len()),
		session.WithRecorder(a.Recorder),
		session.WithHistoryLimit(cfg.HistoryLimit),
	)
	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("session failed: %v", err)
	}
}
