// Package app wires configuration into the historian's components.
package app

import (
	log "github.com/sirupsen/logrus"

	"hosllm/internal/config"
	"hosllm/internal/dataset"
	"hosllm/internal/historian"
	"hosllm/internal/llm"
	"hosllm/internal/lookup"
	"hosllm/internal/storage"
	"hosllm/internal/wiki"
)

type App struct {
	Store     *dataset.Store
	Historian *historian.Historian
	Recorder  storage.Recorder
}

func New(cfg *config.Config) *App {
	if cfg.WikipediaAPIKey == "" {
		log.Warn("WIKIPEDIA_API_KEY is not set; Wikipedia requests will be sent without authorization")
	}

	store := dataset.Open(cfg.DatasetPath)

	client := wiki.NewClient(cfg.WikipediaAPIKey, cfg.WikipediaTimeout,
		wiki.WithBaseURL(cfg.WikipediaBaseURL),
		wiki.WithUserAgent(cfg.WikipediaUserAgent),
	)
	fallback := wiki.NewFallback(client, store)

	var ranker *lookup.Ranker
	if cfg.SimilarityEnabled() {
		emb := llm.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.WikipediaTimeout)
		ranker = lookup.NewRanker(emb, cfg.SimilarityThreshold)
		log.Infof("similarity ranking enabled (model=%s, threshold=%.2f)", cfg.EmbeddingModel, cfg.SimilarityThreshold)
	}

	var rec storage.Recorder
	if cfg.TranscriptFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.TranscriptFilePath)
		if err != nil {
			log.Printf("failed to init transcript recorder: %v", err)
		} else {
			rec = fr
		}
	}

	return &App{
		Store:     store,
		Historian: historian.New(store, fallback, ranker),
		Recorder:  rec,
	}
}
