package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// Dataset
	DatasetPath string `env:"DATASET_PATH" envDefault:"HOSLLM_Historical_Dataset.csv"`

	// Wikipedia fallback
	WikipediaAPIKey    string        `env:"WIKIPEDIA_API_KEY"`
	WikipediaBaseURL   string        `env:"WIKIPEDIA_BASE_URL" envDefault:"https://en.wikipedia.org"`
	WikipediaUserAgent string        `env:"WIKIPEDIA_USER_AGENT" envDefault:"HOSLLM"`
	WikipediaTimeout   time.Duration `env:"WIKIPEDIA_TIMEOUT" envDefault:"10s"`

	// Similarity ranking for name lookups (optional)
	OpenAIAPIKey        string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string  `env:"OPENAI_BASE_URL"`
	EmbeddingModel      string  `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	SimilarityThreshold float64 `env:"SIMILARITY_THRESHOLD" envDefault:"0.5"`

	// Session
	TranscriptFilePath string `env:"TRANSCRIPT_FILE_PATH" envDefault:"logs/transcript.jsonl"`
	HistoryLimit       int    `env:"HISTORY_LIMIT" envDefault:"10"`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFilePath string `env:"LOG_FILE_PATH"`
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// SimilarityEnabled reports whether embedding-based name ranking can be used.
func (c *Config) SimilarityEnabled() bool {
	return c.OpenAIAPIKey != ""
}
