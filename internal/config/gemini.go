package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          envString("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: envString("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		}
	})
	return geminiConfig
}
