package config

import (
	"strings"
	"sync"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

type AIConfig struct {
	Provider        string
	EmbedResumes    bool
	MaxOutputTokens int
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		aiConfig = &AIConfig{
			Provider:        strings.ToLower(envString("AI_PROVIDER", ProviderOpenRouter)),
			EmbedResumes:    envBool("AI_EMBED_RESUMES", false),
			MaxOutputTokens: envInt("AI_MAX_OUTPUT_TOKENS", 500),
		}
	})
	return aiConfig
}
