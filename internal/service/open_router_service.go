package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService talks to any OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client    *resty.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, maxTokens int, l *zap.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	if maxTokens <= 0 {
		maxTokens = 500
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second)

	return &OpenRouterService{
		client:    client,
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    logger.OrNop(l),
	}, nil
}

func (s *OpenRouterService) Analyze(ctx context.Context, text string, criteria []model.Criterion) (*model.ResumeAnalysis, error) {
	content, err := s.complete(ctx, systemPrompt, BuildPrompt(text, criteria))
	if err != nil {
		return nil, err
	}
	analysis, err := ParseAnalysisJSON(content)
	if err != nil {
		s.logger.Warn("unparseable analysis", zap.String("content", logger.TruncateForLog(content, 500)))
		return nil, err
	}
	return analysis, nil
}

func (s *OpenRouterService) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": prompt},
			},
			"temperature": 0.1,
			"max_tokens":  s.maxTokens,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", apperror.E(apperror.KindExternalService, "AI request failed", err)
	}

	body := resp.Body()
	if resp.IsError() {
		msg := gjson.GetBytes(body, "error.message").String()
		s.logger.Error("AI request rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", msg),
		)
		return "", apperror.E(apperror.KindExternalService,
			fmt.Sprintf("AI API returned status %d", resp.StatusCode()), nil)
	}

	s.logger.Debug("AI usage",
		zap.String("model", gjson.GetBytes(body, "model").String()),
		zap.Int64("prompt_tokens", gjson.GetBytes(body, "usage.prompt_tokens").Int()),
		zap.Int64("completion_tokens", gjson.GetBytes(body, "usage.completion_tokens").Int()),
	)

	text := gjson.GetBytes(body, "choices.0.message.content").String()
	if text == "" {
		return "", apperror.E(apperror.KindExternalService, "no response from LLM", nil)
	}
	return text, nil
}
