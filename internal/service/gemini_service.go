package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const embeddingTextLimit = 10000

type GeminiService struct {
	Client          *genai.Client
	Model           string
	EmbeddingModel  string
	MaxOutputTokens int32
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	RequestTimeout  time.Duration

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	logger            *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, maxTokens int, l *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.Model,
		EmbeddingModel:    cfg.EmbeddingModel,
		MaxOutputTokens:   int32(maxTokens),
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
		logger:            logger.OrNop(l),
	}, nil
}

func (s *GeminiService) Analyze(ctx context.Context, text string, criteria []model.Criterion) (*model.ResumeAnalysis, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.1)),
		ResponseMIMEType:  "application/json",
	}
	if s.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = s.MaxOutputTokens
	}

	result, err := s.GenerateContent(ctx, BuildPrompt(text, criteria), genConfig)
	if err != nil {
		return nil, apperror.E(apperror.KindExternalService, "AI request failed", err)
	}

	content := result.Text()
	analysis, err := ParseAnalysisJSON(content)
	if err != nil {
		s.logger.Warn("unparseable analysis", zap.String("content", logger.TruncateForLog(content, 500)))
		return nil, err
	}
	return analysis, nil
}

func (s *GeminiService) GenerateContent(ctx context.Context, prompt string, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if s.Model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	if err := s.checkCircuit(); err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying GenerateContent",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.GenerateContent(
			timeoutCtx,
			s.Model,
			genai.Text(prompt),
			genConfig,
		)

		if err == nil {
			s.recordSuccess()
			if err := s.validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			s.logger.Warn("non-retryable error", zap.Error(err))
			s.recordFailure()
			return nil, fmt.Errorf("generate content failed: %w", err)
		}

		s.logger.Warn("retryable error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if runes := []rune(trimmedText); len(runes) > embeddingTextLimit {
		s.logger.Warn("embedding text exceeds recommended limit, truncating", zap.Int("length", len(runes)))
		trimmedText = string(runes[:embeddingTextLimit])
	}

	if err := s.checkCircuit(); err != nil {
		return nil, err
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying GenerateEmbedding",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.EmbedContent(
			timeoutCtx,
			s.EmbeddingModel,
			content,
			nil,
		)

		if err == nil {
			s.recordSuccess()
			embeddings, err := s.validateEmbeddingResponse(result)
			if err != nil {
				return nil, fmt.Errorf("invalid embedding response: %w", err)
			}
			return embeddings, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			s.logger.Warn("non-retryable error", zap.Error(err))
			s.recordFailure()
			return nil, fmt.Errorf("generate embedding failed: %w", err)
		}

		s.logger.Warn("retryable error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateEmbedding: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	errMsg := err.Error()
	for _, transient := range []string{"connection refused", "connection reset", "timeout", "temporary failure", "EOF"} {
		if strings.Contains(errMsg, transient) {
			return true
		}
	}
	return false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embeddings, nil
}

func (s *GeminiService) checkCircuit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors >= s.circuitBreakerMax {
		return apperror.E(apperror.KindExternalService, "AI service temporarily unavailable",
			fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors))
	}
	return nil
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.mu.Unlock()
}

func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	s.consecutiveErrors++
	s.mu.Unlock()
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	s.logger.Info("circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}
