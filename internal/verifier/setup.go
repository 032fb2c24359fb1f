package verifier

import (
	"fmt"

	"github.com/fadilmartias/resume-screener/internal/config"
	"go.uber.org/zap"
)

// NewCache builds the cache backend selected in cfg.
func NewCache(cfg *config.VerifierConfig) (Cache, error) {
	switch cfg.CacheDriver {
	case "", config.CacheDriverMemory:
		return NewMemoryCache(cfg.CacheCapacity, cfg.CacheTTL)
	case config.CacheDriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis cache driver")
		}
		return NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
	case config.CacheDriverLevelDB:
		return NewLevelDBCache(cfg.LevelDBPath, cfg.CacheTTL)
	default:
		return nil, fmt.Errorf("unknown verification cache driver %q", cfg.CacheDriver)
	}
}

// NewFromConfig wires LinkedIn and GitHub sources, rate limiters and the cache.
func NewFromConfig(cfg *config.VerifierConfig, logger *zap.Logger) (*Verifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	selectors, err := LoadSelectors(cfg.LinkedInSelectorsFile)
	if err != nil {
		return nil, fmt.Errorf("linkedin selectors: %w", err)
	}

	cache, err := NewCache(cfg)
	if err != nil {
		return nil, err
	}

	linkedinFetcher := NewFetcher(
		WithTimeout(cfg.RequestTimeout),
		WithRetries(cfg.MaxRetries, cfg.RetryBaseBackoff),
		WithFetchLogger(logger.Named("linkedin")),
	)
	githubFetcher := NewFetcher(
		WithTimeout(cfg.RequestTimeout),
		WithRetries(cfg.MaxRetries, cfg.RetryBaseBackoff),
		WithBearerToken(cfg.GitHubToken),
		WithHeader("Accept", "application/vnd.github+json"),
		WithFetchLogger(logger.Named("github")),
	)

	linkedin := NewLinkedInVerifier(
		linkedinFetcher,
		NewSelectorParser(selectors),
		NewSpacer(cfg.LinkedInDelay),
		logger.Named("linkedin"),
	)
	github := NewGitHubVerifier(
		githubFetcher,
		NewBudget(cfg.GitHubBudget, cfg.GitHubWindow),
		WithGitHubEndpoints(cfg.GitHubAPIURL, cfg.GitHubRawURL),
		WithReadmeTimeout(cfg.ReadmeTimeout),
		WithGitHubLogger(logger.Named("github")),
	)

	return New(linkedin, github, cache, WithLogger(logger.Named("verifier"))), nil
}
