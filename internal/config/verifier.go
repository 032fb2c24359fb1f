package config

import (
	"os"
	"strings"
	"sync"
	"time"
)

const (
	CacheDriverMemory  = "memory"
	CacheDriverRedis   = "redis"
	CacheDriverLevelDB = "leveldb"
)

type VerifierConfig struct {
	CacheDriver   string
	CacheCapacity int
	CacheTTL      time.Duration
	RedisURL      string
	LevelDBPath   string

	LinkedInDelay         time.Duration
	LinkedInSelectorsFile string

	GitHubAPIURL     string
	GitHubRawURL     string
	GitHubToken      string
	GitHubBudget     int
	GitHubWindow     time.Duration
	RequestTimeout   time.Duration
	ReadmeTimeout    time.Duration
	MaxRetries       int
	RetryBaseBackoff time.Duration
}

var (
	verifierConfig *VerifierConfig
	verifierOnce   sync.Once
)

func LoadVerifierConfig() *VerifierConfig {
	verifierOnce.Do(func() {
		verifierConfig = &VerifierConfig{
			CacheDriver:   strings.ToLower(envString("VERIFY_CACHE_DRIVER", CacheDriverMemory)),
			CacheCapacity: envInt("VERIFY_CACHE_CAPACITY", 1000),
			CacheTTL:      envDuration("VERIFY_CACHE_TTL", 24*time.Hour),
			RedisURL:      os.Getenv("REDIS_URL"),
			LevelDBPath:   envString("VERIFY_LEVELDB_PATH", "./data/verification"),

			LinkedInDelay:         envDuration("LINKEDIN_DELAY", 3*time.Second),
			LinkedInSelectorsFile: os.Getenv("LINKEDIN_SELECTORS_FILE"),

			GitHubAPIURL:     envString("GITHUB_API_URL", "https://api.github.com"),
			GitHubRawURL:     envString("GITHUB_RAW_URL", "https://raw.githubusercontent.com"),
			GitHubToken:      os.Getenv("GITHUB_TOKEN"),
			GitHubBudget:     envInt("GITHUB_HOURLY_BUDGET", 55),
			GitHubWindow:     envDuration("GITHUB_BUDGET_WINDOW", time.Hour),
			RequestTimeout:   envDuration("VERIFY_REQUEST_TIMEOUT", 10*time.Second),
			ReadmeTimeout:    envDuration("VERIFY_README_TIMEOUT", 5*time.Second),
			MaxRetries:       envInt("VERIFY_MAX_RETRIES", 3),
			RetryBaseBackoff: envDuration("VERIFY_RETRY_BACKOFF", time.Second),
		}
	})
	return verifierConfig
}
