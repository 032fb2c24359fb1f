package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	BodyLimit int
	LogJSON   bool
	Debug     bool
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:      envString("APP_NAME", "resume-screener"),
			Env:       env,
			Port:      envString("APP_PORT", ":8080"),
			BaseURL:   envString("APP_URL", "http://localhost:8080"),
			BodyLimit: envInt("APP_BODY_LIMIT", 10*1024*1024),
			LogJSON:   envBool("LOG_JSON", env == "production"),
			Debug:     envBool("LOG_DEBUG", false),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
