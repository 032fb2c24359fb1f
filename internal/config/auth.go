package config

import (
	"os"
	"sync"
)

type AuthConfig struct {
	JWTSecret string
	Audience  string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Audience:  envString("JWT_AUDIENCE", "authenticated"),
		}
	})
	return authConfig
}
