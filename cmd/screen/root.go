package main

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "screen"

type Config struct {
	Title       string            `mapstructure:"title"`
	Criteria    []model.Criterion `mapstructure:"criteria"`
	AI          *AIConfig         `mapstructure:"ai"`
	Verify      bool              `mapstructure:"verify"`
	Concurrency int               `mapstructure:"concurrency"`
}

type AIConfig struct {
	Provider        string `mapstructure:"provider"`
	MaxOutputTokens int    `mapstructure:"max-output-tokens"`
	EmbedResumes    bool   `mapstructure:"embed-resumes"`
}

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "screen is a batch resume screener that ranks a folder of PDFs against criteria",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screen.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadConfig reads the screening config from path, or screen.yaml in the
// working directory when path is empty.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("concurrency", 2)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Criteria) == 0 {
		return fmt.Errorf("config: at least one criterion is required")
	}
	seen := make(map[string]struct{}, len(c.Criteria))
	for i, cr := range c.Criteria {
		if cr.ID == "" || cr.Name == "" {
			return fmt.Errorf("config: criterion %d needs an id and a name", i)
		}
		if _, dup := seen[cr.ID]; dup {
			return fmt.Errorf("config: duplicate criterion id %q", cr.ID)
		}
		seen[cr.ID] = struct{}{}
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.Title == "" {
		c.Title = "Resume Screening Report"
	}
	return nil
}
