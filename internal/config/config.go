// Package config loads service configuration from an optional config file
// with BOUTIQUE_* environment variables taking precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	SQLitePath string `mapstructure:"sqlite_path"`

	LLM struct {
		BaseURL     string        `mapstructure:"base_url"`
		APIKey      string        `mapstructure:"api_key"`
		Model       string        `mapstructure:"model"`
		Temperature float32       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`

	Retrieval struct {
		TopK             int     `mapstructure:"top_k"`
		MinSimilarity    float64 `mapstructure:"min_similarity"`
		FullCatalogLimit int     `mapstructure:"full_catalog_limit"`
	} `mapstructure:"retrieval"`

	Coupon struct {
		MaxDiscountPercent float64 `mapstructure:"max_discount_percent"`
	} `mapstructure:"coupon"`

	Fulfillment struct {
		WebhookURL string        `mapstructure:"webhook_url"`
		Timeout    time.Duration `mapstructure:"timeout"`
	} `mapstructure:"fulfillment"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads boutique.yaml from the working directory or /etc/boutique when
// present. Missing files are fine; env vars alone are a complete config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("boutique")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/boutique")

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("sqlite_path", "boutique.db")
	v.SetDefault("llm.base_url", "http://localhost:1234/v1")
	v.SetDefault("llm.model", "google/gemini-3-flash-preview")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("retrieval.top_k", 8)
	v.SetDefault("retrieval.min_similarity", 0.05)
	v.SetDefault("retrieval.full_catalog_limit", 250)
	v.SetDefault("coupon.max_discount_percent", 25)
	v.SetDefault("fulfillment.webhook_url", "")
	v.SetDefault("fulfillment.timeout", 5*time.Second)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("BOUTIQUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
