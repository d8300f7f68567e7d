package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "boutique.db", cfg.SQLitePath)
	assert.Equal(t, "http://localhost:1234/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 8, cfg.Retrieval.TopK)
	assert.Equal(t, 0.05, cfg.Retrieval.MinSimilarity)
	assert.Equal(t, 25.0, cfg.Coupon.MaxDiscountPercent)
	assert.Equal(t, 5*time.Second, cfg.Fulfillment.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BOUTIQUE_LISTEN_ADDR", ":9090")
	t.Setenv("BOUTIQUE_LLM_MODEL", "test-model")
	t.Setenv("BOUTIQUE_COUPON_MAX_DISCOUNT_PERCENT", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 15.0, cfg.Coupon.MaxDiscountPercent)
}
