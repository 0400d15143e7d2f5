package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thetjan888/nft-music/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Get()

	assert.Equal(t, "local", cfg.Network)
	assert.Equal(t, "nftmusic", cfg.Index)
	assert.Equal(t, "8080", cfg.ApiPort)
	assert.Equal(t, "DAppFi", cfg.Market.Name)
	assert.Equal(t, "DAPP", cfg.Market.Symbol)
	assert.Equal(t, "10000000000000000", cfg.Market.RoyaltyFee)
	assert.False(t, cfg.ElasticSearch.Enabled)
	assert.Equal(t, 300, cfg.ElasticSearch.BulkPersistCount)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MARKET_SYMBOL", "TUNE")
	t.Setenv("MARKET_PRICES", "100,200,300")
	t.Setenv("DEBUG", "true")
	t.Setenv("WEBHOOK_TIMEOUT", "30")

	cfg := config.Get()

	assert.Equal(t, "TUNE", cfg.Market.Symbol)
	assert.Equal(t, []string{"100", "200", "300"}, cfg.Market.Prices)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30, cfg.Webhook.Timeout)
}
