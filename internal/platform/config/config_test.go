package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, "bondbuy.audit", cfg.Kafka.Topic)
	assert.Equal(t, "EIBS-2.0-Testnet", cfg.Chain.Network)
	assert.Equal(t, "BondBuy-MintVerification-v1.0", cfg.Chain.Executor)
	assert.Equal(t, float64(100), cfg.MinimumInvestment)
	assert.Equal(t, int64(1), cfg.APYMinBasisPoints)
	assert.Equal(t, int64(2000), cfg.APYMaxBasisPoints)
	assert.Equal(t, 32, cfg.MinWalletAddressLength)
	assert.Equal(t, 5*time.Minute, cfg.ReceiptCacheTTL)
	assert.Empty(t, cfg.AdminSecretHash)
	assert.Equal(t, time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BONDBUY_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/bondbuy")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("MIN_INVESTMENT", "250.5")
	t.Setenv("APY_MAX_BASIS_POINTS", "1500")
	t.Setenv("RECEIPT_CACHE_TTL", "30s")
	t.Setenv("ADMIN_SECRET_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ADMIN_TOKEN_TTL", "15m")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45s")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://localhost/bondbuy", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 250.5, cfg.MinimumInvestment)
	assert.Equal(t, int64(1500), cfg.APYMaxBasisPoints)
	assert.Equal(t, 30*time.Second, cfg.ReceiptCacheTTL)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.AdminSecretHash)
	assert.Equal(t, 15*time.Minute, cfg.AdminTokenTTL)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MIN_INVESTMENT", "not-a-number")
	t.Setenv("APY_MAX_BASIS_POINTS", "many")
	t.Setenv("RECEIPT_CACHE_TTL", "soon")

	cfg := FromEnv()

	assert.Equal(t, float64(100), cfg.MinimumInvestment)
	assert.Equal(t, int64(2000), cfg.APYMaxBasisPoints)
	assert.Equal(t, 5*time.Minute, cfg.ReceiptCacheTTL)
}
