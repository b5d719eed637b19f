package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. FromEnv keeps main lean; every
// field has a development default so the binary runs with no environment.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string

	// AdminSecretHash is the bcrypt hash of the operator secret exchanged for
	// admin tokens. Empty disables the token endpoint.
	AdminSecretHash string
	AdminTokenTTL   time.Duration

	HTTP  HTTPConfig
	Redis RedisConfig
	Kafka KafkaConfig
	Chain ChainConfig

	// Verification thresholds, mapped into the rule evaluator policy at wiring
	// time.
	MinimumInvestment      float64
	APYMinBasisPoints      int64
	APYMaxBasisPoints      int64
	MinWalletAddressLength int

	ReceiptCacheTTL time.Duration
}

// HTTPConfig holds the server-level timeouts. The per-request deadline is
// separate; the router's Timeout middleware enforces it.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// RedisConfig configures the optional receipt read cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ChainConfig names the simulated ledger the receipts reference.
type ChainConfig struct {
	Network  string
	Executor string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:            envString("BONDBUY_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSigningKey:   envString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		AdminTokenTTL:   envDuration("ADMIN_TOKEN_TTL", time.Hour),
		HTTP: HTTPConfig{
			ReadHeaderTimeout: envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       envDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      envDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout:   envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   envString("KAFKA_AUDIT_TOPIC", "bondbuy.audit"),
		},
		Chain: ChainConfig{
			Network:  envString("CHAIN_NETWORK", "EIBS-2.0-Testnet"),
			Executor: envString("CHAIN_EXECUTOR", "BondBuy-MintVerification-v1.0"),
		},
		MinimumInvestment:      envFloat("MIN_INVESTMENT", 100),
		APYMinBasisPoints:      int64(envInt("APY_MIN_BASIS_POINTS", 1)),
		APYMaxBasisPoints:      int64(envInt("APY_MAX_BASIS_POINTS", 2000)),
		MinWalletAddressLength: envInt("MIN_WALLET_ADDRESS_LENGTH", 32),
		ReceiptCacheTTL:        envDuration("RECEIPT_CACHE_TTL", 5*time.Minute),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
