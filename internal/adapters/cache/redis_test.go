package cache

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-saturation/internal/config"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(config.RedisConfig{
		Host:     "cache.internal",
		Port:     "6380",
		Password: "s3cret",
		DB:       3,
	})

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "s3cret", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestRedisClient_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	cfg := config.RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       1,
	}

	rdb, err := NewRedisClient(cfg)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	opts := rdb.Options()
	assert.Equal(t, cfg.Host+":"+cfg.Port, opts.Addr)
	assert.Equal(t, cfg.Password, opts.Password)
	assert.Equal(t, 1, opts.DB)
}

func TestRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: "1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis at 127.0.0.1:1")
}
