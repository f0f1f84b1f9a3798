package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "clinic_portal", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.SMTP.Host)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 5*time.Second, cfg.Mongo.OpTimeout)
	assert.Equal(t, uint64(50), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Empty(t, cfg.Redis.Password)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"ENV":              "Production",
		"TOKEN_TTL":        "2h",
		"CORS_ORIGINS":     "https://a.clinic, ,https://b.clinic",
		"REDIS_DB":         "3",
		"REDIS_PASSWORD":   "pw",
		"MONGO_OP_TIMEOUT": "750ms",
		"TRUST_PROXY":      "true",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, 750*time.Millisecond, cfg.Mongo.OpTimeout)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, []string{"https://a.clinic", "https://b.clinic"}, cfg.AllowedOrigins())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}
