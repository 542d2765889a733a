package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := fromLookup(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Zero(t, cfg.Redis.PoolSize)
}

func TestAddress(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		cfg, err := fromLookup(env(map[string]string{"PORT": "8080"}))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
	})

	t.Run("explicit address wins", func(t *testing.T) {
		cfg, err := fromLookup(env(map[string]string{"PORT": "8080", "PHONEBOOK_ADDR": "127.0.0.1:9000"}))
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	})
}

func TestBackends(t *testing.T) {
	t.Run("postgres requires a DSN", func(t *testing.T) {
		_, err := fromLookup(env(map[string]string{"PHONEBOOK_STORE": "postgres"}))
		require.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("redis with pool tuning", func(t *testing.T) {
		cfg, err := fromLookup(env(map[string]string{
			"PHONEBOOK_STORE":     "Redis",
			"REDIS_URL":           "redis://localhost:6379/0",
			"REDIS_POOL_SIZE":     "20",
			"REDIS_DIAL_TIMEOUT":  "2s",
			"REDIS_WRITE_TIMEOUT": "500ms",
		}))
		require.NoError(t, err)
		assert.Equal(t, BackendRedis, cfg.Store.Backend)
		assert.Equal(t, 20, cfg.Redis.PoolSize)
		assert.Equal(t, 2*time.Second, cfg.Redis.DialTimeout)
		assert.Equal(t, 500*time.Millisecond, cfg.Redis.WriteTimeout)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := fromLookup(env(map[string]string{"PHONEBOOK_STORE": "sqlite"}))
		require.Error(t, err)
	})
}

func TestInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"PHONEBOOK_SEED":     "maybe",
		"REDIS_POOL_SIZE":    "many",
		"REDIS_READ_TIMEOUT": "soon",
		"LOG_FORMAT":         "xml",
	} {
		t.Run(key, func(t *testing.T) {
			_, err := fromLookup(env(map[string]string{key: value}))
			require.Error(t, err)
		})
	}

	cfg, err := fromLookup(env(map[string]string{"PHONEBOOK_SEED": "false"}))
	require.NoError(t, err)
	assert.False(t, cfg.Store.Seed)
}
