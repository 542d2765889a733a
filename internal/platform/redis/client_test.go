package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/platform/config"
)

func TestOptions(t *testing.T) {
	t.Run("overrides apply", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:         "redis://localhost:6379/2",
			PoolSize:    7,
			DialTimeout: time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, time.Second, opts.DialTimeout)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{URL: "redis://localhost:6379"})
		require.NoError(t, err)
		assert.Zero(t, opts.PoolSize)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := Options(config.RedisConfig{URL: "http://nope"})
		require.Error(t, err)
	})
}

func TestNewWithoutURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}
