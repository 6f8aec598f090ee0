package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from yaml", func(t *testing.T) {
		// Given: a config file with redis storage and a rank 2 board
		path := writeConfig(t, `
log-level: debug
storage: redis
redis:
  host: cache
  port: "6380"
  game-ttl: 1h
board:
  rank: 2
rules:
  no-reclaim: true
teams:
  - name: Cross
    color: red
`)

		// When: loading it
		conf, err := Load(path)

		// Then: values are read and missing ones take defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.GameTTL)
		assert.Equal(t, uint8(2), conf.Board.Rank)
		assert.Equal(t, 3, conf.Board.Side)
		assert.Equal(t, 2, conf.Board.Dims)
		assert.Equal(t, 3, conf.Board.Line)
		assert.True(t, conf.Rules.NoReclaim)
		assert.Equal(t, []Team{{Name: "Cross", Color: "red"}}, conf.Teams)
	})

	t.Run("Defaults for an empty file", func(t *testing.T) {
		conf, err := Load(writeConfig(t, "{}\n"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, uint8(0), conf.Board.Rank)
		assert.False(t, conf.Rules.NoReclaim)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
