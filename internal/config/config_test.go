package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults without a config file", func(t *testing.T) {
		// When: loading from a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: every default is applied
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, ModePlay, conf.Mode)
		assert.Equal(t, IsolationProcess, conf.Isolation)
		assert.Equal(t, "human", conf.Match.Player1)
		assert.Equal(t, "dlminimax", conf.Match.Player2)
		assert.Equal(t, 3, conf.Match.Dim)
		assert.Equal(t, 30*time.Second, conf.Match.TimeLimitDuration())
		assert.False(t, conf.Match.NoDelay)
		assert.Equal(t, 16, conf.Tournament.Runs)
		assert.Equal(t, 16, conf.Tournament.Workers)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a tournament configuration
		path := writeConfig(t, `
log-level: debug
mode: tournament
isolation: process
match:
  player1: greedy
  player2: random
  dim: 4
  time-limit: 1.5
  no-delay: true
tournament:
  runs: 2
  workers: 8
redis:
  enabled: true
  host: redis
  report-ttl: 24h
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, ModeTournament, conf.Mode)
		assert.Equal(t, IsolationProcess, conf.Isolation)
		assert.Equal(t, "greedy", conf.Match.Player1)
		assert.Equal(t, 4, conf.Match.Dim)
		assert.Equal(t, 1500*time.Millisecond, conf.Match.TimeLimitDuration())
		assert.True(t, conf.Match.NoDelay)
		assert.Equal(t, 8, conf.Tournament.Workers)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.ReportTTL)
	})

	t.Run("Goroutine isolation is opt in", func(t *testing.T) {
		// Given: a config asking for in-process engines
		path := writeConfig(t, "isolation: goroutine\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the default is overridden
		require.NoError(t, err)
		assert.Equal(t, IsolationGoroutine, conf.Isolation)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "match:\n  player1: random\n")
		t.Setenv("MATCH_PLAYER1", "minimax")
		t.Setenv("MATCH_DIM", "3")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "minimax", conf.Match.Player1)
	})

	t.Run("Unknown engine is rejected", func(t *testing.T) {
		path := writeConfig(t, "match:\n  player2: stockfish\n")

		_, err := Load(path)

		require.ErrorIs(t, err, apperror.ErrUnknownEngine)
	})

	t.Run("Broken file is an error", func(t *testing.T) {
		path := writeConfig(t, "match: [")

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel:   "info",
			Mode:       ModeTournament,
			Isolation:  IsolationGoroutine,
			Match:      Match{Player1: "random", Player2: "greedy", Dim: 3, TimeLimit: 30},
			Tournament: Tournament{Runs: 1, Workers: 1},
		}
	}

	t.Run("Accepts a valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		conf := valid()
		conf.Mode = "league"

		require.ErrorIs(t, conf.Validate(), apperror.ErrInvalidConfig)
	})

	t.Run("Rejects an unknown isolation", func(t *testing.T) {
		conf := valid()
		conf.Isolation = "thread"

		require.ErrorIs(t, conf.Validate(), apperror.ErrInvalidConfig)
	})

	t.Run("Rejects depth limited minimax on 6x6", func(t *testing.T) {
		conf := valid()
		conf.Match.Player1 = "dlminimax"
		conf.Match.Dim = 6

		require.ErrorIs(t, conf.Validate(), apperror.ErrUnsupportedDimension)
	})

	t.Run("Rejects a non positive time limit", func(t *testing.T) {
		conf := valid()
		conf.Match.TimeLimit = 0

		require.ErrorIs(t, conf.Validate(), apperror.ErrInvalidConfig)
	})

	t.Run("Rejects an empty worker pool", func(t *testing.T) {
		conf := valid()
		conf.Tournament.Workers = 0

		require.ErrorIs(t, conf.Validate(), apperror.ErrInvalidConfig)
	})

	t.Run("Serve mode ignores match settings", func(t *testing.T) {
		conf := valid()
		conf.Mode = ModeServe
		conf.Match.Player1 = ""

		require.NoError(t, conf.Validate())
	})
}
