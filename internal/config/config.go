package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
)

const (
	ModePlay       = "play"
	ModeTournament = "tournament"
	ModeServe      = "serve"
)

// Only process isolation can stop an engine that ignores its context. A goroutine runner abandons it at the deadline.
const (
	IsolationGoroutine = "goroutine"
	IsolationProcess   = "process"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string     `yaml:"mode" env:"MODE" env-default:"play"`
	Isolation  string     `yaml:"isolation" env:"ISOLATION" env-default:"process"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Match      Match      `yaml:"match"`
	Tournament Tournament `yaml:"tournament"`
	Redis      Redis      `yaml:"redis"`
}

type Match struct {
	Player1 string `yaml:"player1" env:"MATCH_PLAYER1" env-default:"human"`
	Player2 string `yaml:"player2" env:"MATCH_PLAYER2" env-default:"dlminimax"`
	Dim     int    `yaml:"dim" env:"MATCH_DIM" env-default:"3"`
	// TimeLimit - per player clock in seconds.
	TimeLimit float64 `yaml:"time-limit" env:"MATCH_TIME_LIMIT" env-default:"30"`
	// NoDelay turns off the pause between plies.
	NoDelay bool `yaml:"no-delay" env:"MATCH_NO_DELAY"`
}

type Tournament struct {
	Runs    int `yaml:"runs" env:"TOURNAMENT_RUNS" env-default:"16"`
	Workers int `yaml:"workers" env:"TOURNAMENT_WORKERS" env-default:"16"`
}

type Redis struct {
	Enabled   bool          `yaml:"enabled" env:"REDIS_ENABLED"`
	Host      string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port      string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ReportTTL time.Duration `yaml:"report-ttl" env:"REDIS_REPORT_TTL"`
}

// Load - reads the config file at path when it exists, then the environment on top of it.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, statErr := os.Stat(path)

	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", statErr)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file and the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log-level %q", apperror.ErrInvalidConfig, that.LogLevel)
	}

	switch that.Mode {
	case ModePlay, ModeTournament, ModeServe:
	default:
		return fmt.Errorf("%w: mode %q", apperror.ErrInvalidConfig, that.Mode)
	}

	switch that.Isolation {
	case IsolationGoroutine, IsolationProcess:
	default:
		return fmt.Errorf("%w: isolation %q", apperror.ErrInvalidConfig, that.Isolation)
	}

	if that.Mode == ModeServe {
		return nil
	}

	for _, name := range []string{that.Match.Player1, that.Match.Player2} {
		kind, err := engine.ParseKind(name)
		if err != nil {
			return err
		}

		if err = engine.Validate(kind, that.Match.Dim); err != nil {
			return err
		}
	}

	if that.Match.TimeLimit <= 0 {
		return fmt.Errorf("%w: time-limit must be positive, got %g", apperror.ErrInvalidConfig, that.Match.TimeLimit)
	}

	if that.Mode == ModeTournament && (that.Tournament.Runs < 1 || that.Tournament.Workers < 1) {
		return fmt.Errorf("%w: runs and workers must be at least 1", apperror.ErrInvalidConfig)
	}

	return nil
}

func (that *Match) TimeLimitDuration() time.Duration {
	return time.Duration(that.TimeLimit * float64(time.Second))
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
