package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-arena/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-arena/transport/console"
	"github.com/rocketscienceinc/tictactoe-arena/transport/rest"
)

var ErrRedisDisabled = errors.New("serve mode needs redis, set redis.enabled")

// RunApp - runs the application in the configured mode until it is done or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var reports repository.ReportRepository

	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		reports = repository.NewReportRepository(redisStorage, conf.Redis.ReportTTL)
	}

	presenter := console.NewPresenter(os.Stdout)

	var err error

	switch conf.Mode {
	case config.ModeServe:
		if reports == nil {
			return ErrRedisDisabled
		}

		err = rest.Start(ctx, logger, conf.HTTPPort, reports)
	case config.ModeTournament:
		err = runTournament(ctx, logger, conf, presenter, reports)
	default:
		err = runMatch(ctx, logger, conf, presenter)
	}

	if errors.Is(err, context.Canceled) {
		log.Info("Application context canceled, shutting down")
		return nil
	}

	return err
}

// newRunner - worker processes unless goroutine isolation is asked for.
func newRunner(conf *config.Config) (tictactoe.MoveRunner, error) {
	if conf.Isolation == config.IsolationGoroutine {
		return tictactoe.GoroutineRunner{}, nil
	}

	runner, err := tictactoe.NewProcessRunner()
	if err != nil {
		return nil, fmt.Errorf("could not set up worker processes: %w", err)
	}

	return runner, nil
}

func matchDelay(conf *config.Config) time.Duration {
	if conf.Match.NoDelay {
		return 0
	}

	return tictactoe.DefaultDelay
}

// runMatch - a single game on the console, humans type their moves on stdin.
func runMatch(ctx context.Context, logger *slog.Logger, conf *config.Config, presenter *console.Presenter) error {
	runner, err := newRunner(conf)
	if err != nil {
		return err
	}

	reader := console.NewReader(os.Stdin, presenter)

	var players [2]engine.Engine
	for i, name := range []string{conf.Match.Player1, conf.Match.Player2} {
		kind, err := engine.ParseKind(name)
		if err != nil {
			return err
		}

		mark := entity.X
		if i == 1 {
			mark = entity.O
		}

		if players[i], err = engine.New(kind, mark, conf.Match.Dim, engine.WithMoveReader(reader)); err != nil {
			return fmt.Errorf("failed to create player %d: %w", i+1, err)
		}
	}

	match, err := tictactoe.NewMatch(logger, players[0], players[1], conf.Match.TimeLimitDuration(),
		tictactoe.WithDelay(matchDelay(conf)),
		tictactoe.WithRunner(runner),
		tictactoe.WithObserver(presenter),
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	presenter.MatchStarted(players)

	if _, err = match.Play(ctx); err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	return nil
}

func runTournament(ctx context.Context, logger *slog.Logger, conf *config.Config, presenter *console.Presenter, reports repository.ReportRepository) error {
	runner, err := newRunner(conf)
	if err != nil {
		return err
	}

	settings := usecase.Settings{
		Player1:   engine.Kind(conf.Match.Player1),
		Player2:   engine.Kind(conf.Match.Player2),
		Dim:       conf.Match.Dim,
		TimeLimit: conf.Match.TimeLimitDuration(),
		Delay:     matchDelay(conf),
		Runs:      conf.Tournament.Runs,
		Workers:   conf.Tournament.Workers,
	}

	var opts []usecase.TournamentOption
	if reports != nil {
		opts = append(opts, usecase.WithReportRepo(reports))
	}

	presenter.Message("running %d games, %dx%d, P1: %s, P2: %s, time %g",
		settings.Total(), settings.Dim, settings.Dim, settings.Player1, settings.Player2, conf.Match.TimeLimit)

	report, err := usecase.NewTournament(logger, runner, opts...).Run(ctx, settings)
	if report != nil {
		presenter.Summary(report)
	}

	if err != nil {
		return fmt.Errorf("tournament failed: %w", err)
	}

	if reports != nil {
		presenter.Message("report id: %s", report.ID)
	}

	return nil
}
