package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

type reportRepo interface {
	Save(ctx context.Context, report *entity.Report) error
}

// EngineFactory - builds the engine for one side of a match.
type EngineFactory func(kind engine.Kind, mark entity.Mark, dim int) (engine.Engine, error)

// Settings - one tournament: Runs rounds of Workers parallel matches between the same pair.
type Settings struct {
	Player1   engine.Kind
	Player2   engine.Kind
	Dim       int
	TimeLimit time.Duration
	Delay     time.Duration
	Runs      int
	Workers   int
}

func (that Settings) Validate() error {
	for _, kind := range []engine.Kind{that.Player1, that.Player2} {
		if err := engine.Validate(kind, that.Dim); err != nil {
			return err
		}

		if kind == engine.KindHuman {
			return fmt.Errorf("%w: human engines cannot play tournaments", apperror.ErrInvalidConfig)
		}
	}

	if that.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %s", apperror.ErrInvalidConfig, that.TimeLimit)
	}

	if that.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %s", apperror.ErrInvalidConfig, that.Delay)
	}

	if that.Runs < 1 || that.Workers < 1 {
		return fmt.Errorf("%w: runs and workers must be at least 1, got %d and %d", apperror.ErrInvalidConfig, that.Runs, that.Workers)
	}

	return nil
}

// Total - number of matches the tournament plays.
func (that Settings) Total() int {
	return that.Runs * that.Workers
}

type Tournament struct {
	logger *slog.Logger

	runner     tictactoe.MoveRunner
	reportRepo reportRepo
	newEngine  EngineFactory
}

type TournamentOption func(*Tournament)

// WithReportRepo - stores every finished report. Without it reports are only returned.
func WithReportRepo(repo reportRepo) TournamentOption {
	return func(t *Tournament) {
		t.reportRepo = repo
	}
}

func WithEngineFactory(factory EngineFactory) TournamentOption {
	return func(t *Tournament) {
		t.newEngine = factory
	}
}

func NewTournament(logger *slog.Logger, runner tictactoe.MoveRunner, opts ...TournamentOption) *Tournament {
	if runner == nil {
		runner = tictactoe.GoroutineRunner{}
	}

	tournament := &Tournament{
		logger: logger.With("component", "tournament"),

		runner: runner,
		newEngine: func(kind engine.Kind, mark entity.Mark, dim int) (engine.Engine, error) {
			return engine.New(kind, mark, dim)
		},
	}

	for _, opt := range opts {
		opt(tournament)
	}

	return tournament
}

// Run - plays every match of the tournament, at most Workers at a time, and aggregates the outcomes.
// Engine faults and timeouts are counted, they never abort the tournament; an error is returned
// for invalid settings or when ctx is done before all matches finished.
func (that *Tournament) Run(ctx context.Context, settings Settings) (*entity.Report, error) {
	log := that.logger.With("method", "Run")

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament settings: %w", err)
	}

	id, err := pkg.GenerateReportID()
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		ID:        id,
		Player1:   string(settings.Player1),
		Player2:   string(settings.Player2),
		Dim:       settings.Dim,
		TimeLimit: settings.TimeLimit.Seconds(),
		Runs:      settings.Runs,
		Workers:   settings.Workers,
		StartedAt: time.Now().UTC(),
	}

	log.Info("tournament started", "id", id, "player1", settings.Player1, "player2", settings.Player2,
		"dim", settings.Dim, "time_limit", settings.TimeLimit, "matches", settings.Total())

	outcomes := make(chan entity.Outcome, settings.Workers)
	scoreboard := entity.NewScoreboard()

	aggregated := make(chan struct{})
	go func() {
		defer close(aggregated)

		for outcome := range outcomes {
			scoreboard.Add(outcome)
			log.Debug("match counted", "category", outcome.Category(), "counted", scoreboard.Total(), "matches", settings.Total())
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Workers)

dispatch:
	for run := range settings.Runs {
		log.Info("dispatching workers", "run", run+1, "runs", settings.Runs)

		for worker := range settings.Workers {
			if gctx.Err() != nil {
				break dispatch
			}

			g.Go(func() error {
				outcome, matchErr := that.playMatch(gctx, settings)
				if matchErr != nil {
					return fmt.Errorf("run %d worker %d: %w", run+1, worker, matchErr)
				}

				outcomes <- outcome

				return nil
			})
		}
	}

	err = g.Wait()
	close(outcomes)
	<-aggregated

	report.Scoreboard = scoreboard
	report.Total = scoreboard.Total()
	report.FinishedAt = time.Now().UTC()

	if err != nil {
		return report, fmt.Errorf("tournament interrupted after %d of %d matches: %w", report.Total, settings.Total(), err)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return report, fmt.Errorf("tournament interrupted after %d of %d matches: %w", report.Total, settings.Total(), ctxErr)
	}

	log.Info("tournament finished", "id", id, "scoreboard", scoreboard, "elapsed", report.FinishedAt.Sub(report.StartedAt))

	if that.reportRepo != nil {
		if err = that.reportRepo.Save(ctx, report); err != nil {
			log.Error("failed to save report", "id", id, "error", err)
		}
	}

	return report, nil
}

func (that *Tournament) playMatch(ctx context.Context, settings Settings) (entity.Outcome, error) {
	player1, err := that.newEngine(settings.Player1, entity.X, settings.Dim)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed to build player 1: %w", err)
	}

	player2, err := that.newEngine(settings.Player2, entity.O, settings.Dim)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed to build player 2: %w", err)
	}

	match, err := tictactoe.NewMatch(that.logger, player1, player2, settings.TimeLimit,
		tictactoe.WithDelay(settings.Delay),
		tictactoe.WithRunner(that.runner),
	)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed to create match: %w", err)
	}

	return match.Play(ctx)
}
