package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	// DefaultDelay - pause between plies when the presentation delay is on.
	DefaultDelay = 800 * time.Millisecond

	clockTick = time.Second
)

// Observer - receives match progress, e.g. to render it. Calls happen on the match goroutine.
type Observer interface {
	MoveMade(ply int, mover engine.Engine, prev, next entity.Board)
	GameOver(outcome entity.Outcome, players [2]engine.Engine)
}

// Match - one game between two engines, player 1 playing X.
type Match struct {
	logger *slog.Logger

	players   [2]engine.Engine
	timeLimit time.Duration
	delay     time.Duration
	start     entity.Board
	runner    MoveRunner
	observer  Observer
}

type MatchOption func(*Match)

// WithDelay - pause before every ply. It is not charged to any clock.
func WithDelay(delay time.Duration) MatchOption {
	return func(m *Match) {
		m.delay = delay
	}
}

func WithRunner(runner MoveRunner) MatchOption {
	return func(m *Match) {
		m.runner = runner
	}
}

func WithObserver(observer Observer) MatchOption {
	return func(m *Match) {
		m.observer = observer
	}
}

// WithBoard - start from a position instead of the empty board. The side to move follows from the mark counts.
func WithBoard(board entity.Board) MatchOption {
	return func(m *Match) {
		m.start = board
	}
}

func NewMatch(logger *slog.Logger, player1, player2 engine.Engine, timeLimit time.Duration, opts ...MatchOption) (*Match, error) {
	if player1.Mark() != entity.X || player2.Mark() != entity.O {
		return nil, fmt.Errorf("%w: player 1 must play %s and player 2 %s", apperror.ErrInvalidMatch, entity.X, entity.O)
	}

	if player1.Dim() != player2.Dim() {
		return nil, fmt.Errorf("%w: engines play %dx%d and %dx%d", apperror.ErrInvalidMatch, player1.Dim(), player1.Dim(), player2.Dim(), player2.Dim())
	}

	if timeLimit <= 0 {
		return nil, fmt.Errorf("%w: time limit %s", apperror.ErrInvalidMatch, timeLimit)
	}

	match := &Match{
		logger:    logger.With("component", "match"),
		players:   [2]engine.Engine{player1, player2},
		timeLimit: timeLimit,
		start:     entity.NewBoard(player1.Dim()),
		runner:    GoroutineRunner{},
	}

	for _, opt := range opts {
		opt(match)
	}

	if err := validateStart(match.start, player1.Dim()); err != nil {
		return nil, err
	}

	return match, nil
}

func validateStart(board entity.Board, dim int) error {
	if board.Dim() != dim {
		return fmt.Errorf("%w: start board is not %dx%d", apperror.ErrInvalidMatch, dim, dim)
	}

	if _, err := entity.ParseBoard(string(board)); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMatch, err)
	}

	if board.NextMark() == entity.Empty {
		return fmt.Errorf("%w: start board mark counts are not reachable", apperror.ErrInvalidMatch)
	}

	if board.CheckWin() != entity.Empty || board.CheckTie() {
		return fmt.Errorf("%w: start board is already decided", apperror.ErrInvalidMatch)
	}

	return nil
}

// Play - runs the match to its outcome. Engine faults and timeouts end the match
// as forfeits; an error is returned only when ctx is done before the match ends.
func (that *Match) Play(ctx context.Context) (entity.Outcome, error) {
	log := that.logger.With("method", "Play")

	board := that.start
	clocks := [2]time.Duration{that.timeLimit, that.timeLimit}

	mover := 0
	if board.NextMark() == entity.O {
		mover = 1
	}

	log.Debug("match started", "player1", that.players[0].String(), "player2", that.players[1].String(), "board", board)

	for ply := 0; ; ply++ {
		if err := that.pause(ctx); err != nil {
			return entity.Outcome{}, fmt.Errorf("match interrupted: %w", err)
		}

		player := that.players[mover]
		log.Debug("waiting for move", "ply", ply, "engine", player.String(), "remaining", clocks[mover])

		next, err := that.move(ctx, player, board, &clocks[mover])
		if ctxErr := ctx.Err(); ctxErr != nil {
			return entity.Outcome{}, fmt.Errorf("match interrupted: %w", ctxErr)
		}

		if err == nil {
			err = validateMove(board, next, player.Mark())
		}

		switch {
		case errors.Is(err, apperror.ErrTimeout):
			return that.finish(entity.NewForfeit(entity.OutcomeTimeout, mover, board, ply, err.Error())), nil
		case err != nil:
			return that.finish(entity.NewForfeit(entity.OutcomeException, mover, board, ply, err.Error())), nil
		}

		prev := board
		board = next

		if that.observer != nil {
			that.observer.MoveMade(ply, player, prev, board)
		}

		if mark, line := board.CheckWinLine(); mark != entity.Empty {
			return that.finish(entity.NewWin(mover, board, line, ply+1)), nil
		}

		if board.CheckTie() {
			return that.finish(entity.NewDraw(board, ply+1)), nil
		}

		mover = 1 - mover
	}
}

// move - asks the engine for its move and charges the elapsed time to clock.
// Humans are asked directly, without deadline or clock.
func (that *Match) move(ctx context.Context, player engine.Engine, board entity.Board, clock *time.Duration) (entity.Board, error) {
	if player.Kind() == engine.KindHuman {
		return safeGetMove(ctx, player, board)
	}

	stopDisplay := that.displayClock(ctx, player, *clock)
	started := time.Now()

	next, err := that.runMove(ctx, player, board, *clock)

	*clock -= time.Since(started)
	stopDisplay()

	// an exhausted clock forfeits on time whatever the engine returned
	if *clock < 0 {
		return "", fmt.Errorf("%w: %s clock exhausted", apperror.ErrTimeout, player)
	}

	if err != nil {
		return "", err
	}

	return next, nil
}

// runMove - a runner that panics is charged to the mover like a faulting engine.
func (that *Match) runMove(ctx context.Context, player engine.Engine, board entity.Board, budget time.Duration) (next entity.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = ""
			err = fmt.Errorf("%w: move runner panicked: %v", apperror.ErrEngineFault, r)
		}
	}()

	return that.runner.Run(ctx, player, board, budget)
}

// displayClock - logs the mover's remaining time every second until the returned func is called.
func (that *Match) displayClock(ctx context.Context, player engine.Engine, remaining time.Duration) func() {
	displayCtx, cancel := context.WithCancel(ctx)
	deadline := time.Now().Add(remaining)

	g := errgroup.Group{}
	g.Go(func() error {
		ticker := time.NewTicker(clockTick)
		defer ticker.Stop()

		for {
			select {
			case <-displayCtx.Done():
				return nil
			case <-ticker.C:
				that.logger.Debug("time remaining", "engine", player.String(), "remaining", time.Until(deadline).Round(100*time.Millisecond))
			}
		}
	})

	return func() {
		cancel()
		_ = g.Wait()
	}
}

func (that *Match) pause(ctx context.Context) error {
	if that.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (that *Match) finish(outcome entity.Outcome) entity.Outcome {
	log := that.logger.With("method", "finish")

	attrs := []any{"kind", outcome.Kind, "player", outcome.Player, "plies", outcome.Plies, "board", outcome.Board}
	if outcome.IsForfeit() {
		attrs = append(attrs, "reason", outcome.Reason)
		log.Warn("match forfeited", attrs...)
	} else {
		log.Info("match finished", attrs...)
	}

	if that.observer != nil {
		that.observer.GameOver(outcome, that.players)
	}

	return outcome
}

// validateMove - next must differ from prev in exactly one cell, which was empty and now holds mark.
func validateMove(prev, next entity.Board, mark entity.Mark) error {
	if len(next) != len(prev) {
		return fmt.Errorf("%w: board has %d cells, expected %d", apperror.ErrInvalidMove, len(next), len(prev))
	}

	changed := prev.Diff(next)
	if len(changed) != 1 {
		return fmt.Errorf("%w: %d cells changed, expected 1", apperror.ErrInvalidMove, len(changed))
	}

	cell := changed[0]
	if prev.At(cell) != entity.Empty {
		return fmt.Errorf("%w: cell %d: %w", apperror.ErrInvalidMove, cell, apperror.ErrCellOccupied)
	}

	if next.At(cell) != mark {
		return fmt.Errorf("%w: cell %d holds %q, expected %q", apperror.ErrInvalidMove, cell, next.At(cell), mark)
	}

	return nil
}
