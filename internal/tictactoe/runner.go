package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// MoveRunner - computes one move under a hard deadline.
// Implementations return apperror.ErrTimeout once budget is spent without waiting
// for the engine, wrap engine failures in apperror.ErrEngineFault and return
// ctx.Err() when the parent context is done.
type MoveRunner interface {
	Run(ctx context.Context, eng engine.Engine, board entity.Board, budget time.Duration) (entity.Board, error)
}

type moveResult struct {
	board entity.Board
	err   error
}

// GoroutineRunner - runs the engine in its own goroutine. On deadline the goroutine
// is abandoned and its context cancelled; search engines notice and unwind,
// the match does not wait for them.
type GoroutineRunner struct{}

func (that GoroutineRunner) Run(ctx context.Context, eng engine.Engine, board entity.Board, budget time.Duration) (entity.Board, error) {
	moveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	// buffered: an abandoned engine must be able to finish its send
	results := make(chan moveResult, 1)

	go func() {
		next, err := safeGetMove(moveCtx, eng, board)
		results <- moveResult{board: next, err: err}
	}()

	select {
	case res := <-results:
		if res.err == nil {
			return res.board, nil
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		if errors.Is(res.err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s stopped at the deadline", apperror.ErrTimeout, eng)
		}

		return "", res.err
	case <-moveCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", err
		}

		return "", fmt.Errorf("%w: %s exceeded %s", apperror.ErrTimeout, eng, budget)
	}
}

// safeGetMove - calls the engine, turning panics and errors into engine faults.
func safeGetMove(ctx context.Context, eng engine.Engine, board entity.Board) (next entity.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = ""
			err = fmt.Errorf("%w: %s panicked: %v\n%s", apperror.ErrEngineFault, eng, r, debug.Stack())
		}
	}()

	next, err = eng.GetMove(ctx, board)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: %s: %w", apperror.ErrEngineFault, eng, err)
	}

	return next, err
}
