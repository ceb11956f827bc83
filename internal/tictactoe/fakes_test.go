package tictactoe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type moveFunc func(ctx context.Context, board entity.Board) (entity.Board, error)

// fakeEngine - scripted engine counting its calls.
type fakeEngine struct {
	kind  engine.Kind
	mark  entity.Mark
	dim   int
	move  moveFunc
	calls atomic.Int32
}

func newFakeEngine(mark entity.Mark, move moveFunc) *fakeEngine {
	return &fakeEngine{kind: engine.KindRandom, mark: mark, dim: 3, move: move}
}

func (that *fakeEngine) GetMove(ctx context.Context, board entity.Board) (entity.Board, error) {
	that.calls.Add(1)
	return that.move(ctx, board)
}

func (that *fakeEngine) Kind() engine.Kind { return that.kind }
func (that *fakeEngine) Mark() entity.Mark { return that.mark }
func (that *fakeEngine) Dim() int          { return that.dim }
func (that *fakeEngine) String() string    { return fmt.Sprintf("<fake [%s]>", that.mark) }

// firstEmpty - plays the lowest empty cell, optionally after a pause.
func firstEmpty(mark entity.Mark, pause time.Duration) moveFunc {
	return func(_ context.Context, board entity.Board) (entity.Board, error) {
		time.Sleep(pause)
		return board.Place(board.EmptyCells()[0], mark), nil
	}
}

type mockRunner struct {
	mock.Mock
}

func (that *mockRunner) Run(ctx context.Context, eng engine.Engine, board entity.Board, budget time.Duration) (entity.Board, error) {
	args := that.Called(ctx, eng, board, budget)
	return args.Get(0).(entity.Board), args.Error(1) //nolint: forcetypeassert // test mock
}

type recordingObserver struct {
	moves    []entity.Board
	outcomes []entity.Outcome
}

func (that *recordingObserver) MoveMade(_ int, _ engine.Engine, _, next entity.Board) {
	that.moves = append(that.moves, next)
}

func (that *recordingObserver) GameOver(outcome entity.Outcome, _ [2]engine.Engine) {
	that.outcomes = append(that.outcomes, outcome)
}

type scriptedReader struct {
	cells []int
}

func (that *scriptedReader) ReadMove(_ context.Context, _ entity.Board, _ entity.Mark) (int, error) {
	cell := that.cells[0]
	that.cells = that.cells[1:]

	return cell, nil
}
