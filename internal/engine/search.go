package engine

import (
	"context"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	// attenuation scales a value once per level, so nearer wins outrank distant ones.
	attenuation = 0.75

	// the context is polled every pollInterval explored nodes.
	pollInterval = 1 << 10

	unbounded = -1
)

// searcher - minimax over the full game tree, optionally cut off at maxDepth
// where evaluate scores the position instead.
type searcher struct {
	base

	win, loss float64
	maxDepth  int
	evaluate  func(entity.Board) float64

	explored atomic.Uint64
}

// Explored - nodes visited by all searches of this engine so far. Diagnostic only.
func (that *searcher) Explored() uint64 {
	return that.explored.Load()
}

func (that *searcher) GetMove(ctx context.Context, board entity.Board) (entity.Board, error) {
	move, _, err := that.search(ctx, board, true, that.maxDepth)
	if err != nil {
		return "", err
	}

	if move == "" {
		return "", apperror.ErrNoAvailableMoves
	}

	return move, nil
}

// search - returns the chosen successor and its attenuated value. Among equal
// values the first successor in cell order wins.
func (that *searcher) search(ctx context.Context, board entity.Board, maximizing bool, depth int) (entity.Board, float64, error) {
	if that.explored.Add(1)%pollInterval == 0 {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
	}

	switch board.CheckWin() {
	case that.mark:
		return "", that.win, nil
	case that.enemy:
		return "", that.loss, nil
	}

	if board.CheckTie() {
		return "", 0, nil
	}

	if depth == 0 {
		return "", that.evaluate(board), nil
	}

	mover := that.mark
	if !maximizing {
		mover = that.enemy
	}

	var (
		best      entity.Board
		bestScore float64
	)

	for i, move := range board.PossibleMoves(mover) {
		_, score, err := that.search(ctx, move, !maximizing, depth-1)
		if err != nil {
			return "", 0, err
		}

		if i == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore = move, score
		}
	}

	return best, bestScore * attenuation, nil
}
