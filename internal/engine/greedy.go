package engine

import (
	"context"
	"math"

	"lukechampine.com/frand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Greedy - one-ply lookahead. Takes an immediate win, otherwise the move
// leaving the most lines with two or more own marks and no opponent mark.
type Greedy struct {
	base
}

func NewGreedy(mark entity.Mark, dim int) *Greedy {
	return &Greedy{base: newBase(KindGreedy, "greedy", mark, dim)}
}

func (that *Greedy) GetMove(_ context.Context, board entity.Board) (entity.Board, error) {
	moves := board.PossibleMoves(that.mark)
	if len(moves) == 0 {
		return "", apperror.ErrNoAvailableMoves
	}

	scores := make(map[entity.Board]float64, len(moves))
	for _, move := range moves {
		scores[move] = that.heuristic(move)
	}

	// shuffled so that equal scores are picked uniformly
	frand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	best := moves[0]
	for _, move := range moves[1:] {
		if scores[move] > scores[best] {
			best = move
		}
	}

	return best, nil
}

func (that *Greedy) heuristic(board entity.Board) float64 {
	if board.CheckWin() == that.mark {
		return math.Inf(1)
	}

	score := 0.0

	for _, line := range entity.Lines(that.dim) {
		own := 0
		for _, cell := range line {
			mark := board.At(cell)
			if mark == that.enemy {
				own = 0
				break
			}
			if mark == that.mark {
				own++
			}
		}

		// a third own mark on larger boards still counts
		if own >= 2 {
			score++
		}
	}

	return score
}
