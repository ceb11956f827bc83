package engine

import (
	"context"

	"lukechampine.com/frand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Random - places its mark on a uniformly chosen empty cell.
type Random struct {
	base
}

func NewRandom(mark entity.Mark, dim int) *Random {
	return &Random{base: newBase(KindRandom, "random", mark, dim)}
}

func (that *Random) GetMove(_ context.Context, board entity.Board) (entity.Board, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return "", apperror.ErrNoAvailableMoves
	}

	return board.Place(cells[frand.Intn(len(cells))], that.mark), nil
}
