package engine

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Human - asks a MoveReader for the cell. Matches run it without a clock.
type Human struct {
	base

	reader MoveReader
}

func NewHuman(mark entity.Mark, dim int, reader MoveReader) *Human {
	return &Human{
		base:   newBase(KindHuman, "human", mark, dim),
		reader: reader,
	}
}

func (that *Human) GetMove(ctx context.Context, board entity.Board) (entity.Board, error) {
	cell, err := that.reader.ReadMove(ctx, board, that.mark)
	if err != nil {
		return "", fmt.Errorf("failed to read move: %w", err)
	}

	if cell < 0 || cell >= len(board) {
		return "", fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if board.At(cell) != entity.Empty {
		return "", fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return board.Place(cell, that.mark), nil
}
