package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

func TestLines(t *testing.T) {
	t.Run("3x3 lines are rows, columns, then diagonals", func(t *testing.T) {
		// When: enumerating lines of a 3x3 board
		lines := Lines(3)

		// Then: the order follows rows, columns, main diagonal, anti diagonal
		expected := []Line{
			{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
			{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
			{0, 4, 8}, {2, 4, 6},
		}
		require.Equal(t, expected, lines)
	})

	t.Run("4x4 has two diagonals only", func(t *testing.T) {
		// When: enumerating lines of a 4x4 board
		lines := Lines(4)

		// Then: there are 4 rows, 4 columns and 2 diagonals
		require.Len(t, lines, 10)
		assert.Equal(t, Line{0, 5, 10, 15}, lines[8])
		assert.Equal(t, Line{3, 6, 9, 12}, lines[9])
	})

	t.Run("Repeated calls return the same lines", func(t *testing.T) {
		assert.Equal(t, Lines(5), Lines(5))
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("Accepts a square board", func(t *testing.T) {
		board, err := ParseBoard("xx-oo----")

		require.NoError(t, err)
		assert.Equal(t, 3, board.Dim())
	})

	t.Run("Rejects a non-square length", func(t *testing.T) {
		_, err := ParseBoard("xx-oo---")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := ParseBoard("xx-oo---z")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects an empty board", func(t *testing.T) {
		_, err := ParseBoard("")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestBoard_CheckWin(t *testing.T) {
	t.Run("Returns X for a complete row", func(t *testing.T) {
		// Given: a board where X owns the top row
		board := Board("xxxoo----")

		// When: checking for a winner
		mark, line := board.CheckWinLine()

		// Then: X wins along cells 0, 1, 2
		assert.Equal(t, X, mark)
		assert.Equal(t, Line{0, 1, 2}, line)
	})

	t.Run("Returned line is a copy", func(t *testing.T) {
		// Given: the winning line of a top row
		_, line := Board("xxx------").CheckWinLine()
		require.Len(t, line, 3)

		// When: the caller overwrites it
		line[2] = 8

		// Then: the shared line set is unchanged
		assert.Equal(t, Line{0, 1, 2}, Lines(3)[0])
		assert.Equal(t, X, Board("xxx------").CheckWin())
	})

	t.Run("Returns O for a column", func(t *testing.T) {
		board := Board("oxxo-xo--")

		mark, line := board.CheckWinLine()

		assert.Equal(t, O, mark)
		assert.Equal(t, Line{0, 3, 6}, line)
	})

	t.Run("Returns the anti diagonal", func(t *testing.T) {
		board := Board("x-oxo-o--")

		mark, line := board.CheckWinLine()

		assert.Equal(t, O, mark)
		assert.Equal(t, Line{2, 4, 6}, line)
	})

	t.Run("Detects a 4x4 diagonal", func(t *testing.T) {
		board := Board("xooo" + "-x--" + "--x-" + "---x")

		assert.Equal(t, X, board.CheckWin())
	})

	t.Run("Returns Empty without a uniform line", func(t *testing.T) {
		// Given: a full board without a winner
		board := Board("xoxoxooxo")

		// When: checking for a winner
		mark, line := board.CheckWinLine()

		// Then: nobody wins
		assert.Equal(t, Empty, mark)
		assert.Nil(t, line)
	})

	t.Run("A line of empty cells is not a win", func(t *testing.T) {
		assert.Equal(t, Empty, NewBoard(3).CheckWin())
	})
}

func TestBoard_CheckTie(t *testing.T) {
	t.Run("Full board is a tie", func(t *testing.T) {
		assert.True(t, Board("xoxoxooxo").CheckTie())
	})

	t.Run("Board with an empty cell is not a tie", func(t *testing.T) {
		assert.False(t, Board("xoxoxoox-").CheckTie())
	})

	t.Run("Full board agrees with possible moves", func(t *testing.T) {
		for _, raw := range []string{"xoxoxooxo", "xxxooxoox", "xoxoxoox-", "---------"} {
			board := Board(raw)
			assert.Equal(t, board.CheckTie(), len(board.PossibleMoves(X)) == 0, raw)
		}
	})
}

func TestBoard_PossibleMoves(t *testing.T) {
	t.Run("One successor per empty cell in ascending order", func(t *testing.T) {
		// Given: a board with three empty cells
		board := Board("xo-xo-x-o")

		// When: enumerating moves for O
		moves := board.PossibleMoves(O)

		// Then: every empty cell gets exactly one O
		require.Equal(t, []Board{"xooxo-x-o", "xo-xoox-o", "xo-xo-xoo"}, moves)
		for _, move := range moves {
			changed := board.Diff(move)
			require.Len(t, changed, 1)
			assert.Equal(t, O, move.At(changed[0]))
		}
	})

	t.Run("Original board is left untouched", func(t *testing.T) {
		board := NewBoard(3)

		_ = board.PossibleMoves(X)

		assert.Equal(t, Board("---------"), board)
	})

	t.Run("Enumeration can be repeated", func(t *testing.T) {
		board := Board("x-o-")

		assert.Equal(t, board.PossibleMoves(X), board.PossibleMoves(X))
	})
}

func TestBoard_Helpers(t *testing.T) {
	t.Run("NextMark alternates starting with X", func(t *testing.T) {
		assert.Equal(t, X, NewBoard(3).NextMark())
		assert.Equal(t, O, Board("x--------").NextMark())
		assert.Equal(t, X, Board("xx-oo----").NextMark())
		assert.Equal(t, Empty, Board("xxx------").NextMark())
	})

	t.Run("Rows splits the board", func(t *testing.T) {
		assert.Equal(t, []string{"xx-", "oo-", "---"}, Board("xx-oo----").Rows())
	})

	t.Run("Cells follows line order", func(t *testing.T) {
		assert.Equal(t, "-ox", Board("x-oo-x--x").Cells(Line{1, 3, 8}))
	})

	t.Run("Opponent flips marks", func(t *testing.T) {
		assert.Equal(t, O, X.Opponent())
		assert.Equal(t, X, O.Opponent())
		assert.Equal(t, Empty, Empty.Opponent())
	})
}
