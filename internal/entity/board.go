package entity

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

type Mark byte

const (
	Empty Mark = '-'
	X     Mark = 'x'
	O     Mark = 'o'
)

// Opponent - returns the mark playing against this one. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) String() string {
	return string(rune(that))
}

// Line - board indices of one row, column or diagonal.
type Line []int

// Board - row-major cells of an N×N grid. Boards are values: every change produces a new Board.
type Board string

var linesCache sync.Map // map[int][]Line

// NewBoard - returns an all-empty board of dim×dim cells.
func NewBoard(dim int) Board {
	return Board(strings.Repeat(Empty.String(), dim*dim))
}

// ParseBoard - validates a textual board such as "xx-oo----".
func ParseBoard(raw string) (Board, error) {
	if dimOf(len(raw)) == 0 {
		return "", fmt.Errorf("%w: %d cells is not a square grid", apperror.ErrInvalidBoard, len(raw))
	}

	for i := 0; i < len(raw); i++ {
		switch Mark(raw[i]) {
		case Empty, X, O:
		default:
			return "", fmt.Errorf("%w: unexpected %q at cell %d", apperror.ErrInvalidBoard, raw[i], i)
		}
	}

	return Board(raw), nil
}

func dimOf(cells int) int {
	if cells <= 0 {
		return 0
	}

	dim := int(math.Sqrt(float64(cells)))
	for dim*dim < cells {
		dim++
	}

	if dim*dim != cells {
		return 0
	}

	return dim
}

// Lines - all rows, then all columns, then the main and the anti diagonal.
// The returned slice is shared between callers and must not be modified.
func Lines(dim int) []Line {
	if cached, ok := linesCache.Load(dim); ok {
		return cached.([]Line) //nolint: forcetypeassert // only []Line is stored
	}

	lines := make([]Line, 0, 2*dim+2)

	for row := 0; row < dim; row++ {
		line := make(Line, dim)
		for col := 0; col < dim; col++ {
			line[col] = row*dim + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < dim; col++ {
		line := make(Line, dim)
		for row := 0; row < dim; row++ {
			line[row] = row*dim + col
		}
		lines = append(lines, line)
	}

	diagonal, anti := make(Line, dim), make(Line, dim)
	for i := 0; i < dim; i++ {
		diagonal[i] = i*dim + i
		anti[i] = (i+1)*dim - (i + 1)
	}
	lines = append(lines, diagonal, anti)

	actual, _ := linesCache.LoadOrStore(dim, lines)

	return actual.([]Line) //nolint: forcetypeassert // only []Line is stored
}

func (that Board) Dim() int {
	return dimOf(len(that))
}

func (that Board) At(cell int) Mark {
	return Mark(that[cell])
}

// Place - returns a copy of the board with the cell set to mark.
func (that Board) Place(cell int, mark Mark) Board {
	return that[:cell] + Board(mark.String()) + that[cell+1:]
}

// Cells - the marks along a line, in line order.
func (that Board) Cells(line Line) string {
	var sb strings.Builder
	sb.Grow(len(line))

	for _, cell := range line {
		sb.WriteByte(that[cell])
	}

	return sb.String()
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i := 0; i < len(that); i++ {
		if Mark(that[i]) == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// Count - number of cells holding mark.
func (that Board) Count(mark Mark) int {
	return strings.Count(string(that), mark.String())
}

// CheckWin - the mark owning a complete line, or Empty.
func (that Board) CheckWin() Mark {
	mark, _ := that.CheckWinLine()
	return mark
}

// CheckWinLine - like CheckWin, also returning the first complete line in Lines order.
// The line is a copy, callers may keep or change it.
func (that Board) CheckWinLine() (Mark, Line) {
	dim := that.Dim()
	if dim == 0 {
		return Empty, nil
	}

	for _, line := range Lines(dim) {
		first := that.At(line[0])
		if first == Empty {
			continue
		}

		uniform := true
		for _, cell := range line[1:] {
			if that.At(cell) != first {
				uniform = false
				break
			}
		}

		if uniform {
			return first, slices.Clone(line)
		}
	}

	return Empty, nil
}

// CheckTie - true when no cell is empty. Callers check for a win first.
func (that Board) CheckTie() bool {
	return !strings.Contains(string(that), Empty.String())
}

// PossibleMoves - one successor per empty cell, in ascending cell order.
func (that Board) PossibleMoves(mark Mark) []Board {
	moves := make([]Board, 0, len(that))
	for i := 0; i < len(that); i++ {
		if Mark(that[i]) == Empty {
			moves = append(moves, that.Place(i, mark))
		}
	}

	return moves
}

// Diff - indices whose marks differ between the two boards. Boards must have equal size.
func (that Board) Diff(next Board) []int {
	var changed []int
	for i := 0; i < len(that) && i < len(next); i++ {
		if that[i] != next[i] {
			changed = append(changed, i)
		}
	}

	return changed
}

// Rows - the board split into dim strings of dim cells.
func (that Board) Rows() []string {
	dim := that.Dim()
	if dim == 0 {
		return nil
	}

	rows := make([]string, 0, dim)

	for start := 0; start < len(that); start += dim {
		rows = append(rows, string(that[start:start+dim]))
	}

	return rows
}

// NextMark - whose turn it is, X opening. Returns Empty for boards no legal game reaches.
func (that Board) NextMark() Mark {
	xs, os := that.Count(X), that.Count(O)

	switch xs - os {
	case 0:
		return X
	case 1:
		return O
	default:
		return Empty
	}
}
