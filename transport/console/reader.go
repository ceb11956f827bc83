package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// ParseCoordinate - maps a coordinate pair such as "B2" or "2b" to a cell index on a dim×dim board.
// The letter picks the row and the digit the column, in either order.
func ParseCoordinate(input string, dim int) (int, error) {
	chars := []rune(strings.TrimSpace(input))
	if len(chars) != 2 {
		return 0, apperror.ErrCoordinateLength
	}

	slices.Sort(chars)

	digit, letter := chars[0], unicode.ToUpper(chars[1])
	if !unicode.IsDigit(digit) || !unicode.IsLetter(letter) {
		return 0, apperror.ErrCoordinateFormat
	}

	row := strings.IndexRune(rowLetters, letter)
	if row < 0 {
		return 0, apperror.ErrCoordinateFormat
	}

	col := int(digit-'0') - 1
	if col < 0 || col >= dim || row >= dim {
		return 0, apperror.ErrOutsideGrid
	}

	return row*dim + col, nil
}

// Reader - reads human moves from a line based input such as stdin.
type Reader struct {
	presenter *Presenter

	in    io.Reader
	start sync.Once
	lines chan string
	err   error
}

func NewReader(in io.Reader, presenter *Presenter) *Reader {
	return &Reader{
		presenter: presenter,
		in:        in,
		lines:     make(chan string),
	}
}

// ReadMove - prompts until the human enters a coordinate of an empty cell.
// It gives up when ctx is done or the input is exhausted.
func (that *Reader) ReadMove(ctx context.Context, board entity.Board, mark entity.Mark) (int, error) {
	that.start.Do(func() {
		go that.scan()
	})

	that.presenter.Message("%s", strings.TrimRight(that.presenter.BoardWithCoordinates(board), "\n"))

	for {
		that.presenter.Message("Please enter a coordinate pair to place '%s' (such as B2 or 1A): ", mark)

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case line, ok = <-that.lines:
		}

		if !ok {
			if that.err != nil {
				return 0, fmt.Errorf("failed to read move: %w", that.err)
			}

			return 0, fmt.Errorf("failed to read move: %w", io.ErrUnexpectedEOF)
		}

		cell, err := ParseCoordinate(line, board.Dim())
		if err != nil {
			that.presenter.Message("%s.", capitalize(err.Error()))
			continue
		}

		if board.At(cell) != entity.Empty {
			that.presenter.Message("%s.", capitalize(apperror.ErrCellOccupied.Error()))
			continue
		}

		return cell, nil
	}
}

// scan - feeds input lines to ReadMove. The channel is closed at the end of the input.
func (that *Reader) scan() {
	defer close(that.lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- scanner.Text()
	}

	that.err = scanner.Err()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
