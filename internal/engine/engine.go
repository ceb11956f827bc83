package engine

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type Kind string

const (
	KindRandom    Kind = "random"
	KindMinimax   Kind = "minimax"
	KindDLMinimax Kind = "dlminimax"
	KindHuman     Kind = "human"
	KindGreedy    Kind = "greedy"
)

// Kinds - every registered engine.
var Kinds = []Kind{KindRandom, KindMinimax, KindDLMinimax, KindHuman, KindGreedy}

const (
	MinDimension = 1
	// MaxDimension is bounded by the single-digit column coordinate humans type in.
	MaxDimension = 9
	// MaxDLMinimaxDimension is the largest board with a tuned depth limit.
	MaxDLMinimaxDimension = 5
)

// Engine - a move-selection strategy for one mark on a fixed dimension.
// GetMove is called with a non-terminal board holding at least one empty cell
// and returns the successor board with exactly one more cell set to Mark.
type Engine interface {
	GetMove(ctx context.Context, board entity.Board) (entity.Board, error)

	Kind() Kind
	Mark() entity.Mark
	Dim() int
	String() string
}

// MoveReader - supplies the cell a human picked. Implementations block until a choice is made.
type MoveReader interface {
	ReadMove(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
}

type options struct {
	reader MoveReader
}

type Option func(*options)

// WithMoveReader - input source of the human engine.
func WithMoveReader(reader MoveReader) Option {
	return func(o *options) {
		o.reader = reader
	}
}

// ParseKind - maps a registry name to its Kind.
func ParseKind(name string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == name {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownEngine, name)
}

// Validate - checks that the engine exists and can play on dim×dim boards.
func Validate(kind Kind, dim int) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	if dim < MinDimension || dim > MaxDimension {
		return fmt.Errorf("%w: %d (supported %d..%d)", apperror.ErrUnsupportedDimension, dim, MinDimension, MaxDimension)
	}

	if kind == KindDLMinimax && dim > MaxDLMinimaxDimension {
		return fmt.Errorf("%w: %s supports up to %d, got %d", apperror.ErrUnsupportedDimension, kind, MaxDLMinimaxDimension, dim)
	}

	return nil
}

// New - builds the engine registered under kind.
func New(kind Kind, mark entity.Mark, dim int, opts ...Option) (Engine, error) {
	if err := Validate(kind, dim); err != nil {
		return nil, err
	}

	if mark != entity.X && mark != entity.O {
		return nil, fmt.Errorf("%w: engine mark must be %s or %s, got %q", apperror.ErrInvalidConfig, entity.X, entity.O, mark)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch kind {
	case KindRandom:
		return NewRandom(mark, dim), nil
	case KindGreedy:
		return NewGreedy(mark, dim), nil
	case KindMinimax:
		return NewMinimax(mark, dim), nil
	case KindDLMinimax:
		return NewDLMinimax(mark, dim), nil
	case KindHuman:
		if o.reader == nil {
			return nil, fmt.Errorf("%w: human engine needs a move reader", apperror.ErrInvalidConfig)
		}
		return NewHuman(mark, dim, o.reader), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownEngine, kind)
	}
}

type base struct {
	kind  Kind
	name  string
	mark  entity.Mark
	enemy entity.Mark
	dim   int
}

func newBase(kind Kind, name string, mark entity.Mark, dim int) base {
	return base{
		kind:  kind,
		name:  name,
		mark:  mark,
		enemy: mark.Opponent(),
		dim:   dim,
	}
}

func (that *base) Kind() Kind {
	return that.kind
}

func (that *base) Mark() entity.Mark {
	return that.mark
}

func (that *base) Dim() int {
	return that.dim
}

func (that *base) String() string {
	return fmt.Sprintf("<%s [%s]>", that.name, that.mark)
}
