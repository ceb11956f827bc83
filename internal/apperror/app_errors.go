package apperror

import "errors"

// Match faults. A match converts them into a forfeit of the mover, they never leave the match.
var (
	ErrEngineFault = errors.New("engine fault")
	ErrTimeout     = errors.New("move time exceeded")
	ErrInvalidMove = errors.New("invalid move")
)

// Configuration faults, reported before any match starts.
var (
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrUnknownEngine        = errors.New("unknown engine")
	ErrUnsupportedDimension = errors.New("unsupported board dimension")
	ErrInvalidMatch         = errors.New("invalid match")
)

var (
	ErrInvalidBoard     = errors.New("invalid board")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
)

// Human input faults. The console reader reprompts on them.
var (
	ErrCoordinateLength = errors.New("a coordinate pair must be two characters")
	ErrCoordinateFormat = errors.New("please include one letter and one digit")
	ErrOutsideGrid      = errors.New("that cell is not in the grid")
)
