package entity

type OutcomeKind string

const (
	OutcomeWin       OutcomeKind = "win"
	OutcomeDraw      OutcomeKind = "draw"
	OutcomeTimeout   OutcomeKind = "timeout"
	OutcomeException OutcomeKind = "exception"
)

// NoPlayer - player index of a drawn game.
const NoPlayer = -1

// Outcome - terminal result of one match.
// Player is the winner for OutcomeWin and the forfeiting player for timeouts and exceptions.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Player int         `json:"player"`
	Board  Board       `json:"board"`
	Line   Line        `json:"line,omitempty"`
	Plies  int         `json:"plies"`
	Reason string      `json:"reason,omitempty"`
}

func NewWin(player int, board Board, line Line, plies int) Outcome {
	return Outcome{Kind: OutcomeWin, Player: player, Board: board, Line: line, Plies: plies}
}

func NewDraw(board Board, plies int) Outcome {
	return Outcome{Kind: OutcomeDraw, Player: NoPlayer, Board: board, Plies: plies}
}

// NewForfeit - loser ran out of time (OutcomeTimeout) or faulted (OutcomeException).
func NewForfeit(kind OutcomeKind, loser int, board Board, plies int, reason string) Outcome {
	return Outcome{Kind: kind, Player: loser, Board: board, Plies: plies, Reason: reason}
}

func (that Outcome) IsForfeit() bool {
	return that.Kind == OutcomeTimeout || that.Kind == OutcomeException
}

// Winner - index of the winning player, NoPlayer for a draw.
func (that Outcome) Winner() int {
	switch {
	case that.Kind == OutcomeWin:
		return that.Player
	case that.IsForfeit():
		return 1 - that.Player
	default:
		return NoPlayer
	}
}

// Category - the scoreboard bucket this outcome is counted in.
func (that Outcome) Category() Category {
	first := that.Player == 0

	switch that.Kind {
	case OutcomeWin:
		if first {
			return CategoryP1Win
		}
		return CategoryP2Win
	case OutcomeTimeout:
		if first {
			return CategoryP1Timeout
		}
		return CategoryP2Timeout
	case OutcomeException:
		if first {
			return CategoryP1Exception
		}
		return CategoryP2Exception
	default:
		return CategoryDraw
	}
}
