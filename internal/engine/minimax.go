package engine

import (
	"math"
	"strings"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Minimax - exhaustive search to the end of the game. Wins score 1, losses -1.
type Minimax struct {
	searcher
}

func NewMinimax(mark entity.Mark, dim int) *Minimax {
	engine := &Minimax{}
	engine.base = newBase(KindMinimax, "vanilla minimax", mark, dim)
	engine.win, engine.loss = 1, -1
	engine.maxDepth = unbounded

	return engine
}

// DLMinimax - minimax cut off at a depth chosen per board size, scoring
// the frontier with a run-counting heuristic. Terminal values are infinite
// so that no heuristic score outweighs a forced result.
type DLMinimax struct {
	searcher
}

func NewDLMinimax(mark entity.Mark, dim int) *DLMinimax {
	engine := &DLMinimax{}
	engine.base = newBase(KindDLMinimax, "depth limited minimax", mark, dim)
	engine.win, engine.loss = math.Inf(1), math.Inf(-1)
	engine.maxDepth = DepthLimit(dim)
	engine.evaluate = engine.heuristic

	return engine
}

// DepthLimit - search depth of the depth limited minimax on dim×dim boards.
func DepthLimit(dim int) int {
	switch {
	case dim <= 3:
		return 100
	case dim == 4:
		return 5
	default:
		return 4
	}
}

// heuristic - for every line and run length n in [1, dim), adds 10^n when n own
// marks sit next to an empty cell and subtracts 10^n for the same opponent pattern.
func (that *DLMinimax) heuristic(board entity.Board) float64 {
	score := 0.0

	for _, line := range entity.Lines(that.dim) {
		cells := board.Cells(line)

		for n := 1; n < that.dim; n++ {
			weight := math.Pow10(n)
			if hasOpenRun(cells, that.mark, n) {
				score += weight
			}
			if hasOpenRun(cells, that.enemy, n) {
				score -= weight
			}
		}
	}

	return score
}

func hasOpenRun(cells string, mark entity.Mark, n int) bool {
	run := strings.Repeat(mark.String(), n)
	empty := entity.Empty.String()

	return strings.Contains(cells, empty+run) || strings.Contains(cells, run+empty)
}
