package console

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Presenter - prints boards, moves and results for people watching a match.
// Colors are dropped automatically when out is not a terminal.
type Presenter struct {
	out io.Writer

	lastMoveStyle lipgloss.Style
	winLineStyle  lipgloss.Style
	forfeitStyle  lipgloss.Style
	headerStyle   lipgloss.Style
}

func NewPresenter(out io.Writer) *Presenter {
	renderer := lipgloss.NewRenderer(out)

	return &Presenter{
		out: out,

		lastMoveStyle: renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00838f", Dark: "#4dd0e1"}),
		winLineStyle:  renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50", Dark: "#6afd76"}),
		forfeitStyle:  renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000", Dark: "#df1010"}),
		headerStyle:   renderer.NewStyle().Bold(true),
	}
}

// Board - box drawing of the board with the highlighted cells rendered in style.
func (that *Presenter) Board(board entity.Board, highlight []int, style lipgloss.Style) string {
	return strings.Join(that.boardLines(board, highlight, style), "\n") + "\n"
}

// BoardWithCoordinates - the board framed with the column digits and row letters humans type.
func (that *Presenter) BoardWithCoordinates(board entity.Board) string {
	lines := that.boardLines(board, nil, lipgloss.NewStyle())
	dim := board.Dim()

	var header strings.Builder
	header.WriteString(" ")
	for x := range dim {
		fmt.Fprintf(&header, "%d ", x+1)
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, header.String())

	for i, line := range lines {
		if i%2 == 1 {
			line += " " + string(rowLetters[i/2]) + " "
		} else {
			line += "   "
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n") + "\n"
}

func (that *Presenter) boardLines(board entity.Board, highlight []int, style lipgloss.Style) []string {
	dim := board.Dim()
	lines := make([]string, 0, 2*dim+1)

	lines = append(lines, "┌"+strings.Repeat("─┬", dim-1)+"─┐")

	for y, row := range board.Rows() {
		var line strings.Builder
		line.WriteString("│")

		for x := range row {
			cell := string(row[x])
			if slices.Contains(highlight, y*dim+x) {
				cell = style.Render(cell)
			}

			line.WriteString(cell + "│")
		}

		lines = append(lines, line.String())

		if y != dim-1 {
			lines = append(lines, "├"+strings.Repeat("─┼", dim-1)+"─┤")
		}
	}

	return append(lines, "└"+strings.Repeat("─┴", dim-1)+"─┘")
}

// MatchStarted - announces the pairing.
func (that *Presenter) MatchStarted(players [2]engine.Engine) {
	dim := players[0].Dim()

	fmt.Fprintf(that.out, "\n%s\n\n", that.headerStyle.Render(
		fmt.Sprintf("%dx%d tictactoe game: %s against %s", dim, dim, players[0], players[1])))

	for _, player := range players {
		if player.Kind() == engine.KindHuman {
			fmt.Fprintln(that.out, "Note: human moves are not timed.")
			return
		}
	}
}

// MoveMade - prints the board after a ply with the changed cell highlighted.
func (that *Presenter) MoveMade(ply int, mover engine.Engine, prev, next entity.Board) {
	fmt.Fprintf(that.out, "move %d: %s moved:\n", ply, mover)
	fmt.Fprint(that.out, that.Board(next, prev.Diff(next), that.lastMoveStyle))
}

// GameOver - prints the result line: the winning line for a win, the forfeit reason otherwise.
func (that *Presenter) GameOver(outcome entity.Outcome, players [2]engine.Engine) {
	switch outcome.Kind {
	case entity.OutcomeWin:
		fmt.Fprint(that.out, that.Board(outcome.Board, outcome.Line, that.winLineStyle))
		fmt.Fprintf(that.out, "P%d WIN: %s wins!\n", outcome.Player+1, players[outcome.Player])
	case entity.OutcomeDraw:
		fmt.Fprintln(that.out, "DRAW: game ends in a draw")
	case entity.OutcomeTimeout:
		loser, winner := players[outcome.Player], players[1-outcome.Player]
		fmt.Fprintln(that.out, that.forfeitStyle.Render(fmt.Sprintf("%s ran out of time and loses by forfeit!", loser)))
		fmt.Fprintf(that.out, "P%d TIMEOUT: %s wins!\n", outcome.Player+1, winner)
	case entity.OutcomeException:
		loser, winner := players[outcome.Player], players[1-outcome.Player]
		fmt.Fprintln(that.out, that.forfeitStyle.Render(fmt.Sprintf("%s forfeits due to an exception: %s", loser, outcome.Reason)))
		fmt.Fprintf(that.out, "P%d EXCEPTION: %s wins!\n", outcome.Player+1, winner)
	}
}

// Summary - prints the tournament result block.
func (that *Presenter) Summary(report *entity.Report) {
	fmt.Fprintf(that.out, "\n%s", report.Summary())
}

// Message - free form line, used for prompts and input errors.
func (that *Presenter) Message(format string, args ...any) {
	fmt.Fprintf(that.out, format+"\n", args...)
}
