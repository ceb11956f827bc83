package entity

import (
	"fmt"
	"strings"
	"time"
)

// Report - aggregated result of a tournament.
type Report struct {
	ID         string     `json:"id"`
	Player1    string     `json:"player1"`
	Player2    string     `json:"player2"`
	Dim        int        `json:"dim"`
	TimeLimit  float64    `json:"time_limit"`
	Runs       int        `json:"runs"`
	Workers    int        `json:"workers"`
	Total      int        `json:"total"`
	Scoreboard Scoreboard `json:"scoreboard"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

// Summary - the human readable tournament result block.
func (that *Report) Summary() string {
	sb := that.Scoreboard
	if sb == nil {
		sb = NewScoreboard()
	}

	var out strings.Builder

	fmt.Fprintf(&out, "=== P1: %s vs P2: %s | dim=%dx%d, time_limit=%g | %d TOTAL RUNS ===\n",
		that.Player1, that.Player2, that.Dim, that.Dim, that.TimeLimit, that.Total)
	out.WriteString("== WINS ==\n")
	fmt.Fprintf(&out, "P1: %03d (%05.1f%%)       P2: %03d (%05.1f%%)\n",
		sb[CategoryP1Win], sb.Percent(CategoryP1Win), sb[CategoryP2Win], sb.Percent(CategoryP2Win))
	fmt.Fprintf(&out, "== DRAWS: %03d ==\n", sb[CategoryDraw])
	out.WriteString("== TIMEOUTS ==\n")
	fmt.Fprintf(&out, "P1: %03d                P2: %03d\n", sb[CategoryP1Timeout], sb[CategoryP2Timeout])
	out.WriteString("== EXCEPTIONS ==\n")
	fmt.Fprintf(&out, "P1: %03d                P2: %03d\n", sb[CategoryP1Exception], sb[CategoryP2Exception])

	return out.String()
}
