package entity

type Category string

const (
	CategoryP1Win       Category = "p1_win"
	CategoryP2Win       Category = "p2_win"
	CategoryDraw        Category = "draw"
	CategoryP1Timeout   Category = "p1_timeout"
	CategoryP2Timeout   Category = "p2_timeout"
	CategoryP1Exception Category = "p1_exception"
	CategoryP2Exception Category = "p2_exception"
)

var Categories = []Category{
	CategoryP1Win,
	CategoryP2Win,
	CategoryDraw,
	CategoryP1Timeout,
	CategoryP2Timeout,
	CategoryP1Exception,
	CategoryP2Exception,
}

// Scoreboard - outcome counts per category.
// It is not synchronized: a single aggregator owns it while matches are running.
type Scoreboard map[Category]int

func NewScoreboard() Scoreboard {
	scoreboard := make(Scoreboard, len(Categories))
	for _, category := range Categories {
		scoreboard[category] = 0
	}

	return scoreboard
}

func (that Scoreboard) Add(outcome Outcome) {
	that[outcome.Category()]++
}

func (that Scoreboard) Total() int {
	total := 0
	for _, count := range that {
		total += count
	}

	return total
}

// Percent - share of the category in all counted outcomes, 0 for an empty scoreboard.
func (that Scoreboard) Percent(category Category) float64 {
	total := that.Total()
	if total == 0 {
		return 0
	}

	return 100 * float64(that[category]) / float64(total)
}
