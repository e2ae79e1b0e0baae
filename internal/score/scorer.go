package score

import (
	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

type Scorer interface {
	// Analyze re-judges a play of chart from its inputs
	Analyze(chart *game.Chart, inputs []game.Input, mode Mode) (Result, error)
}

type Result struct {
	Mode         Mode
	Associations []Association
	Counts       game.Counts
	Accuracy     decimal.Decimal
	HitErrors    []decimal.Decimal // Chronological
	Statistics   Statistics
	Stdev        decimal.Decimal
}
