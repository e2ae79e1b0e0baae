package score

import (
	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

// Judge returns the first tier whose window contains the error.
func (w Windows) Judge(e decimal.Decimal) game.Tier {
	d := e.Abs()
	switch {
	case d.LessThanOrEqual(w.Great):
		return game.Tier300
	case d.LessThanOrEqual(w.Good):
		return game.Tier100
	case d.LessThanOrEqual(w.Meh):
		return game.Tier50
	}
	return game.TierMiss
}

func Classify(associations []Association, w Windows) game.Counts {
	var counts game.Counts
	for _, a := range associations {
		if a.Error == nil {
			counts.Add(game.TierMiss)
			continue
		}
		counts.Add(w.Judge(*a.Error))
	}
	return counts
}

var (
	hundred  = decimal.NewFromInt(100)
	perfect  = decimal.NewFromInt(300)
	good     = decimal.NewFromInt(100)
	mehScore = decimal.NewFromInt(50)
)

// Accuracy is the percentage of the maximum score, rounded to 2 places.
// No judgements at all is 0.
func Accuracy(c game.Counts) decimal.Decimal {
	total := c.Total()
	if total == 0 {
		return decimal.Zero
	}
	numer := perfect.Mul(decimal.NewFromInt(int64(c.Count300))).
		Add(good.Mul(decimal.NewFromInt(int64(c.Count100)))).
		Add(mehScore.Mul(decimal.NewFromInt(int64(c.Count50))))
	denom := perfect.Mul(decimal.NewFromInt(int64(total)))
	return hundred.Mul(numer).Div(denom).Round(2)
}
