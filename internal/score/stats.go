package score

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary describes one set of hit errors. An empty set is all zero.
type Summary struct {
	Count int             `json:"count" yaml:"count"`
	Min   decimal.Decimal `json:"min" yaml:"min"`
	Max   decimal.Decimal `json:"max" yaml:"max"`
	Mean  decimal.Decimal `json:"mean" yaml:"mean"`
}

type Statistics struct {
	Late  Summary `json:"late" yaml:"late"`   // Positive errors
	Early Summary `json:"early" yaml:"early"` // Negative errors
	Abs   Summary `json:"abs" yaml:"abs"`
}

func summarize(errs []decimal.Decimal) Summary {
	if len(errs) == 0 {
		return Summary{Min: decimal.Zero, Max: decimal.Zero, Mean: decimal.Zero}
	}
	return Summary{
		Count: len(errs),
		Min:   decimal.Min(errs[0], errs[1:]...),
		Max:   decimal.Max(errs[0], errs[1:]...),
		Mean:  decimal.Sum(errs[0], errs[1:]...).Div(decimal.NewFromInt(int64(len(errs)))),
	}
}

// Summarize partitions errors by sign. A zero error only counts towards Abs.
func Summarize(errs []decimal.Decimal) Statistics {
	var late, early, abs []decimal.Decimal
	for _, e := range errs {
		switch e.Sign() {
		case 1:
			late = append(late, e)
		case -1:
			early = append(early, e)
		}
		abs = append(abs, e.Abs())
	}
	return Statistics{
		Late:  summarize(late),
		Early: summarize(early),
		Abs:   summarize(abs),
	}
}

// HitErrors returns the errors of all hits in chronological order.
func HitErrors(associations []Association) []decimal.Decimal {
	errs := make([]decimal.Decimal, 0, len(associations))
	for _, a := range associations {
		if a.Error != nil {
			errs = append(errs, *a.Error)
		}
	}
	return errs
}

// StandardDeviation of the signed errors, 0 below two hits.
func StandardDeviation(errs []decimal.Decimal) decimal.Decimal {
	if len(errs) < 2 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(len(errs)))
	mean := decimal.Sum(errs[0], errs[1:]...).Div(n)
	variance := decimal.Zero
	for _, e := range errs {
		xi := e.Sub(mean)
		variance = variance.Add(xi.Mul(xi))
	}
	variance = variance.Div(n.Sub(one))
	f, _ := variance.Float64()
	return decimal.NewFromFloat(math.Sqrt(f)).Round(2)
}
