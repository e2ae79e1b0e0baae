package score

import (
	"fmt"

	"git.lost.host/meutraa/osuacc/internal/game"
)

type DefaultScorer struct{}

func (s *DefaultScorer) Analyze(chart *game.Chart, inputs []game.Input, mode Mode) (Result, error) {
	if err := chart.Difficulty.Validate(); nil != err {
		return Result{}, fmt.Errorf("unable to analyze %q: %w", chart.Metadata.Version, err)
	}

	associations := Associate(chart, inputs, mode)
	counts := Classify(associations, NewWindows(chart.Difficulty.OverallDifficulty))
	errs := HitErrors(associations)

	return Result{
		Mode:         mode,
		Associations: associations,
		Counts:       counts,
		Accuracy:     Accuracy(counts),
		HitErrors:    errs,
		Statistics:   Summarize(errs),
		Stdev:        StandardDeviation(errs),
	}, nil
}
