package game

import "github.com/shopspring/decimal"

type Metadata struct {
	BeatmapID string
	Title     string
	Artist    string
	Creator   string
	Version   string // The difficulty name
}

// Break is an inclusive range in which inputs are idle time rather than attempts.
type Break struct {
	Start, End decimal.Decimal
}

func (b Break) Contains(t decimal.Decimal) bool {
	return !t.LessThan(b.Start) && !t.GreaterThan(b.End)
}

type TimingPoint struct {
	Offset    decimal.Decimal
	MsPerBeat decimal.Decimal
}

type Chart struct {
	Hash         string // MD5 of the chart file, as referenced by replays
	Metadata     Metadata
	Difficulty   Difficulty
	Targets      []Target // Sorted by time
	Breaks       []Break
	TimingPoints []TimingPoint

	CircleCount  int64
	SliderCount  int64
	SpinnerCount int64
}

// Playable is the number of targets that take part in association.
func (c *Chart) Playable() int {
	n := 0
	for _, t := range c.Targets {
		if t.Kind != Spinner {
			n++
		}
	}
	return n
}
