package score

import (
	"sort"

	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

// Mode selects how strict matching an input to a target is.
type Mode uint8

const (
	// ModeRaw requires the cursor to be on the target, as the game does.
	ModeRaw Mode = iota
	// ModeTrue only looks at timing, the cursor position is ignored.
	ModeTrue
)

func (m Mode) String() string {
	if m == ModeTrue {
		return "true"
	}
	return "raw"
}

type Association struct {
	Input  *game.Input // nil on a miss
	Target game.Target
	Error  *decimal.Decimal // Input.Time - Target.Time, nil on a miss
}

func (a Association) Miss() bool {
	return a.Input == nil
}

// breakCursor answers break membership for non-decreasing times.
type breakCursor struct {
	breaks []game.Break
	k      int
}

func newBreakCursor(breaks []game.Break) *breakCursor {
	sorted := make([]game.Break, len(breaks))
	copy(sorted, breaks)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Start.LessThan(sorted[b].Start)
	})
	return &breakCursor{breaks: sorted}
}

func (c *breakCursor) contains(t decimal.Decimal) bool {
	for c.k < len(c.breaks) && c.breaks[c.k].End.LessThan(t) {
		c.k++
	}
	for k := c.k; k < len(c.breaks) && !c.breaks[k].Start.GreaterThan(t); k++ {
		if c.breaks[k].Contains(t) {
			return true
		}
	}
	return false
}

// Associate pairs every non-spinner target with the earliest unused input that
// lands inside its 50 window and, in ModeRaw, on the circle. Inputs must be
// sorted by time, as must the chart targets.
func Associate(chart *game.Chart, inputs []game.Input, mode Mode) []Association {
	meh, _ := HitWindow(chart.Difficulty.OverallDifficulty, game.Tier50)
	radius := CircleRadius(chart.Difficulty.CircleSize)
	r2 := radius.Mul(radius)
	breaks := newBreakCursor(chart.Breaks)

	associations := make([]Association, 0, len(chart.Targets))
	i, j := 0, 0
	for j < len(chart.Targets) {
		target := chart.Targets[j]
		if target.Kind == game.Spinner {
			j++
			continue
		}
		if i >= len(inputs) {
			associations = append(associations, Association{Target: target})
			j++
			continue
		}

		input := inputs[i]
		if breaks.contains(input.Time) {
			i++
			continue
		}

		e := input.Time.Sub(target.Time)
		if e.GreaterThan(meh) {
			// Too late for this target, it may still hit the next one
			associations = append(associations, Association{Target: target})
			j++
			continue
		}

		if !e.Abs().GreaterThan(meh) &&
			(mode == ModeTrue || input.Position.DistanceSquared(target.Position).LessThan(r2)) {
			associations = append(associations, Association{
				Input:  &inputs[i],
				Target: target,
				Error:  &e,
			})
			i++
			j++
			continue
		}

		i++
	}
	return associations
}
