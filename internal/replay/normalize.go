package replay

import (
	"sort"

	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

// Normalize accumulates frame deltas into absolute times, the time of input i
// is the sum of deltas 0 through i. Frames with negative deltas can land out
// of order, so the result is stably sorted by time.
func Normalize(frames []game.RawInput) []game.Input {
	inputs := make([]game.Input, len(frames))
	elapsed := decimal.Zero
	sorted := true
	for i, f := range frames {
		elapsed = elapsed.Add(f.Delta)
		inputs[i] = game.Input{Position: f.Position, Time: elapsed, Keys: f.Keys}
		if i > 0 && elapsed.LessThan(inputs[i-1].Time) {
			sorted = false
		}
	}
	if !sorted {
		sort.SliceStable(inputs, func(a, b int) bool {
			return inputs[a].Time.LessThan(inputs[b].Time)
		})
	}
	return inputs
}

const hitKeys = game.KeyMouse1 | game.KeyMouse2 | game.KeyK1 | game.KeyK2

// Presses keeps the inputs where a hit key goes down. Between presses the
// replay only records cursor movement.
func Presses(inputs []game.Input) []game.Input {
	presses := []game.Input{}
	held := 0
	for _, in := range inputs {
		keys := in.Keys & hitKeys
		if keys&^held != 0 {
			presses = append(presses, in)
		}
		held = keys
	}
	return presses
}
