package game

import "github.com/shopspring/decimal"

// Key state bits of a replay frame
const (
	KeyMouse1 = 1 << 0
	KeyMouse2 = 1 << 1
	KeyK1     = 1 << 2
	KeyK2     = 1 << 3
	KeySmoke  = 1 << 4
)

// RawInput is one replay frame as recorded: the time is relative to the previous frame.
type RawInput struct {
	Position Position
	Delta    decimal.Decimal
	Keys     int
}

type Input struct {
	Position Position
	Time     decimal.Decimal // Absolute time since the start of the replay, in ms
	Keys     int
}

// Pressed reports whether any hit key is held, smoke is not a hit.
func (i Input) Pressed() bool {
	return i.Keys&(KeyMouse1|KeyMouse2|KeyK1|KeyK2) != 0
}
