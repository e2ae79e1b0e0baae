package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	Circle Kind = iota
	Slider
	Spinner
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Slider:
		return "slider"
	case Spinner:
		return "spinner"
	}
	return "unknown"
}

// Hit object type bits, see the "Type" section of the .osu file format
const (
	typeCircle  = 1 << 0
	typeSlider  = 1 << 1
	typeSpinner = 1 << 3
)

// KindFromType decodes the hit object type bitmask once at load time.
// The remaining bits (new combo, colour skip, mania hold) are ignored.
func KindFromType(t int) (Kind, error) {
	switch {
	case t&typeCircle != 0:
		return Circle, nil
	case t&typeSlider != 0:
		return Slider, nil
	case t&typeSpinner != 0:
		return Spinner, nil
	}
	return 0, fmt.Errorf("unsupported hit object type %d", t)
}

type Target struct {
	Position Position
	Time     decimal.Decimal // The time the target should be hit, in ms
	Kind     Kind
}
