package game

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

var (
	minDifficulty = decimal.Zero
	maxDifficulty = decimal.NewFromInt(10)
)

type Difficulty struct {
	CircleSize        decimal.Decimal
	OverallDifficulty decimal.Decimal
}

func (d Difficulty) Validate() error {
	if d.CircleSize.LessThan(minDifficulty) || d.CircleSize.GreaterThan(maxDifficulty) {
		return fmt.Errorf("%w: circle size %v outside [0, 10]", ErrInvalidDifficulty, d.CircleSize)
	}
	if d.OverallDifficulty.LessThan(minDifficulty) || d.OverallDifficulty.GreaterThan(maxDifficulty) {
		return fmt.Errorf("%w: overall difficulty %v outside [0, 10]", ErrInvalidDifficulty, d.OverallDifficulty)
	}
	return nil
}
