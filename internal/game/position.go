package game

import "github.com/shopspring/decimal"

// Position is a point in the 512x384 osu!pixel playfield.
type Position struct {
	X, Y decimal.Decimal
}

func NewPosition(x, y int64) Position {
	return Position{X: decimal.NewFromInt(x), Y: decimal.NewFromInt(y)}
}

// DistanceSquared avoids a square root so the comparison stays exact.
func (p Position) DistanceSquared(q Position) decimal.Decimal {
	dx := p.X.Sub(q.X)
	dy := p.Y.Sub(q.Y)
	return dx.Mul(dx).Add(dy.Mul(dy))
}
