package score

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

var ErrInvalidTier = errors.New("invalid tier")

// Width of the input recording coordinate space
const PlayfieldWidth = 512

type windowConstants struct {
	base, slope decimal.Decimal
}

var windows = map[game.Tier]windowConstants{
	game.Tier300: {decimal.NewFromInt(50), decimal.NewFromInt(30)},
	game.Tier100: {decimal.NewFromInt(100), decimal.NewFromInt(40)},
	game.Tier50:  {decimal.NewFromInt(150), decimal.NewFromInt(50)},
}

var (
	five  = decimal.NewFromInt(5)
	one   = decimal.NewFromInt(1)
	seven = decimal.RequireFromString("0.7")
)

// HitWindow returns the maximum absolute error in ms that still awards tier.
func HitWindow(od decimal.Decimal, tier game.Tier) (decimal.Decimal, error) {
	c, ok := windows[tier]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidTier, tier)
	}
	return c.base.Add(c.slope.Mul(five.Sub(od)).Div(five)), nil
}

// CircleRadius returns the hit circle radius in osu!pixels.
// cs must be within [0, 10].
func CircleRadius(cs decimal.Decimal) decimal.Decimal {
	scale := decimal.NewFromInt(PlayfieldWidth / 16)
	return scale.Mul(one.Sub(seven.Mul(cs.Sub(five)).Div(five)))
}

// Windows holds the three hit windows of a difficulty.
type Windows struct {
	Great, Good, Meh decimal.Decimal // 300, 100, 50
}

func NewWindows(od decimal.Decimal) Windows {
	// The tiers are known so these cannot fail
	w300, _ := HitWindow(od, game.Tier300)
	w100, _ := HitWindow(od, game.Tier100)
	w50, _ := HitWindow(od, game.Tier50)
	return Windows{Great: w300, Good: w100, Meh: w50}
}
