// Package theme colours report text for a terminal.
package theme

import (
	"fmt"

	"git.lost.host/meutraa/osuacc/internal/game"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme uses 24-bit colour escapes.
type DefaultTheme struct{}

func (t *DefaultTheme) RenderTier(tier game.Tier, text string) string {
	return paint(getTierColor(tier), text)
}

func (t *DefaultTheme) RenderLate(text string) string {
	return paint(lateColor, text)
}

func (t *DefaultTheme) RenderEarly(text string) string {
	return paint(earlyColor, text)
}

func (t *DefaultTheme) RenderHeading(text string) string {
	return "\033[1m" + text + "\033[0m"
}

func paint(c Color, text string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, text)
}

// PlainTheme leaves text untouched, for pipes and files.
type PlainTheme struct{}

func (t *PlainTheme) RenderTier(tier game.Tier, text string) string { return text }
func (t *PlainTheme) RenderLate(text string) string                 { return text }
func (t *PlainTheme) RenderEarly(text string) string                { return text }
func (t *PlainTheme) RenderHeading(text string) string              { return text }

var (
	lateColor  = Color{236, 128, 0} // orange
	earlyColor = Color{0, 118, 236} // blue
	tierColors = map[game.Tier]Color{
		game.Tier300:  {102, 204, 255}, // light blue
		game.Tier100:  {0, 236, 128},   // green
		game.Tier50:   {236, 195, 0},   // yellow
		game.TierMiss: {236, 30, 0},    // red
	}
)

func getTierColor(t game.Tier) Color {
	col, ok := tierColors[t]
	if !ok {
		return Color{255, 255, 255}
	}
	return col
}
