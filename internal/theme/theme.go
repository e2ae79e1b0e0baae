package theme

import "git.lost.host/meutraa/osuacc/internal/game"

type Theme interface {
	RenderTier(t game.Tier, text string) string
	RenderLate(text string) string
	RenderEarly(text string) string
	RenderHeading(text string) string
}
