package parser

import "git.lost.host/meutraa/osuacc/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
	ParseBytes(data []byte) (*game.Chart, error)
}
