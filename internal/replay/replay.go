// Package replay reads recorded plays and turns their frames into absolute
// time inputs.
package replay

import (
	"time"

	"git.lost.host/meutraa/osuacc/internal/game"
)

// Counts are the judgements the game itself awarded.
type Counts struct {
	Count300 uint16
	Count100 uint16
	Count50  uint16
	Geki     uint16
	Katu     uint16
	Miss     uint16
}

func (c Counts) Judgements() game.Counts {
	return game.Counts{
		Count300:  int(c.Count300),
		Count100:  int(c.Count100),
		Count50:   int(c.Count50),
		CountMiss: int(c.Miss),
	}
}

type Replay struct {
	Mode       uint8
	Version    int32
	BeatmapMD5 string
	Player     string
	ReplayMD5  string
	Counts     Counts
	Score      int32
	MaxCombo   uint16
	Perfect    bool
	Mods       int32
	PlayedAt   time.Time
	Frames     []game.RawInput
	Seed       int64
}
