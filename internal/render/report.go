package render

import (
	"time"

	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/score"
	"git.lost.host/meutraa/osuacc/internal/store"
	"github.com/shopspring/decimal"
)

type Beatmap struct {
	Hash              string          `json:"hash" yaml:"hash"`
	ID                string          `json:"id,omitempty" yaml:"id,omitempty"`
	Title             string          `json:"title" yaml:"title"`
	Artist            string          `json:"artist" yaml:"artist"`
	Creator           string          `json:"creator" yaml:"creator"`
	Version           string          `json:"version" yaml:"version"`
	CircleSize        decimal.Decimal `json:"circle_size" yaml:"circle_size"`
	OverallDifficulty decimal.Decimal `json:"overall_difficulty" yaml:"overall_difficulty"`
}

type Judgement struct {
	game.Counts `yaml:",inline"`
	Accuracy    decimal.Decimal `json:"accuracy" yaml:"accuracy"`
}

// Report is everything known about one analysed replay.
type Report struct {
	Replay     string            `json:"replay" yaml:"replay"`
	Player     string            `json:"player" yaml:"player"`
	PlayedAt   time.Time         `json:"played_at" yaml:"played_at"`
	Beatmap    Beatmap           `json:"beatmap" yaml:"beatmap"`
	Native     Judgement         `json:"native" yaml:"native"`
	Raw        Judgement         `json:"raw" yaml:"raw"`
	True       Judgement         `json:"true" yaml:"true"`
	HitErrors  []decimal.Decimal `json:"hit_errors,omitempty" yaml:"hit_errors,omitempty"`
	Statistics score.Statistics  `json:"statistics" yaml:"statistics"`
	Stdev      decimal.Decimal   `json:"stdev" yaml:"stdev"`
}

func NewReport(r *store.Record) *Report {
	bm := r.Beatmap
	return &Report{
		Replay:   r.ReplayHash,
		Player:   r.Player,
		PlayedAt: r.PlayedAt,
		Beatmap: Beatmap{
			Hash:              bm.Hash,
			ID:                bm.Metadata.BeatmapID,
			Title:             bm.Metadata.Title,
			Artist:            bm.Metadata.Artist,
			Creator:           bm.Metadata.Creator,
			Version:           bm.Metadata.Version,
			CircleSize:        bm.Difficulty.CircleSize,
			OverallDifficulty: bm.Difficulty.OverallDifficulty,
		},
		Native:     Judgement{r.Native.Counts, r.Native.Accuracy},
		Raw:        Judgement{r.Raw.Counts, r.Raw.Accuracy},
		True:       Judgement{r.True.Counts, r.True.Accuracy},
		HitErrors:  r.HitErrors,
		Statistics: r.Statistics,
		Stdev:      r.Stdev,
	}
}
