package render

import (
	"fmt"
	"io"
	"strings"

	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/score"
	"git.lost.host/meutraa/osuacc/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	labelWidth = 8
	countWidth = 7
	titleWidth = 40
)

type TextRenderer struct {
	Theme theme.Theme
}

func (r *TextRenderer) Report(w io.Writer, report *Report) error {
	var b strings.Builder
	bm := report.Beatmap
	b.WriteString(r.Theme.RenderHeading(fmt.Sprintf("%v - %v [%v]", bm.Artist, bm.Title, bm.Version)))
	fmt.Fprintf(&b, " mapped by %v\n", bm.Creator)
	r.field(&b, "Player", fmt.Sprintf("%v, played %v (%v)",
		report.Player, humanize.Time(report.PlayedAt), report.PlayedAt.Format("2006-01-02 15:04")))
	r.field(&b, "Beatmap", fmt.Sprintf("CS %v  OD %v  %v", bm.CircleSize, bm.OverallDifficulty, bm.Hash))
	r.field(&b, "Replay", report.Replay)
	b.WriteString("\n")

	b.WriteString(runewidth.FillRight("", labelWidth))
	for _, tier := range game.Tiers {
		b.WriteString(r.Theme.RenderTier(tier, runewidth.FillLeft(tier.String(), countWidth)))
	}
	b.WriteString(runewidth.FillLeft("accuracy", 10))
	b.WriteString("\n")
	r.judgement(&b, "native", report.Native)
	r.judgement(&b, "raw", report.Raw)
	r.judgement(&b, "true", report.True)
	b.WriteString("\n")

	hits := len(report.HitErrors)
	r.field(&b, "Errors", fmt.Sprintf("%v %v, stdev %v ms", humanize.Comma(int64(hits)), plural(hits, "hit"), report.Stdev.StringFixed(2)))
	st := report.Statistics
	r.summary(&b, r.Theme.RenderLate, "late", st.Late)
	r.summary(&b, r.Theme.RenderEarly, "early", st.Early)
	r.summary(&b, nil, "abs", st.Abs)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TextRenderer) History(w io.Writer, reports []*Report) error {
	var b strings.Builder
	if len(reports) == 0 {
		b.WriteString("No replays stored\n")
	}
	for _, report := range reports {
		hash := report.Replay
		if len(hash) > 8 {
			hash = hash[:8]
		}
		title := fmt.Sprintf("%v [%v]", report.Beatmap.Title, report.Beatmap.Version)
		title = runewidth.FillRight(runewidth.Truncate(title, titleWidth, "…"), titleWidth)
		fmt.Fprintf(&b, "%v  %v  %v  raw %v%%  true %v%%  %v\n",
			hash,
			title,
			runewidth.FillRight(runewidth.Truncate(report.Player, 16, "…"), 16),
			runewidth.FillLeft(report.Raw.Accuracy.StringFixed(2), 6),
			runewidth.FillLeft(report.True.Accuracy.StringFixed(2), 6),
			humanize.Time(report.PlayedAt),
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TextRenderer) field(b *strings.Builder, label, value string) {
	b.WriteString(runewidth.FillRight(label, labelWidth))
	b.WriteString(value)
	b.WriteString("\n")
}

func (r *TextRenderer) judgement(b *strings.Builder, label string, j Judgement) {
	b.WriteString(runewidth.FillRight(label, labelWidth))
	for _, tier := range game.Tiers {
		b.WriteString(runewidth.FillLeft(humanize.Comma(int64(j.Get(tier))), countWidth))
	}
	b.WriteString(runewidth.FillLeft(j.Accuracy.StringFixed(2)+"%", 10))
	b.WriteString("\n")
}

func (r *TextRenderer) summary(b *strings.Builder, paint func(string) string, label string, s score.Summary) {
	text := runewidth.FillRight(label, labelWidth)
	if nil != paint {
		text = paint(text)
	}
	b.WriteString(text)
	if s.Count == 0 {
		b.WriteString("none\n")
		return
	}
	fmt.Fprintf(b, "%v  min %v  max %v  mean %v\n",
		runewidth.FillLeft(humanize.Comma(int64(s.Count)), 5),
		s.Min.StringFixed(2), s.Max.StringFixed(2), s.Mean.StringFixed(2))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
