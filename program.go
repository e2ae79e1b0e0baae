package main

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"git.lost.host/meutraa/osuacc/internal/cache"
	"git.lost.host/meutraa/osuacc/internal/config"
	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/osuapi"
	"git.lost.host/meutraa/osuacc/internal/parser"
	"git.lost.host/meutraa/osuacc/internal/render"
	"git.lost.host/meutraa/osuacc/internal/replay"
	"git.lost.host/meutraa/osuacc/internal/score"
	"git.lost.host/meutraa/osuacc/internal/store"
	"golang.org/x/sync/errgroup"
)

var ErrNoChart = errors.New("no beatmap available")

type Program struct {
	Config   *config.Config
	Parser   parser.Parser
	Scorer   score.Scorer
	Lookup   osuapi.Lookup // nil without an API key
	Cache    *cache.Cache
	Store    *store.Store
	Renderer render.Renderer
	Out      io.Writer

	now func() time.Time
}

func NewProgram(c *config.Config, out *os.File) (*Program, error) {
	// Ensure our Default implementations are used as interfaces
	p := &Program{
		Config: c,
		Parser: &parser.DefaultParser{},
		Scorer: &score.DefaultScorer{},
		Out:    out,
		now:    time.Now,
	}

	var err error
	if p.Renderer, err = render.New(c.Format, out); nil != err {
		return nil, err
	}
	if p.Store, err = store.Open(c.Database); nil != err {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	if c.Command != config.Analyze {
		return p, nil
	}

	if p.Cache, err = cache.Open(c.Cache); nil != err {
		_ = p.Store.Close()
		return nil, fmt.Errorf("unable to open beatmap cache: %w", err)
	}
	if c.API.Key != "" {
		p.Lookup = osuapi.NewClient(c.API.Endpoint, c.API.Key, c.API.Timeout)
	}
	return p, nil
}

func (p *Program) Close() error {
	var errs []error
	if nil != p.Cache {
		errs = append(errs, p.Cache.Close())
	}
	if nil != p.Store {
		errs = append(errs, p.Store.Close())
	}
	return errors.Join(errs...)
}

func (p *Program) Run(ctx context.Context) error {
	switch p.Config.Command {
	case config.Show:
		record, err := p.Store.Replay(ctx, p.Config.Hash)
		if nil != err {
			return err
		}
		return p.Renderer.Report(p.Out, render.NewReport(record))
	case config.History:
		var records []*store.Record
		var err error
		if p.Config.Title != "" {
			records, err = p.Store.SearchByTitle(ctx, p.Config.Title, p.Config.Limit)
		} else {
			records, err = p.Store.Replays(ctx, p.Config.Limit)
		}
		if nil != err {
			return err
		}
		reports := make([]*render.Report, len(records))
		for i, r := range records {
			reports[i] = render.NewReport(r)
		}
		return p.Renderer.History(p.Out, reports)
	}

	reports, err := p.Analyze(ctx, p.Config.Replays)
	if nil != err {
		return err
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(p.Out)
		}
		if err := p.Renderer.Report(p.Out, r); nil != err {
			return err
		}
	}
	return nil
}

// Analyze re-scores every replay file, up to Config.Workers at a time.
// Reports are returned in the order of files.
func (p *Program) Analyze(ctx context.Context, files []string) ([]*render.Report, error) {
	var local *game.Chart
	if p.Config.Beatmap != "" {
		var err error
		if local, err = p.Parser.Parse(p.Config.Beatmap); nil != err {
			return nil, err
		}
	}

	reports := make([]*render.Report, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Config.Workers))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			report, err := p.analyze(ctx, file, local)
			if nil != err {
				return fmt.Errorf("unable to analyze %v: %w", file, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return nil, err
	}
	return reports, nil
}

func (p *Program) analyze(ctx context.Context, file string, local *game.Chart) (*render.Report, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	rp, err := replay.Read(bytes.NewReader(data))
	if nil != err {
		return nil, err
	}
	hash := rp.ReplayMD5
	if hash == "" {
		sum := md5.Sum(data)
		hash = hex.EncodeToString(sum[:])
	}

	chart := local
	if nil == chart {
		if chart, err = p.chart(ctx, rp.BeatmapMD5); nil != err {
			return nil, err
		}
	} else if !strings.EqualFold(chart.Hash, rp.BeatmapMD5) {
		return nil, fmt.Errorf("%v is not the beatmap played: hash %v, expected %v", p.Config.Beatmap, chart.Hash, rp.BeatmapMD5)
	}

	inputs := replay.Normalize(rp.Frames)
	if !p.Config.AllFrames {
		inputs = replay.Presses(inputs)
	}
	if p.Config.Verbose {
		log.Printf("%v: %v inputs against %v targets of %v [%v]\n",
			file, len(inputs), chart.Playable(), chart.Metadata.Title, chart.Metadata.Version)
	}

	raw, err := p.Scorer.Analyze(chart, inputs, score.ModeRaw)
	if nil != err {
		return nil, err
	}
	tr, err := p.Scorer.Analyze(chart, inputs, score.ModeTrue)
	if nil != err {
		return nil, err
	}

	native := rp.Counts.Judgements()
	record := &store.Record{
		ReplayHash: hash,
		Player:     rp.Player,
		PlayedAt:   rp.PlayedAt,
		AnalyzedAt: p.now().UTC(),
		Beatmap: store.Beatmap{
			Hash:       chart.Hash,
			Metadata:   chart.Metadata,
			Difficulty: chart.Difficulty,
		},
		Native:     store.Judgement{Counts: native, Accuracy: score.Accuracy(native)},
		Raw:        store.Judgement{Counts: raw.Counts, Accuracy: raw.Accuracy},
		True:       store.Judgement{Counts: tr.Counts, Accuracy: tr.Accuracy},
		HitErrors:  raw.HitErrors,
		Statistics: raw.Statistics,
		Stdev:      raw.Stdev,
	}

	saved, err := p.Store.SaveReplay(ctx, record)
	if nil != err {
		return nil, fmt.Errorf("unable to save replay: %w", err)
	}
	if !saved {
		log.Printf("%v: replay %v already stored, skipping\n", file, hash)
	}
	return render.NewReport(record), nil
}

// chart resolves a beatmap hash from the cache, then the API.
func (p *Program) chart(ctx context.Context, hash string) (*game.Chart, error) {
	if nil != p.Cache {
		data, ok, err := p.Cache.Chart(hash)
		if nil != err {
			return nil, err
		}
		if ok {
			chart, err := p.Parser.ParseBytes(data)
			if nil != err {
				return nil, fmt.Errorf("unable to parse cached beatmap %v: %w", hash, err)
			}
			return chart, nil
		}
	}

	if nil == p.Lookup {
		return nil, fmt.Errorf("%w for %v: pass --beatmap or set an API key", ErrNoChart, hash)
	}
	bm, err := p.Lookup.BeatmapByHash(ctx, hash)
	if nil != err {
		return nil, err
	}
	data, err := p.Lookup.DownloadChart(ctx, bm.BeatmapID)
	if nil != err {
		return nil, err
	}
	chart, err := p.Parser.ParseBytes(data)
	if nil != err {
		return nil, fmt.Errorf("unable to parse beatmap %v: %w", bm.BeatmapID, err)
	}
	if !strings.EqualFold(chart.Hash, hash) {
		return nil, fmt.Errorf("%w for %v: downloaded beatmap %v has hash %v", ErrNoChart, hash, bm.BeatmapID, chart.Hash)
	}
	if chart.Metadata.BeatmapID == "" {
		chart.Metadata.BeatmapID = bm.BeatmapID
	}

	if nil != p.Cache {
		if err := p.Cache.PutChart(hash, data); nil != err {
			log.Println("unable to cache beatmap:", err)
		}
	}
	return chart, nil
}
