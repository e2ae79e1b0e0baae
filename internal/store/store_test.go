package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/score"
	"github.com/shopspring/decimal"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "osuacc.db"))
	if nil != err {
		t.Fatalf("unable to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(hash, title string, playedAt time.Time) *Record {
	errs := []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(-20), decimal.NewFromInt(120)}
	return &Record{
		ReplayHash: hash,
		Player:     "peppy",
		PlayedAt:   playedAt,
		AnalyzedAt: playedAt.Add(time.Hour),
		Beatmap: Beatmap{
			Hash:     "bm-" + title,
			Metadata: game.Metadata{BeatmapID: "75", Title: title, Artist: "Kenji Ninuma", Creator: "peppy", Version: "Normal"},
			Difficulty: game.Difficulty{
				CircleSize:        decimal.NewFromInt(4),
				OverallDifficulty: decimal.RequireFromString("6.5"),
			},
		},
		Native:     Judgement{game.Counts{Count300: 3}, decimal.NewFromInt(100)},
		Raw:        Judgement{game.Counts{Count300: 2, CountMiss: 1}, decimal.RequireFromString("66.67")},
		True:       Judgement{game.Counts{Count300: 2, Count50: 1}, decimal.RequireFromString("72.22")},
		HitErrors:  errs,
		Statistics: score.Summarize(errs),
		Stdev:      score.StandardDeviation(errs),
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	playedAt := time.Date(2020, 3, 14, 15, 9, 26, 0, time.UTC)
	in := record("abc", "DISCO PRINCE", playedAt)

	saved, err := s.SaveReplay(ctx, in)
	if nil != err {
		t.Fatalf("unable to save: %v", err)
	}
	if !saved {
		t.Fatal("expected first save to insert")
	}

	out, err := s.Replay(ctx, "abc")
	if nil != err {
		t.Fatalf("unable to load: %v", err)
	}
	if !out.PlayedAt.Equal(playedAt) {
		t.Errorf("played at %v, expected %v", out.PlayedAt, playedAt)
	}
	if out.Beatmap.Metadata != in.Beatmap.Metadata {
		t.Errorf("metadata %+v, expected %+v", out.Beatmap.Metadata, in.Beatmap.Metadata)
	}
	if !out.Beatmap.Difficulty.OverallDifficulty.Equal(in.Beatmap.Difficulty.OverallDifficulty) {
		t.Errorf("od %v", out.Beatmap.Difficulty.OverallDifficulty)
	}
	if out.Raw.Counts != in.Raw.Counts || out.True.Counts != in.True.Counts || out.Native.Counts != in.Native.Counts {
		t.Errorf("counts differ: %+v %+v %+v", out.Native, out.Raw, out.True)
	}
	if !out.True.Accuracy.Equal(in.True.Accuracy) {
		t.Errorf("accuracy %v, expected %v", out.True.Accuracy, in.True.Accuracy)
	}
	if len(out.HitErrors) != len(in.HitErrors) {
		t.Fatalf("%d hit errors, expected %d", len(out.HitErrors), len(in.HitErrors))
	}
	for i := range in.HitErrors {
		if !out.HitErrors[i].Equal(in.HitErrors[i]) {
			t.Errorf("hit error %d: %v != %v", i, out.HitErrors[i], in.HitErrors[i])
		}
	}
	if out.Statistics.Abs.Count != 3 || !out.Statistics.Abs.Max.Equal(decimal.NewFromInt(120)) {
		t.Errorf("abs statistics %+v", out.Statistics.Abs)
	}
	if !out.Stdev.Equal(in.Stdev) {
		t.Errorf("stdev %v, expected %v", out.Stdev, in.Stdev)
	}
}

func TestSaveSkipsExisting(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	r := record("abc", "DISCO PRINCE", time.Now().UTC())
	if _, err := s.SaveReplay(ctx, r); nil != err {
		t.Fatal(err)
	}

	r.Player = "someone else"
	saved, err := s.SaveReplay(ctx, r)
	if nil != err {
		t.Fatal(err)
	}
	if saved {
		t.Error("expected second save to be skipped")
	}
	out, err := s.Replay(ctx, "abc")
	if nil != err {
		t.Fatal(err)
	}
	if out.Player != "peppy" {
		t.Errorf("stored replay was overwritten by %v", out.Player)
	}
}

func TestReplayNotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.Replay(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaysOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, hash := range []string{"a", "b", "c"} {
		if _, err := s.SaveReplay(ctx, record(hash, "Song", base.Add(time.Duration(i)*time.Hour))); nil != err {
			t.Fatal(err)
		}
	}

	records, err := s.Replays(ctx, 2)
	if nil != err {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].ReplayHash != "c" || records[1].ReplayHash != "b" {
		t.Errorf("unexpected order: %v", hashes(records))
	}

	all, err := s.Replays(ctx, 0)
	if nil != err {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 replays, got %d", len(all))
	}
}

func TestSearchByTitle(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	for hash, title := range map[string]string{
		"1": "Blue Zenith",
		"2": "Freedom Dive",
		"3": "Blue Zenith (TV Size)",
		"4": "Everything will freeze",
	} {
		if _, err := s.SaveReplay(ctx, record(hash, title, now)); nil != err {
			t.Fatal(err)
		}
	}

	tests := []struct {
		query    string
		expected int
		first    string
	}{
		{"blue zenith", 2, ""},
		{"fredom dive", 1, "2"},
		{"nothing like it", 0, ""},
		{"", 4, ""},
	}
	for _, test := range tests {
		records, err := s.SearchByTitle(ctx, test.query, 0)
		if nil != err {
			t.Fatal(err)
		}
		if len(records) != test.expected {
			t.Errorf("%q matched %v, expected %d", test.query, hashes(records), test.expected)
			continue
		}
		if test.first != "" && records[0].ReplayHash != test.first {
			t.Errorf("%q ranked %v first", test.query, records[0].ReplayHash)
		}
	}

	limited, err := s.SearchByTitle(ctx, "blue", 1)
	if nil != err {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: %v", hashes(limited))
	}
}

func hashes(records []*Record) []string {
	hs := make([]string, len(records))
	for i, r := range records {
		hs[i] = r.ReplayHash
	}
	return hs
}
