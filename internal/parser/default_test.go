package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/testdata"
	"github.com/shopspring/decimal"
)

func TestParseFixture(t *testing.T) {
	p := DefaultParser{}
	chart, err := p.ParseBytes(testdata.ChartData)
	if nil != err {
		t.Fatalf("unable to parse chart: %v", err)
	}

	if chart.Metadata != (game.Metadata{
		BeatmapID: "4242",
		Title:     "Fixture",
		Artist:    "Tester",
		Creator:   "meutraa",
		Version:   "Insane",
	}) {
		t.Errorf("metadata %+v", chart.Metadata)
	}
	if !chart.Difficulty.CircleSize.Equal(decimal.NewFromInt(5)) || !chart.Difficulty.OverallDifficulty.Equal(decimal.NewFromInt(5)) {
		t.Errorf("difficulty %+v", chart.Difficulty)
	}
	if len(chart.Hash) != 32 {
		t.Errorf("hash %q", chart.Hash)
	}

	kinds := []game.Kind{game.Circle, game.Slider, game.Spinner, game.Circle}
	times := []int64{1000, 2000, 7000, 9000}
	if len(chart.Targets) != len(kinds) {
		t.Fatalf("%d targets", len(chart.Targets))
	}
	for i, target := range chart.Targets {
		if target.Kind != kinds[i] || !target.Time.Equal(decimal.NewFromInt(times[i])) {
			t.Errorf("target %d: %v at %v", i, target.Kind, target.Time)
		}
	}
	if chart.CircleCount != 2 || chart.SliderCount != 1 || chart.SpinnerCount != 1 || chart.Playable() != 3 {
		t.Errorf("counts %d %d %d", chart.CircleCount, chart.SliderCount, chart.SpinnerCount)
	}

	if len(chart.Breaks) != 1 || !chart.Breaks[0].Start.Equal(decimal.NewFromInt(3000)) || !chart.Breaks[0].End.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("breaks %+v", chart.Breaks)
	}
	if len(chart.TimingPoints) != 2 || !chart.TimingPoints[1].MsPerBeat.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("timing points %+v", chart.TimingPoints)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.osu")
	if err := os.WriteFile(path, testdata.ChartData, 0o644); nil != err {
		t.Fatal(err)
	}
	p := DefaultParser{}
	chart, err := p.Parse(path)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Metadata.Title != "Fixture" {
		t.Errorf("title %q", chart.Metadata.Title)
	}
	if _, err := p.Parse(filepath.Join(t.TempDir(), "missing.osu")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist, got %v", err)
	}
}

func TestParseUnsortedObjects(t *testing.T) {
	data := "osu file format v14\r\n\r\n[Difficulty]\r\nCircleSize:4\r\nOverallDifficulty:8.5\r\n\r\n" +
		"[Events]\r\nBreak,5000,6000\r\n2,1000,2000\r\n\r\n" +
		"[HitObjects]\r\n10,10,3000,1,0\r\n20,20,500,1,0\r\n30,30,3000,2,0,L|40:40,1,50\r\n"
	p := DefaultParser{}
	chart, err := p.ParseBytes([]byte(data))
	if nil != err {
		t.Fatal(err)
	}
	expected := []string{"500", "3000", "3000"}
	for i, target := range chart.Targets {
		if target.Time.String() != expected[i] {
			t.Errorf("target %d at %v", i, target.Time)
		}
	}
	// Equal times keep file order
	if chart.Targets[1].Kind != game.Circle || chart.Targets[2].Kind != game.Slider {
		t.Errorf("unstable order %v %v", chart.Targets[1].Kind, chart.Targets[2].Kind)
	}
	if !chart.Breaks[0].Start.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("breaks not sorted %+v", chart.Breaks)
	}
	if !chart.Difficulty.OverallDifficulty.Equal(decimal.RequireFromString("8.5")) {
		t.Errorf("od %v", chart.Difficulty.OverallDifficulty)
	}
}

var malformedCharts = map[string]string{
	"no header":      "[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n",
	"no difficulty":  "osu file format v14\n[HitObjects]\n1,1,1,1,0\n",
	"taiko":          "osu file format v14\n[General]\nMode: 1\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n",
	"bad time":       "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n[HitObjects]\n1,1,abc,1,0\n",
	"short object":   "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n[HitObjects]\n1,1,100\n",
	"mania hold":     "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n[HitObjects]\n1,1,100,128,0\n",
	"bad break":      "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n[Events]\n2,x,100\n",
	"bad od":         "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:hard\n",
	"bad beatlength": "osu file format v14\n[Difficulty]\nCircleSize:4\nOverallDifficulty:8\n[TimingPoints]\n0,fast\n",
}

func TestParseMalformed(t *testing.T) {
	p := DefaultParser{}
	for name, data := range malformedCharts {
		_, err := p.ParseBytes([]byte(data))
		if !errors.Is(err, ErrMalformedChart) {
			t.Errorf("%v: expected ErrMalformedChart, got %v", name, err)
		}
	}
}

func TestParseEmptyObjects(t *testing.T) {
	p := DefaultParser{}
	chart, err := p.ParseBytes([]byte(strings.Join([]string{
		"osu file format v14",
		"[Difficulty]",
		"CircleSize:4",
		"OverallDifficulty:8",
		"[HitObjects]",
	}, "\n")))
	if nil != err {
		t.Fatal(err)
	}
	if len(chart.Targets) != 0 {
		t.Errorf("%d targets", len(chart.Targets))
	}
}
