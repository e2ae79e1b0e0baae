package game

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

var kindTests = map[int]Kind{
	1:  Circle,
	5:  Circle,
	2:  Slider,
	6:  Slider,
	8:  Spinner,
	12: Spinner,
}

func TestKindFromType(t *testing.T) {
	for typ, expected := range kindTests {
		kind, err := KindFromType(typ)
		if nil != err || kind != expected {
			t.Errorf("type %d: %v %v, expected %v", typ, kind, err, expected)
		}
	}
	if _, err := KindFromType(128); nil == err {
		t.Error("expected an error for a mania hold")
	}
}

func TestBreakContains(t *testing.T) {
	b := Break{Start: decimal.NewFromInt(100), End: decimal.NewFromInt(200)}
	for v, expected := range map[int64]bool{99: false, 100: true, 150: true, 200: true, 201: false} {
		if b.Contains(decimal.NewFromInt(v)) != expected {
			t.Errorf("%d: expected %v", v, expected)
		}
	}
}

func TestDifficultyValidate(t *testing.T) {
	ok := Difficulty{CircleSize: decimal.NewFromInt(10), OverallDifficulty: decimal.Zero}
	if err := ok.Validate(); nil != err {
		t.Errorf("unexpected %v", err)
	}
	for _, d := range []Difficulty{
		{CircleSize: decimal.NewFromInt(-1), OverallDifficulty: decimal.NewFromInt(5)},
		{CircleSize: decimal.NewFromInt(5), OverallDifficulty: decimal.RequireFromString("10.1")},
	} {
		if err := d.Validate(); !errors.Is(err, ErrInvalidDifficulty) {
			t.Errorf("%+v: expected ErrInvalidDifficulty, got %v", d, err)
		}
	}
}

func TestCounts(t *testing.T) {
	var c Counts
	for _, tier := range []Tier{Tier300, Tier300, Tier100, Tier50, TierMiss} {
		c.Add(tier)
	}
	if c.Total() != 5 || c.Get(Tier300) != 2 || c.Get(TierMiss) != 1 {
		t.Errorf("counts %+v", c)
	}
}

func TestPressed(t *testing.T) {
	if (Input{Keys: KeySmoke}).Pressed() {
		t.Error("smoke is not a press")
	}
	if !(Input{Keys: KeyK2}).Pressed() {
		t.Error("k2 is a press")
	}
}
