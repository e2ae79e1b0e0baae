package game

import "fmt"

// Tier is a judgement, named after the score it awards.
type Tier int

const (
	TierMiss Tier = 0
	Tier50   Tier = 50
	Tier100  Tier = 100
	Tier300  Tier = 300
)

// Tiers are ordered best to worst.
var Tiers = []Tier{Tier300, Tier100, Tier50, TierMiss}

func (t Tier) String() string {
	if t == TierMiss {
		return "miss"
	}
	return fmt.Sprint(int(t))
}

type Judgement struct {
	Tier Tier
	Name string
}

// Counts holds the number of judgements per tier.
type Counts struct {
	Count300  int `json:"count_300" yaml:"count_300"`
	Count100  int `json:"count_100" yaml:"count_100"`
	Count50   int `json:"count_50" yaml:"count_50"`
	CountMiss int `json:"count_miss" yaml:"count_miss"`
}

func (c *Counts) Add(t Tier) {
	switch t {
	case Tier300:
		c.Count300++
	case Tier100:
		c.Count100++
	case Tier50:
		c.Count50++
	default:
		c.CountMiss++
	}
}

func (c Counts) Get(t Tier) int {
	switch t {
	case Tier300:
		return c.Count300
	case Tier100:
		return c.Count100
	case Tier50:
		return c.Count50
	}
	return c.CountMiss
}

func (c Counts) Total() int {
	return c.Count300 + c.Count100 + c.Count50 + c.CountMiss
}
