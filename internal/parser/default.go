package parser

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
)

var ErrMalformedChart = errors.New("malformed chart")

// Only osu!standard charts have positional targets
const modeStandard = 0

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	return p.ParseBytes(data)
}

func malformed(section string, n int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: [%v] line %d: %v", ErrMalformedChart, section, n, fmt.Sprintf(format, args...))
}

// keyValue splits "Key: Value" and "Key:Value" lines
func keyValue(line string) (string, string, bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func fields(line string, min int) ([]string, bool) {
	fs := strings.Split(line, ",")
	for i := range fs {
		fs[i] = strings.TrimSpace(fs[i])
	}
	return fs, len(fs) >= min
}

func (p *DefaultParser) ParseBytes(data []byte) (*game.Chart, error) {
	sum := md5.Sum(data)
	chart := &game.Chart{Hash: hex.EncodeToString(sum[:])}

	str := strings.ReplaceAll(string(data), "\r", "")
	str = strings.TrimPrefix(str, "\ufeff")
	if !strings.HasPrefix(strings.TrimSpace(str), "osu file format") {
		return nil, fmt.Errorf("%w: missing file format header", ErrMalformedChart)
	}

	var section string
	var haveCS, haveOD bool

	for n, line := range strings.Split(str, "\n") {
		n++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		switch section {
		case "General":
			k, v, ok := keyValue(line)
			if !ok || k != "Mode" {
				continue
			}
			mode, err := strconv.Atoi(v)
			if nil != err {
				return nil, malformed(section, n, "mode %q", v)
			}
			if mode != modeStandard {
				return nil, fmt.Errorf("%w: unsupported game mode %d", ErrMalformedChart, mode)
			}
		case "Metadata":
			k, v, ok := keyValue(line)
			if !ok {
				continue
			}
			switch k {
			case "Title":
				chart.Metadata.Title = v
			case "Artist":
				chart.Metadata.Artist = v
			case "Creator":
				chart.Metadata.Creator = v
			case "Version":
				chart.Metadata.Version = v
			case "BeatmapID":
				chart.Metadata.BeatmapID = v
			}
		case "Difficulty":
			k, v, ok := keyValue(line)
			if !ok {
				continue
			}
			switch k {
			case "CircleSize", "OverallDifficulty":
				d, err := decimal.NewFromString(v)
				if nil != err {
					return nil, malformed(section, n, "%v %q", k, v)
				}
				if k == "CircleSize" {
					chart.Difficulty.CircleSize, haveCS = d, true
				} else {
					chart.Difficulty.OverallDifficulty, haveOD = d, true
				}
			}
		case "Events":
			fs, ok := fields(line, 3)
			if !ok || (fs[0] != "2" && fs[0] != "Break") {
				continue
			}
			start, err := decimal.NewFromString(fs[1])
			if nil != err {
				return nil, malformed(section, n, "break start %q", fs[1])
			}
			end, err := decimal.NewFromString(fs[2])
			if nil != err {
				return nil, malformed(section, n, "break end %q", fs[2])
			}
			chart.Breaks = append(chart.Breaks, game.Break{Start: start, End: end})
		case "TimingPoints":
			fs, ok := fields(line, 2)
			if !ok {
				return nil, malformed(section, n, "expected offset and beat length")
			}
			offset, err := decimal.NewFromString(fs[0])
			if nil != err {
				return nil, malformed(section, n, "offset %q", fs[0])
			}
			msPerBeat, err := decimal.NewFromString(fs[1])
			if nil != err {
				return nil, malformed(section, n, "beat length %q", fs[1])
			}
			chart.TimingPoints = append(chart.TimingPoints, game.TimingPoint{Offset: offset, MsPerBeat: msPerBeat})
		case "HitObjects":
			// x,y,time,type,hitSound,objectParams,hitSample
			fs, ok := fields(line, 4)
			if !ok {
				return nil, malformed(section, n, "expected x,y,time,type")
			}
			x, err := decimal.NewFromString(fs[0])
			if nil != err {
				return nil, malformed(section, n, "x %q", fs[0])
			}
			y, err := decimal.NewFromString(fs[1])
			if nil != err {
				return nil, malformed(section, n, "y %q", fs[1])
			}
			t, err := decimal.NewFromString(fs[2])
			if nil != err {
				return nil, malformed(section, n, "time %q", fs[2])
			}
			typ, err := strconv.Atoi(fs[3])
			if nil != err {
				return nil, malformed(section, n, "type %q", fs[3])
			}
			kind, err := game.KindFromType(typ)
			if nil != err {
				return nil, malformed(section, n, "%v", err)
			}
			switch kind {
			case game.Circle:
				chart.CircleCount++
			case game.Slider:
				chart.SliderCount++
			case game.Spinner:
				chart.SpinnerCount++
			}
			chart.Targets = append(chart.Targets, game.Target{
				Position: game.Position{X: x, Y: y},
				Time:     t,
				Kind:     kind,
			})
		}
	}

	if !haveCS || !haveOD {
		return nil, fmt.Errorf("%w: missing CircleSize or OverallDifficulty", ErrMalformedChart)
	}

	sort.SliceStable(chart.Targets, func(i, j int) bool {
		return chart.Targets[i].Time.LessThan(chart.Targets[j].Time)
	})
	sort.SliceStable(chart.Breaks, func(i, j int) bool {
		return chart.Breaks[i].Start.LessThan(chart.Breaks[j].Start)
	})

	return chart, nil
}
