package replay

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/osuacc/internal/game"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz/lzma"
)

var ErrMalformedReplay = errors.New("malformed replay")

const (
	modeStandard = 0

	// The last frame carries the RNG seed instead of an input
	seedDelta = -12345

	// .NET ticks at the unix epoch
	unixEpochTicks = 621355968000000000
)

type reader struct {
	r   *bufio.Reader
	err error
}

func (r *reader) read(v interface{}) {
	if nil != r.err {
		return
	}
	r.err = binary.Read(r.r, binary.LittleEndian, v)
}

// string reads an optional ULEB128 length prefixed string
func (r *reader) readString() string {
	var flag uint8
	r.read(&flag)
	if nil != r.err || flag == 0x00 {
		return ""
	}
	if flag != 0x0b {
		r.err = fmt.Errorf("string flag 0x%02x", flag)
		return ""
	}
	n, err := binary.ReadUvarint(r.r)
	if nil != err {
		r.err = err
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); nil != err {
		r.err = err
		return ""
	}
	return string(buf)
}

func Open(file string) (*Replay, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, fmt.Errorf("unable to open replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(in io.Reader) (*Replay, error) {
	r := &reader{r: bufio.NewReader(in)}
	var rp Replay
	var perfect uint8
	var ticks int64
	var length int32

	r.read(&rp.Mode)
	r.read(&rp.Version)
	rp.BeatmapMD5 = r.readString()
	rp.Player = r.readString()
	rp.ReplayMD5 = r.readString()
	r.read(&rp.Counts)
	r.read(&rp.Score)
	r.read(&rp.MaxCombo)
	r.read(&perfect)
	r.read(&rp.Mods)
	_ = r.readString() // Life bar graph
	r.read(&ticks)
	r.read(&length)
	if nil != r.err {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedReplay, r.err)
	}
	if rp.Mode != modeStandard {
		return nil, fmt.Errorf("%w: unsupported game mode %d", ErrMalformedReplay, rp.Mode)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: frame data length %d", ErrMalformedReplay, length)
	}
	rp.Perfect = perfect != 0
	rp.PlayedAt = time.Unix(0, (ticks-unixEpochTicks)*100).UTC()

	compressed := make([]byte, length)
	if _, err := io.ReadFull(r.r, compressed); nil != err {
		return nil, fmt.Errorf("%w: frame data: %v", ErrMalformedReplay, err)
	}
	frames, seed, err := decodeFrames(compressed)
	if nil != err {
		return nil, err
	}
	rp.Frames = frames
	rp.Seed = seed
	return &rp, nil
}

func decodeFrames(compressed []byte) ([]game.RawInput, int64, error) {
	if len(compressed) == 0 {
		return nil, 0, nil
	}
	lr, err := lzma.NewReader(bytes.NewReader(compressed))
	if nil != err {
		return nil, 0, fmt.Errorf("%w: unable to decompress frames: %v", ErrMalformedReplay, err)
	}
	data, err := io.ReadAll(lr)
	if nil != err {
		return nil, 0, fmt.Errorf("%w: unable to decompress frames: %v", ErrMalformedReplay, err)
	}
	return ParseFrames(string(data))
}

// ParseFrames decodes "w|x|y|keys," frames. The seed frame is returned
// separately and not included.
func ParseFrames(data string) ([]game.RawInput, int64, error) {
	var seed int64
	frames := []game.RawInput{}
	for i, frame := range strings.Split(data, ",") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		fs := strings.Split(frame, "|")
		if len(fs) != 4 {
			return nil, 0, fmt.Errorf("%w: frame %d: %q", ErrMalformedReplay, i, frame)
		}
		w, err := strconv.ParseInt(fs[0], 10, 64)
		if nil != err {
			return nil, 0, fmt.Errorf("%w: frame %d delta %q", ErrMalformedReplay, i, fs[0])
		}
		keys, err := strconv.ParseInt(fs[3], 10, 64)
		if nil != err {
			return nil, 0, fmt.Errorf("%w: frame %d keys %q", ErrMalformedReplay, i, fs[3])
		}
		if w == seedDelta {
			seed = keys
			continue
		}
		x, err := decimal.NewFromString(fs[1])
		if nil != err {
			return nil, 0, fmt.Errorf("%w: frame %d x %q", ErrMalformedReplay, i, fs[1])
		}
		y, err := decimal.NewFromString(fs[2])
		if nil != err {
			return nil, 0, fmt.Errorf("%w: frame %d y %q", ErrMalformedReplay, i, fs[2])
		}
		frames = append(frames, game.RawInput{
			Position: game.Position{X: x, Y: y},
			Delta:    decimal.NewFromInt(w),
			Keys:     int(keys),
		})
	}
	return frames, seed, nil
}
