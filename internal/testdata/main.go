// Package testdata holds a small chart and a replay of it for tests.
//
// Pressing the chart with Frames gives two 300s, a press inside the break,
// and a press 90px beside the last circle 120ms late.
package testdata

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"time"

	"github.com/ulikunitz/xz/lzma"
)

//go:embed chart.osu
var ChartData []byte

// Frames of a replay of ChartData in the .osr text encoding
const Frames = "0|0|0|0,1010|100|100|5,40|100|100|0,900|200|200|10,50|200|200|0," +
	"2000|50|50|5,100|50|50|0,5020|390|300|5,80|390|300|0,-12345|0|0|7364,"

var PlayedAt = time.Date(2019, 1, 16, 20, 30, 0, 0, time.UTC)

type Counts struct {
	Count300, Count100, Count50, Geki, Katu, Miss uint16
}

type Replay struct {
	BeatmapMD5 string
	ReplayMD5  string
	Player     string
	Counts     Counts
	Frames     string
	PlayedAt   time.Time
}

// Net ticks at the unix epoch
const unixEpochTicks = 621355968000000000

func writeString(b *bytes.Buffer, s string) {
	if s == "" {
		b.WriteByte(0x00)
		return
	}
	b.WriteByte(0x0b)
	var n [binary.MaxVarintLen64]byte
	b.Write(n[:binary.PutUvarint(n[:], uint64(len(s)))])
	b.WriteString(s)
}

// OSR encodes r as an osu!standard replay file.
func OSR(r Replay) ([]byte, error) {
	var compressed bytes.Buffer
	w, err := lzma.NewWriter(&compressed)
	if nil != err {
		return nil, err
	}
	if _, err := w.Write([]byte(r.Frames)); nil != err {
		return nil, err
	}
	if err := w.Close(); nil != err {
		return nil, err
	}

	var b bytes.Buffer
	le := func(v interface{}) {
		// Writes to a bytes.Buffer cannot fail
		_ = binary.Write(&b, binary.LittleEndian, v)
	}
	le(uint8(0))
	le(int32(20190116))
	writeString(&b, r.BeatmapMD5)
	writeString(&b, r.Player)
	writeString(&b, r.ReplayMD5)
	le(r.Counts)
	le(int32(1234567))
	le(uint16(42))
	le(uint8(0))
	le(int32(0))
	writeString(&b, "")
	le(r.PlayedAt.UnixNano()/100 + unixEpochTicks)
	le(int32(compressed.Len()))
	b.Write(compressed.Bytes())
	le(int64(0))
	return b.Bytes(), nil
}
