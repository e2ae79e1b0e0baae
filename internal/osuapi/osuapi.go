// Package osuapi looks up charts by the hash a replay references.
package osuapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var ErrBeatmapNotFound = errors.New("beatmap not found")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultEndpoint = "https://osu.ppy.sh"

// Beatmap is the subset of a get_beatmaps entry needed to fetch a chart.
type Beatmap struct {
	BeatmapID         string          `json:"beatmap_id"`
	Title             string          `json:"title"`
	Artist            string          `json:"artist"`
	Creator           string          `json:"creator"`
	Version           string          `json:"version"`
	CircleSize        decimal.Decimal `json:"diff_size"`
	OverallDifficulty decimal.Decimal `json:"diff_overall"`
	TotalLength       string          `json:"total_length"`
	FileMD5           string          `json:"file_md5"`
}

// Lookup is the chart source, injected so analysis never talks to the network.
type Lookup interface {
	BeatmapByHash(ctx context.Context, md5 string) (*Beatmap, error)
	DownloadChart(ctx context.Context, beatmapID string) ([]byte, error)
}

type Client struct {
	Endpoint string
	Key      string
	HTTP     *http.Client
}

func NewClient(endpoint, key string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint: strings.TrimSuffix(endpoint, "/"),
		Key:      key,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if nil != err {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if nil != err {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) BeatmapByHash(ctx context.Context, md5 string) (*Beatmap, error) {
	q := url.Values{}
	q.Set("k", c.Key)
	q.Set("h", md5)
	body, err := c.get(ctx, c.Endpoint+"/api/get_beatmaps?"+q.Encode())
	if nil != err {
		return nil, fmt.Errorf("unable to look up beatmap %v: %w", md5, err)
	}

	var beatmaps []Beatmap
	if err := json.Unmarshal(body, &beatmaps); nil != err {
		return nil, fmt.Errorf("unable to decode beatmap %v: %w", md5, err)
	}
	if len(beatmaps) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrBeatmapNotFound, md5)
	}
	return &beatmaps[0], nil
}

func (c *Client) DownloadChart(ctx context.Context, beatmapID string) ([]byte, error) {
	body, err := c.get(ctx, c.Endpoint+"/osu/"+url.PathEscape(beatmapID))
	if nil != err {
		return nil, fmt.Errorf("unable to download chart %v: %w", beatmapID, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty chart %v", ErrBeatmapNotFound, beatmapID)
	}
	return body, nil
}
