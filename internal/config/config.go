// Package config resolves the command line, the config file and defaults
// into a single Config.
package config

import (
	"fmt"
	"runtime"
	"time"

	"git.lost.host/meutraa/osuacc/internal/osuapi"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

type Command string

const (
	Analyze Command = "analyze"
	Show    Command = "show"
	History Command = "history"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const defaultTimeout = 10 * time.Second

type API struct {
	Key      string
	Endpoint string
	Timeout  time.Duration
}

type Config struct {
	Command Command
	Verbose bool
	Format  string

	API       API
	Database  string
	Cache     string
	Workers   int
	AllFrames bool // Judge every frame rather than only key presses

	// analyze
	Replays []string
	Beatmap string

	// show
	Hash string

	// history, Title is a fuzzy filter
	Title string
	Limit int
}

// Parse reads args (without the program name). Flags take precedence over
// the config file, which takes precedence over defaults.
func Parse(args []string) (*Config, error) {
	app := kingpin.New("osuacc", "Re-score osu! replays against their beatmap")
	app.Version(Version)

	configPath := app.Flag("config", "Config file").Default(DefaultConfigPath()).String()
	verbose := app.Flag("verbose", "Log progress").Short('v').Bool()
	format := app.Flag("format", "Output format").Short('f').Default(FormatText).Enum(FormatText, FormatJSON, FormatYAML)
	apiKey := app.Flag("api-key", "osu! API v1 key").Envar("OSU_API_KEY").String()
	endpoint := app.Flag("endpoint", "osu! API endpoint").String()
	timeout := app.Flag("timeout", "API request timeout").Duration()
	database := app.Flag("db", "Result database").String()
	cache := app.Flag("cache", "Beatmap cache directory").String()

	analyze := app.Command(string(Analyze), "Analyze replays").Default()
	replays := analyze.Arg("replays", "Replay (.osr) files").Required().ExistingFiles()
	beatmap := analyze.Flag("beatmap", "Beatmap (.osu) file, skips the lookup").Short('b').ExistingFile()
	allFrames := analyze.Flag("all-frames", "Judge every frame, not only key presses").Short('a').Bool()
	workers := analyze.Flag("workers", "Replays analyzed in parallel").Short('w').Int()

	show := app.Command(string(Show), "Show a stored replay")
	hash := show.Arg("hash", "Replay hash").Required().String()

	history := app.Command(string(History), "List stored replays")
	title := history.Flag("title", "Filter by song title").Short('t').String()
	limit := history.Flag("limit", "Maximum replays listed").Short('n').Default("20").Int()

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}

	file, err := LoadFile(*configPath)
	if nil != err {
		return nil, err
	}

	c := &Config{
		Command: Command(command),
		Verbose: *verbose,
		Format:  *format,
		API: API{
			Key:      pick(*apiKey, file.API.Key, ""),
			Endpoint: pick(*endpoint, file.API.Endpoint, osuapi.DefaultEndpoint),
			Timeout:  defaultTimeout,
		},
		Database:  pick(*database, file.Storage.Database, DefaultDatabasePath()),
		Cache:     pick(*cache, file.Storage.Cache, DefaultCachePath()),
		Workers:   runtime.NumCPU(),
		AllFrames: *allFrames || file.Analysis.AllFrames,
		Replays:   *replays,
		Beatmap:   *beatmap,
		Hash:      *hash,
		Title:     *title,
		Limit:     *limit,
	}

	if file.API.Timeout != "" {
		if c.API.Timeout, err = time.ParseDuration(file.API.Timeout); nil != err {
			return nil, fmt.Errorf("unable to parse api timeout %q: %w", file.API.Timeout, err)
		}
	}
	if *timeout > 0 {
		c.API.Timeout = *timeout
	}

	if file.Analysis.Workers > 0 {
		c.Workers = file.Analysis.Workers
	}
	if *workers > 0 {
		c.Workers = *workers
	}

	return c, nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
