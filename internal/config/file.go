package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the TOML config file. Zero values are unset.
type File struct {
	API      FileAPI      `toml:"api"`
	Storage  FileStorage  `toml:"storage"`
	Analysis FileAnalysis `toml:"analysis"`
}

type FileAPI struct {
	Key      string `toml:"key"`
	Endpoint string `toml:"endpoint"`
	Timeout  string `toml:"timeout"` // Go duration, e.g. "5s"
}

type FileStorage struct {
	Database string `toml:"database"`
	Cache    string `toml:"cache"`
}

type FileAnalysis struct {
	Workers   int  `toml:"workers"`
	AllFrames bool `toml:"all_frames"`
}

// LoadFile reads the config at path. A missing file is not an error.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	if _, err := os.Stat(path); nil != err {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("unable to stat config: %w", err)
	}
	var f File
	md, err := toml.DecodeFile(path, &f)
	if nil != err {
		return File{}, fmt.Errorf("unable to decode config %v: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("unknown config keys in %v: %v", path, undecoded)
	}
	return f, nil
}
