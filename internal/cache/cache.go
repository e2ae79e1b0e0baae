// Package cache keeps downloaded chart files in a local Pebble database,
// keyed by the chart hash replays reference.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/zeebo/xxh3"
)

const (
	chartPrefix = "chart|"
	sumSize     = 8
)

type Cache struct {
	db *pebble.DB
}

func Open(path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("chart cache path is empty")
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if nil != err {
		return nil, fmt.Errorf("unable to open chart cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func key(hash string) []byte {
	return []byte(chartPrefix + strings.ToLower(hash))
}

// Chart returns the cached chart file. A corrupt entry is dropped and
// reported as absent.
func (c *Cache) Chart(hash string) ([]byte, bool, error) {
	value, closer, err := c.db.Get(key(hash))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, fmt.Errorf("unable to read chart %v: %w", hash, err)
	}
	defer closer.Close()

	if len(value) < sumSize || binary.BigEndian.Uint64(value[:sumSize]) != xxh3.Hash(value[sumSize:]) {
		log.Printf("dropping corrupt cached chart %v", hash)
		if err := c.db.Delete(key(hash), pebble.Sync); nil != err {
			return nil, false, fmt.Errorf("unable to drop chart %v: %w", hash, err)
		}
		return nil, false, nil
	}

	// The value is only valid until closer is closed
	data := make([]byte, len(value)-sumSize)
	copy(data, value[sumSize:])
	return data, true, nil
}

func (c *Cache) PutChart(hash string, data []byte) error {
	value := make([]byte, sumSize+len(data))
	binary.BigEndian.PutUint64(value, xxh3.Hash(data))
	copy(value[sumSize:], data)
	if err := c.db.Set(key(hash), value, pebble.Sync); nil != err {
		return fmt.Errorf("unable to cache chart %v: %w", hash, err)
	}
	return nil
}
