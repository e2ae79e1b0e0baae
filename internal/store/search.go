package store

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SearchByTitle ranks stored replays by how closely their song title matches
// query. Titles containing the query rank first, then by edit distance; titles
// further than half the query length away are dropped.
func (s *Store) SearchByTitle(ctx context.Context, query string, limit int) ([]*Record, error) {
	records, err := s.Replays(ctx, 0)
	if nil != err {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return truncate(records, limit), nil
	}
	cutoff := len([]rune(q))/2 + 1

	type ranked struct {
		record   *Record
		distance int
	}
	matches := []ranked{}
	for _, r := range records {
		title := strings.ToLower(r.Beatmap.Metadata.Title)
		if strings.Contains(title, q) {
			matches = append(matches, ranked{r, 0})
			continue
		}
		if d := levenshtein.ComputeDistance(q, title); d <= cutoff {
			matches = append(matches, ranked{r, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]*Record, len(matches))
	for i, m := range matches {
		result[i] = m.record
	}
	return truncate(result, limit), nil
}

func truncate(records []*Record, limit int) []*Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
