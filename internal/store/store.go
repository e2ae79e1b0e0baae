// Package store persists analysed replays in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/osuacc/internal/game"
	"git.lost.host/meutraa/osuacc/internal/score"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("replay not found")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Beatmap struct {
	Hash       string
	Metadata   game.Metadata
	Difficulty game.Difficulty
}

type Judgement struct {
	Counts   game.Counts
	Accuracy decimal.Decimal
}

// Record is one analysed replay. Hit errors and statistics are those of the
// raw (cursor on target) analysis.
type Record struct {
	ReplayHash string
	Player     string
	PlayedAt   time.Time
	AnalyzedAt time.Time
	Beatmap    Beatmap

	Native Judgement // As awarded by the game
	Raw    Judgement
	True   Judgement

	HitErrors  []decimal.Decimal
	Statistics score.Statistics
	Stdev      decimal.Decimal
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); nil != err {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, err
	}
	// Analyses run in parallel, writes go through a single connection
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(); nil != err {
		_ = db.Close()
		return nil, fmt.Errorf("unable to migrate %v: %w", path, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`create table if not exists beatmaps (
			hash text not null primary key,
			beatmap_id text not null,
			title text not null,
			artist text not null,
			creator text not null,
			version text not null,
			circle_size text not null,
			overall_difficulty text not null
		);`,
		`create table if not exists replays (
			replay_hash text not null primary key,
			beatmap_hash text not null references beatmaps(hash),
			player text not null,
			played_at text not null,
			analyzed_at text not null,
			native_300 integer not null, native_100 integer not null, native_50 integer not null, native_miss integer not null,
			native_accuracy text not null,
			raw_300 integer not null, raw_100 integer not null, raw_50 integer not null, raw_miss integer not null,
			raw_accuracy text not null,
			true_300 integer not null, true_100 integer not null, true_50 integer not null, true_miss integer not null,
			true_accuracy text not null,
			hit_errors blob not null,
			late_count integer not null, late_min text not null, late_max text not null, late_mean text not null,
			early_count integer not null, early_min text not null, early_max text not null, early_mean text not null,
			abs_count integer not null, abs_min text not null, abs_max text not null, abs_mean text not null,
			stdev text not null
		);`,
		`create index if not exists idx_replays_played_at on replays(played_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); nil != err {
			return err
		}
	}
	return nil
}

// SaveReplay stores r and its beatmap. A replay that is already stored is
// left untouched and false is returned.
func (s *Store) SaveReplay(ctx context.Context, r *Record) (saved bool, err error) {
	hitErrors, err := json.Marshal(r.HitErrors)
	if nil != err {
		return false, fmt.Errorf("unable to marshal hit errors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if nil != err {
		return false, err
	}
	defer func() {
		if nil != err {
			_ = tx.Rollback()
		}
	}()

	bm := r.Beatmap
	if _, err = tx.ExecContext(ctx,
		`insert into beatmaps (hash, beatmap_id, title, artist, creator, version, circle_size, overall_difficulty)
		 values (?, ?, ?, ?, ?, ?, ?, ?)
		 on conflict(hash) do nothing`,
		bm.Hash, bm.Metadata.BeatmapID, bm.Metadata.Title, bm.Metadata.Artist, bm.Metadata.Creator,
		bm.Metadata.Version, bm.Difficulty.CircleSize, bm.Difficulty.OverallDifficulty,
	); nil != err {
		return false, err
	}

	st := r.Statistics
	res, err := tx.ExecContext(ctx,
		`insert into replays values (?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?)
		 on conflict(replay_hash) do nothing`,
		r.ReplayHash, bm.Hash, r.Player, r.PlayedAt.Format(time.RFC3339Nano), r.AnalyzedAt.Format(time.RFC3339Nano),
		r.Native.Counts.Count300, r.Native.Counts.Count100, r.Native.Counts.Count50, r.Native.Counts.CountMiss, r.Native.Accuracy,
		r.Raw.Counts.Count300, r.Raw.Counts.Count100, r.Raw.Counts.Count50, r.Raw.Counts.CountMiss, r.Raw.Accuracy,
		r.True.Counts.Count300, r.True.Counts.Count100, r.True.Counts.Count50, r.True.Counts.CountMiss, r.True.Accuracy,
		hitErrors,
		st.Late.Count, st.Late.Min, st.Late.Max, st.Late.Mean,
		st.Early.Count, st.Early.Min, st.Early.Max, st.Early.Mean,
		st.Abs.Count, st.Abs.Min, st.Abs.Max, st.Abs.Mean,
		r.Stdev,
	)
	if nil != err {
		return false, err
	}
	n, err := res.RowsAffected()
	if nil != err {
		return false, err
	}
	if err = tx.Commit(); nil != err {
		return false, err
	}
	return n > 0, nil
}

const selectRecord = `select r.replay_hash, r.player, r.played_at, r.analyzed_at,
	b.hash, b.beatmap_id, b.title, b.artist, b.creator, b.version, b.circle_size, b.overall_difficulty,
	r.native_300, r.native_100, r.native_50, r.native_miss, r.native_accuracy,
	r.raw_300, r.raw_100, r.raw_50, r.raw_miss, r.raw_accuracy,
	r.true_300, r.true_100, r.true_50, r.true_miss, r.true_accuracy,
	r.hit_errors,
	r.late_count, r.late_min, r.late_max, r.late_mean,
	r.early_count, r.early_min, r.early_max, r.early_mean,
	r.abs_count, r.abs_min, r.abs_max, r.abs_mean,
	r.stdev
	from replays r join beatmaps b on b.hash = r.beatmap_hash`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*Record, error) {
	var r Record
	var playedAt, analyzedAt string
	var hitErrors []byte
	bm := &r.Beatmap
	st := &r.Statistics
	if err := row.Scan(
		&r.ReplayHash, &r.Player, &playedAt, &analyzedAt,
		&bm.Hash, &bm.Metadata.BeatmapID, &bm.Metadata.Title, &bm.Metadata.Artist, &bm.Metadata.Creator,
		&bm.Metadata.Version, &bm.Difficulty.CircleSize, &bm.Difficulty.OverallDifficulty,
		&r.Native.Counts.Count300, &r.Native.Counts.Count100, &r.Native.Counts.Count50, &r.Native.Counts.CountMiss, &r.Native.Accuracy,
		&r.Raw.Counts.Count300, &r.Raw.Counts.Count100, &r.Raw.Counts.Count50, &r.Raw.Counts.CountMiss, &r.Raw.Accuracy,
		&r.True.Counts.Count300, &r.True.Counts.Count100, &r.True.Counts.Count50, &r.True.Counts.CountMiss, &r.True.Accuracy,
		&hitErrors,
		&st.Late.Count, &st.Late.Min, &st.Late.Max, &st.Late.Mean,
		&st.Early.Count, &st.Early.Min, &st.Early.Max, &st.Early.Mean,
		&st.Abs.Count, &st.Abs.Min, &st.Abs.Max, &st.Abs.Mean,
		&r.Stdev,
	); nil != err {
		return nil, err
	}

	var err error
	if r.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt); nil != err {
		return nil, err
	}
	if r.AnalyzedAt, err = time.Parse(time.RFC3339Nano, analyzedAt); nil != err {
		return nil, err
	}
	if err := json.Unmarshal(hitErrors, &r.HitErrors); nil != err {
		return nil, fmt.Errorf("unable to unmarshal hit errors of %v: %w", r.ReplayHash, err)
	}
	return &r, nil
}

func (s *Store) Replay(ctx context.Context, hash string) (*Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` where r.replay_hash = ?`, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, hash)
	}
	if nil != err {
		return nil, fmt.Errorf("unable to load replay %v: %w", hash, err)
	}
	return r, nil
}

// Replays returns the most recently played replays first, all of them when
// limit is not positive.
func (s *Store) Replays(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRecord+` order by r.played_at desc limit ?`, limit)
	if nil != err {
		return nil, fmt.Errorf("unable to load replays: %w", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if nil != err {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); nil != err {
		return nil, err
	}
	return records, nil
}
