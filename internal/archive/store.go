// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps point-in-time snapshots of the dashboard in a local
// SQLite database so that statistics and article sets can be compared
// offline. A snapshot is immutable once saved.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

const dbFile = "snapshots.db"

// ErrSnapshotNotFound is returned by Get for an unknown or ambiguous ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// now is overridden in tests.
var now = time.Now

// Snapshot is the dashboard state captured at one instant.
type Snapshot struct {
	ID         string              `json:"id" yaml:"id"`
	TakenAt    time.Time           `json:"takenAt" yaml:"taken_at"`
	BaseURL    string              `json:"baseUrl" yaml:"base_url"`
	Note       string              `json:"note,omitempty" yaml:"note,omitempty"`
	Statistics types.Statistics    `json:"statistics" yaml:"statistics"`
	Articles   []types.ArticleData `json:"articles" yaml:"articles"`
}

// Summary is a snapshot without its articles, as returned by List.
type Summary struct {
	ID           string    `json:"id" yaml:"id"`
	TakenAt      time.Time `json:"takenAt" yaml:"taken_at"`
	BaseURL      string    `json:"baseUrl" yaml:"base_url"`
	Note         string    `json:"note,omitempty" yaml:"note,omitempty"`
	TotalCount   int64     `json:"totalCount" yaml:"total_count"`
	AnomalyCount int64     `json:"anomalyCount" yaml:"anomaly_count"`
	ArticleCount int       `json:"articleCount" yaml:"article_count"`
}

// Store manages the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at cfg.Dir/snapshots.db and creates the
// schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultArchiveDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			taken_at TEXT NOT NULL,
			base_url TEXT NOT NULL,
			note TEXT,
			total_count INTEGER NOT NULL,
			normal_count INTEGER NOT NULL,
			good_anomaly_count INTEGER NOT NULL,
			bad_anomaly_count INTEGER NOT NULL,
			avg_read_count REAL,
			avg_interaction_count REAL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_articles (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			data_id TEXT NOT NULL,
			status TEXT,
			data TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_articles_status ON snapshot_articles(snapshot_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores snap and returns its summary. An empty ID is replaced with
// a fresh UUID and a zero TakenAt with the current time.
func (s *Store) Save(ctx context.Context, snap Snapshot) (Summary, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = now()
	}
	if err := snap.Statistics.Validate(); err != nil {
		return Summary{}, fmt.Errorf("snapshot statistics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	st := snap.Statistics
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, taken_at, base_url, note, total_count, normal_count,
			good_anomaly_count, bad_anomaly_count, avg_read_count, avg_interaction_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.TakenAt.UTC().Format(time.RFC3339Nano), snap.BaseURL, snap.Note,
		st.TotalCount, st.NormalCount, st.GoodAnomalyCount, st.BadAnomalyCount,
		st.AvgReadCount, st.AvgInteractionCount,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_articles (snapshot_id, position, data_id, status, data)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Summary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range snap.Articles {
		data, err := json.Marshal(a)
		if err != nil {
			return Summary{}, fmt.Errorf("encoding article %s: %w", a.DataID, err)
		}
		if _, err := stmt.ExecContext(ctx, snap.ID, i, a.DataID, string(a.AnomalyStatus), string(data)); err != nil {
			return Summary{}, fmt.Errorf("inserting article %s: %w", a.DataID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return summarize(snap), nil
}

// List returns snapshot summaries, newest first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT s.id, s.taken_at, s.base_url, COALESCE(s.note, ''), s.total_count,
			s.good_anomaly_count + s.bad_anomaly_count,
			(SELECT count(*) FROM snapshot_articles a WHERE a.snapshot_id = s.id)
		FROM snapshots s
		ORDER BY s.taken_at DESC, s.id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			takenAt string
		)
		if err := rows.Scan(&sum.ID, &takenAt, &sum.BaseURL, &sum.Note, &sum.TotalCount,
			&sum.AnomalyCount, &sum.ArticleCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if sum.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
			return nil, fmt.Errorf("snapshot %s: parsing taken_at: %w", sum.ID, err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get loads a snapshot with its articles in their saved order. id may be
// a unique prefix of the full ID.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrSnapshotNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, taken_at, base_url, COALESCE(note, ''), total_count, normal_count,
			good_anomaly_count, bad_anomaly_count, avg_read_count, avg_interaction_count
		 FROM snapshots WHERE id = ? OR id LIKE ? ESCAPE '\' LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	var found []Snapshot
	for rows.Next() {
		var (
			snap    Snapshot
			takenAt string
		)
		st := &snap.Statistics
		if err := rows.Scan(&snap.ID, &takenAt, &snap.BaseURL, &snap.Note,
			&st.TotalCount, &st.NormalCount, &st.GoodAnomalyCount, &st.BadAnomalyCount,
			&st.AvgReadCount, &st.AvgInteractionCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if snap.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("snapshot %s: parsing taken_at: %w", snap.ID, err)
		}
		found = append(found, snap)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var snap Snapshot
	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	case len(found) == 1:
		snap = found[0]
	case found[0].ID == id:
		snap = found[0]
	case found[1].ID == id:
		snap = found[1]
	default:
		return nil, fmt.Errorf("%w: %s is ambiguous", ErrSnapshotNotFound, id)
	}

	if snap.Articles, err = s.articles(ctx, snap.ID); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete removes a snapshot and its articles.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}

func (s *Store) articles(ctx context.Context, id string) ([]types.ArticleData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM snapshot_articles WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	articles := []types.ArticleData{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		var a types.ArticleData
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("decoding article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func summarize(snap Snapshot) Summary {
	return Summary{
		ID:           snap.ID,
		TakenAt:      snap.TakenAt,
		BaseURL:      snap.BaseURL,
		Note:         snap.Note,
		TotalCount:   snap.Statistics.TotalCount,
		AnomalyCount: snap.Statistics.AnomalyCount(),
		ArticleCount: len(snap.Articles),
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
