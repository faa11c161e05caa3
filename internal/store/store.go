// Package store holds the run-scoped translation memory. The database
// lives in process memory only: identical prose segments are translated
// once per run (articles share boilerplate like headers and closing
// notes), and a run log backs the summary printed at exit. Nothing is
// persisted between runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates the in-memory database. A single connection is forced so
// every statement sees the same memory database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS segment_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		service TEXT,
		usage_count INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, target_lang)
	);

	CREATE TABLE IF NOT EXISTS run_log (
		id TEXT PRIMARY KEY,
		article_id TEXT NOT NULL,
		action TEXT NOT NULL,
		title TEXT NOT NULL,
		translated_title TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_segment_lookup ON segment_memory(source_text, target_lang);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetSegment returns the cached translation of a prose segment, if this
// run has already translated it.
func (s *Store) GetSegment(ctx context.Context, sourceText, targetLang string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT translated_text FROM segment_memory WHERE source_text = ? AND target_lang = ?`,
		normalizeKey(sourceText), targetLang).Scan(&translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE segment_memory SET usage_count = usage_count + 1 WHERE source_text = ? AND target_lang = ?`,
		normalizeKey(sourceText), targetLang)
	return translated, true, err
}

// SaveSegment records a freshly translated prose segment.
func (s *Store) SaveSegment(ctx context.Context, sourceText, targetLang, translatedText, service string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO segment_memory (id, source_text, target_lang, translated_text, service, usage_count, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?)`,
		uuid.New().String(), normalizeKey(sourceText), targetLang, translatedText, service, time.Now())
	return err
}

// LogEntry is one published translation within this run.
type LogEntry struct {
	ArticleID       string
	Action          string
	Title           string
	TranslatedTitle string
}

// LogPublication appends to the run log. action is "NEW" or "UPDATED".
func (s *Store) LogPublication(ctx context.Context, articleID, action, title, translatedTitle string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_log (id, article_id, action, title, translated_title) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), articleID, action, title, translatedTitle)
	return err
}

// RunLog returns the publications of this run in insertion order.
func (s *Store) RunLog(ctx context.Context) ([]LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT article_id, action, title, translated_title FROM run_log ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ArticleID, &e.Action, &e.Title, &e.TranslatedTitle); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MemoryStats summarises segment memory effectiveness for this run.
type MemoryStats struct {
	Segments int
	Hits     int
}

func (s *Store) Stats(ctx context.Context) (*MemoryStats, error) {
	stats := &MemoryStats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(usage_count - 1), 0) FROM segment_memory`).
		Scan(&stats.Segments, &stats.Hits)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeKey applies Unicode NFC so byte-different but canonically equal
// segments share one cache entry. Whitespace is kept: it is significant to
// markdown structure.
func normalizeKey(text string) string {
	return norm.NFC.String(text)
}
