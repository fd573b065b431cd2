// Package store provides a local SQLite results store for offline batch runs,
// where a Postgres instance is not worth the setup.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/candidatehq/docparse/internal/entity"
)

// Store wraps an SQLite database holding batch parse results.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS results (
    content_hash        TEXT PRIMARY KEY,
    filename            TEXT NOT NULL,
    doc_type            TEXT,
    status              TEXT NOT NULL,
    confidence          REAL,
    needs_review        INTEGER NOT NULL DEFAULT 0,
    error_message       TEXT,
    extracted           TEXT,
    validation          TEXT,
    parsed_at           TEXT NOT NULL,
    processing_time_ms  INTEGER
);

CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);
`
	_, err := s.db.Exec(ddl)
	return err
}

// Result is one stored parse outcome, keyed by content hash.
type Result struct {
	ContentHash      string
	Filename         string
	DocType          string
	Status           string
	Confidence       float32
	NeedsReview      bool
	ErrorMessage     string
	Extracted        string
	Validation       string
	ParsedAt         string
	ProcessingTimeMS int64
}

// SeenHash reports whether a result already exists for the given content hash.
func (s *Store) SeenHash(hash string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM results WHERE content_hash = ?`, hash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveResult stores a parse outcome for a document. Re-parsing the same
// content replaces the previous row.
func (s *Store) SaveResult(hash, filename string, res entity.ParseResult) error {
	var extracted, validation string
	if res.Extraction != nil {
		b, err := json.Marshal(res.Extraction.Data)
		if err != nil {
			return fmt.Errorf("marshal extraction: %w", err)
		}
		extracted = string(b)
	}
	if res.Validation != nil {
		b, err := json.Marshal(res.Validation)
		if err != nil {
			return fmt.Errorf("marshal validation: %w", err)
		}
		validation = string(b)
	}

	var confidence float32
	if res.Extraction != nil {
		confidence = res.Extraction.Confidence
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO results
		 (content_hash, filename, doc_type, status, confidence, needs_review, error_message, extracted, validation, parsed_at, processing_time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hash, filename, string(res.DocumentType), string(res.Status), confidence,
		boolToInt(res.Status.NeedsHuman()), res.ErrorMessage, extracted, validation,
		time.Now().UTC().Format(time.RFC3339), res.ProcessingTimeMS,
	)
	return err
}

// GetResult returns the stored result for a content hash. Returns nil, nil
// if not found.
func (s *Store) GetResult(hash string) (*Result, error) {
	r := &Result{}
	var confidence sql.NullFloat64
	var needsReview int
	var docType, errMsg, extracted, validation sql.NullString
	var processingMS sql.NullInt64
	err := s.db.QueryRow(
		`SELECT content_hash, filename, doc_type, status, confidence, needs_review,
		        error_message, extracted, validation, parsed_at, processing_time_ms
		 FROM results WHERE content_hash = ?`, hash,
	).Scan(&r.ContentHash, &r.Filename, &docType, &r.Status, &confidence, &needsReview,
		&errMsg, &extracted, &validation, &r.ParsedAt, &processingMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.DocType = docType.String
	r.Confidence = float32(confidence.Float64)
	r.NeedsReview = needsReview != 0
	r.ErrorMessage = errMsg.String
	r.Extracted = extracted.String
	r.Validation = validation.String
	r.ProcessingTimeMS = processingMS.Int64
	return r, nil
}

// CountByStatus returns how many stored results sit in each status.
func (s *Store) CountByStatus() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM results GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListNeedsReview returns results flagged for human review, oldest first.
func (s *Store) ListNeedsReview() ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT content_hash, filename, doc_type, status, confidence, parsed_at
		 FROM results WHERE needs_review = 1 ORDER BY parsed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var docType sql.NullString
		var confidence sql.NullFloat64
		if err := rows.Scan(&r.ContentHash, &r.Filename, &docType, &r.Status, &confidence, &r.ParsedAt); err != nil {
			return nil, err
		}
		r.DocType = docType.String
		r.Confidence = float32(confidence.Float64)
		r.NeedsReview = true
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
