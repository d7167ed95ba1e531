package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded invocation.
type Run struct {
	RunID            int64
	Place            string
	QueryType        string
	NetworkType      string
	KeySize          int
	Status           string
	ErrorType        string
	ErrorMessage     string
	WayCount         int
	NamedWayCount    int
	WordCount        int
	DetectedLanguage string
	ImagePath        string
	PaletteJSON      string
	TopKeywords      string
	DurationMS       int64
	CreatedAt        time.Time
}

// InsertRun records a finished run and returns its ID.
func (db *DB) InsertRun(r *Run) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (
			place, query_type, network_type, key_size, status,
			error_type, error_message,
			way_count, named_way_count, word_count, detected_language,
			image_path, palette_json, top_keywords, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Place, r.QueryType, r.NetworkType, r.KeySize, r.Status,
		nullable(r.ErrorType), nullable(r.ErrorMessage),
		r.WayCount, r.NamedWayCount, r.WordCount, nullable(r.DetectedLanguage),
		nullable(r.ImagePath), nullable(r.PaletteJSON), nullable(r.TopKeywords),
		r.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, place, query_type, network_type, key_size, status,
		       COALESCE(error_type, ''), COALESCE(error_message, ''),
		       way_count, named_way_count, word_count,
		       COALESCE(detected_language, ''),
		       COALESCE(image_path, ''), COALESCE(palette_json, ''),
		       COALESCE(top_keywords, ''), duration_ms, created_at
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := scanRun(rows, &r); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunByID fetches a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, place, query_type, network_type, key_size, status,
		       COALESCE(error_type, ''), COALESCE(error_message, ''),
		       way_count, named_way_count, word_count,
		       COALESCE(detected_language, ''),
		       COALESCE(image_path, ''), COALESCE(palette_json, ''),
		       COALESCE(top_keywords, ''), duration_ms, created_at
		FROM runs
		WHERE run_id = ?`, runID)

	var r Run
	if err := scanRun(row, &r); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %d not found", runID)
		}
		return nil, err
	}
	return &r, nil
}

// LatestRunID returns the most recent run's ID.
func (db *DB) LatestRunID() (int64, error) {
	var id int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs recorded yet")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner, r *Run) error {
	var created string
	err := s.Scan(
		&r.RunID, &r.Place, &r.QueryType, &r.NetworkType, &r.KeySize, &r.Status,
		&r.ErrorType, &r.ErrorMessage,
		&r.WayCount, &r.NamedWayCount, &r.WordCount,
		&r.DetectedLanguage,
		&r.ImagePath, &r.PaletteJSON, &r.TopKeywords, &r.DurationMS, &created,
	)
	if err != nil {
		return err
	}

	// SQLite stores CURRENT_TIMESTAMP as "2006-01-02 15:04:05".
	if t, perr := time.Parse("2006-01-02 15:04:05", created); perr == nil {
		r.CreatedAt = t
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
