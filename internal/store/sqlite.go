// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store persists scan tables to a SQLite database so that several
// runs over a corpus can be compared.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"charter-scan/internal/detector"
)

// Run describes one persisted scan
type Run struct {
	ID        string
	StartedAt time.Time
	Documents int
	Hits      int
}

// SQLiteStore writes hit and summary tables keyed by run id
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite database with WAL mode enabled
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// a single writer keeps SQLITE_BUSY out of the picture
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	documents INTEGER NOT NULL,
	hits INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS hits (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	file TEXT NOT NULL,
	page INTEGER NOT NULL,
	category TEXT NOT NULL,
	keyword TEXT NOT NULL,
	snippet TEXT NOT NULL,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	file TEXT NOT NULL,
	num_pages INTEGER NOT NULL,
	word_count INTEGER NOT NULL,
	num_listed_functions_est INTEGER NOT NULL,
	members_count_est INTEGER,
	expertise_tags TEXT NOT NULL,
	ceo_participation INTEGER NOT NULL,
	meeting_frequency TEXT NOT NULL,
	reporting_line TEXT NOT NULL,
	last_review_date TEXT NOT NULL,
	authorities TEXT NOT NULL,
	self_evaluation INTEGER NOT NULL,
	control_count INTEGER NOT NULL,
	collab_count INTEGER NOT NULL,
	orientation TEXT NOT NULL,
	top_functions TEXT NOT NULL,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_hits_keyword ON hits(keyword);
CREATE INDEX IF NOT EXISTS idx_summaries_orientation ON summaries(orientation);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveRun writes both tables of a run in a single transaction. Saving the
// same run id again replaces its rows.
func (s *SQLiteStore) SaveRun(ctx context.Context, runID string, startedAt time.Time, hits []detector.Hit, summaries []detector.DocumentSummary) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"hits", "summaries"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, documents, hits) VALUES (?, ?, ?, ?)`,
		runID, startedAt.UTC().Format(time.RFC3339Nano), len(summaries), len(hits),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	hitStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO hits (run_id, seq, file, page, category, keyword, snippet) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer hitStmt.Close()

	for i, h := range hits {
		if _, err = hitStmt.ExecContext(ctx, runID, i, h.File, h.Page, h.Category, h.Keyword, h.Snippet); err != nil {
			return fmt.Errorf("failed to insert hit %d: %w", i, err)
		}
	}

	sumStmt, err := tx.PrepareContext(ctx, `INSERT INTO summaries (
		run_id, seq, file, num_pages, word_count, num_listed_functions_est, members_count_est,
		expertise_tags, ceo_participation, meeting_frequency, reporting_line, last_review_date,
		authorities, self_evaluation, control_count, collab_count, orientation, top_functions
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sumStmt.Close()

	for i, d := range summaries {
		var members sql.NullInt64
		if d.MembersCount != nil {
			members = sql.NullInt64{Int64: int64(*d.MembersCount), Valid: true}
		}
		if _, err = sumStmt.ExecContext(ctx, runID, i, d.File, d.NumPages, d.WordCount, d.ListedFunctions, members,
			strings.Join(d.ExpertiseTags, "|"), d.CEOParticipation, d.MeetingFrequency, d.ReportingLine, d.LastReviewDate,
			strings.Join(d.Authorities, "|"), d.SelfEvaluation, d.ControlCount, d.CollabCount, d.Orientation, d.TopFunctions,
		); err != nil {
			return fmt.Errorf("failed to insert summary %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Runs lists persisted runs, oldest first
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, started_at, documents, hits FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Documents, &r.Hits); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s has malformed start time: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Hits returns the hit table of a run in its original order
func (s *SQLiteStore) Hits(ctx context.Context, runID string) ([]detector.Hit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, page, category, keyword, snippet FROM hits WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []detector.Hit
	for rows.Next() {
		var h detector.Hit
		if err := rows.Scan(&h.File, &h.Page, &h.Category, &h.Keyword, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Summaries returns the summary table of a run in its original order
func (s *SQLiteStore) Summaries(ctx context.Context, runID string) ([]detector.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		file, num_pages, word_count, num_listed_functions_est, members_count_est,
		expertise_tags, ceo_participation, meeting_frequency, reporting_line, last_review_date,
		authorities, self_evaluation, control_count, collab_count, orientation, top_functions
		FROM summaries WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []detector.DocumentSummary
	for rows.Next() {
		var d detector.DocumentSummary
		var members sql.NullInt64
		var expertise, authorities string
		if err := rows.Scan(&d.File, &d.NumPages, &d.WordCount, &d.ListedFunctions, &members,
			&expertise, &d.CEOParticipation, &d.MeetingFrequency, &d.ReportingLine, &d.LastReviewDate,
			&authorities, &d.SelfEvaluation, &d.ControlCount, &d.CollabCount, &d.Orientation, &d.TopFunctions,
		); err != nil {
			return nil, err
		}
		if members.Valid {
			n := int(members.Int64)
			d.MembersCount = &n
		}
		d.ExpertiseTags = splitList(expertise)
		d.Authorities = splitList(authorities)
		out = append(out, d)
	}
	return out, rows.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}
