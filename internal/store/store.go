// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists discovery runs and their ranked evidence in a
// SQLite database with a full-text index over evidence content.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/painscout/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "painscout.db"

	defaultResearchDir = "research"
	defaultMaxResults  = 20
)

// Store manages the evidence database.
type Store struct {
	db          *sql.DB
	researchDir string
	maxResults  int
}

// Run is the metadata of one discovery run.
type Run struct {
	ID               int64     `json:"id" yaml:"id"`
	ProblemStatement string    `json:"problem_statement" yaml:"problem_statement"`
	TargetMarket     string    `json:"target_market" yaml:"target_market"`
	MarketFocus      string    `json:"market_focus" yaml:"market_focus"`
	ProblemArea      string    `json:"problem_area,omitempty" yaml:"problem_area,omitempty"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
	EvidenceCount    int       `json:"evidence_count" yaml:"evidence_count"`
}

// New opens or creates the evidence database at researchDir/index/painscout.db,
// creating the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	researchDir := cfg.ResearchDir
	if researchDir == "" {
		researchDir = defaultResearchDir
	}
	dbDir := filepath.Join(researchDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, researchDir: researchDir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			problem_statement TEXT NOT NULL,
			target_market TEXT NOT NULL,
			market_focus TEXT,
			problem_area TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS evidence (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			platform TEXT NOT NULL,
			source_url TEXT NOT NULL,
			title TEXT,
			content TEXT NOT NULL,
			author TEXT,
			engagement TEXT,
			engagement_score REAL,
			date_posted TEXT,
			relevance_score REAL NOT NULL,
			breakdown TEXT,
			cluster_name TEXT,
			cluster_size INTEGER,
			source_tag TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_run_id ON evidence(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_platform ON evidence(platform)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='evidence_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE evidence_fts USING fts5(content, content=evidence, content_rowid=rowid)`,
			`CREATE TRIGGER evidence_ai AFTER INSERT ON evidence BEGIN
				INSERT INTO evidence_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER evidence_ad AFTER DELETE ON evidence BEGIN
				INSERT INTO evidence_fts(evidence_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER evidence_au AFTER UPDATE ON evidence BEGIN
				INSERT INTO evidence_fts(evidence_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO evidence_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveRun stores a run and its evidence in one transaction and returns the
// new run ID.
func (s *Store) SaveRun(ctx context.Context, run Run, evidence []types.Evidence) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (problem_statement, target_market, market_focus, problem_area, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ProblemStatement, run.TargetMarket, run.MarketFocus, run.ProblemArea,
		createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, ev := range evidence {
		engagementJSON, _ := json.Marshal(ev.Engagement)
		breakdownJSON, _ := json.Marshal(ev.ScoringBreakdown)

		clusterName := ""
		clusterSize := 0
		if ev.Cluster != nil {
			clusterName = ev.Cluster.Name
			clusterSize = ev.Cluster.Size
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO evidence (run_id, platform, source_url, title, content, author,
				engagement, engagement_score, date_posted, relevance_score, breakdown,
				cluster_name, cluster_size, source_tag)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, string(ev.Platform), ev.SourceURL, ev.Title, ev.Content, ev.Author,
			string(engagementJSON), ev.EngagementScore, ev.DatePosted, ev.RelevanceScore,
			string(breakdownJSON), clusterName, clusterSize, ev.SourceTag,
		); err != nil {
			return 0, fmt.Errorf("inserting evidence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists all stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.problem_statement, r.target_market, r.market_focus, r.problem_area,
			r.created_at, count(e.rowid)
		FROM runs r
		LEFT JOIN evidence e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
		)
		if err := rows.Scan(&run.ID, &run.ProblemStatement, &run.TargetMarket,
			&run.MarketFocus, &run.ProblemArea, &createdAt, &run.EvidenceCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
