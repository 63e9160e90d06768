// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/painscout/pkg/types"
)

// QueryOptions holds parameters for evidence queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over evidence content.
	Query string

	// Platform filters by source platform.
	Platform types.Platform

	// RunID filters by discovery run. Zero means all runs.
	RunID int64

	// MinScore drops evidence below a relevance threshold.
	MinScore float64

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Platform == "" && q.RunID == 0 && q.MinScore == 0
}

// QueryResult is a stored evidence record with its run ID.
type QueryResult struct {
	types.Evidence `yaml:",inline"`
	RunID          int64 `json:"run_id" yaml:"run_id"`
}

// Retrieve queries stored evidence with optional full-text search and
// structured filters. Full-text queries rank by FTS relevance; otherwise
// results sort by relevance score descending.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT e.run_id, e.platform, e.source_url, e.title, e.content, e.author,
				e.engagement, e.engagement_score, e.date_posted, e.relevance_score,
				e.breakdown, e.cluster_name, e.cluster_size, e.source_tag
			FROM evidence_fts
			JOIN evidence e ON e.rowid = evidence_fts.rowid
			WHERE evidence_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT e.run_id, e.platform, e.source_url, e.title, e.content, e.author,
				e.engagement, e.engagement_score, e.date_posted, e.relevance_score,
				e.breakdown, e.cluster_name, e.cluster_size, e.source_tag
			FROM evidence e
			WHERE 1=1`)
	}

	if opts.Platform != "" {
		qb.WriteString(` AND e.platform = ?`)
		args = append(args, string(opts.Platform))
	}
	if opts.RunID != 0 {
		qb.WriteString(` AND e.run_id = ?`)
		args = append(args, opts.RunID)
	}
	if opts.MinScore > 0 {
		qb.WriteString(` AND e.relevance_score >= ?`)
		args = append(args, opts.MinScore)
	}

	if useFTS {
		qb.WriteString(` ORDER BY evidence_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY e.relevance_score DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying evidence: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr             QueryResult
			platform       string
			title          sql.NullString
			author         sql.NullString
			engagementJSON sql.NullString
			datePosted     sql.NullString
			breakdownJSON  sql.NullString
			clusterName    sql.NullString
			clusterSize    sql.NullInt64
			sourceTag      sql.NullString
		)

		if err := rows.Scan(&qr.RunID, &platform, &qr.SourceURL, &title, &qr.Content,
			&author, &engagementJSON, &qr.EngagementScore, &datePosted,
			&qr.RelevanceScore, &breakdownJSON, &clusterName, &clusterSize,
			&sourceTag); err != nil {
			return nil, fmt.Errorf("scanning evidence: %w", err)
		}

		qr.Platform = types.Platform(platform)
		qr.Title = title.String
		qr.Author = author.String
		qr.DatePosted = datePosted.String
		qr.SourceTag = sourceTag.String
		if engagementJSON.Valid && engagementJSON.String != "null" {
			json.Unmarshal([]byte(engagementJSON.String), &qr.Engagement)
		}
		if breakdownJSON.Valid && breakdownJSON.String != "null" {
			json.Unmarshal([]byte(breakdownJSON.String), &qr.ScoringBreakdown)
		}
		if clusterName.Valid && clusterName.String != "" {
			qr.Cluster = &types.ClusterInfo{
				Name:         clusterName.String,
				Size:         int(clusterSize.Int64),
				RelatedCount: int(clusterSize.Int64) - 1,
			}
		}

		results = append(results, qr)
	}
	return results, rows.Err()
}

// ExportYAML writes the evidence matching opts to researchDir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the evidence matching opts to researchDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) writeExport(name string, data []byte) error {
	path := filepath.Join(s.researchDir, indexDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
