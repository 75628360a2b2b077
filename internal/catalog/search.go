// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for dialogue searches.
type QueryOptions struct {
	// Query matches dialogue text by case-insensitive substring.
	Query string

	// Character filters by speaker name (exact match, case-insensitive).
	Character string

	// Timeline filters by timeline name (source file stem).
	Timeline string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Character == "" && q.Timeline == ""
}

// Match is one dialogue line found by Search.
type Match struct {
	Timeline   string `json:"timeline" yaml:"timeline"`
	SourcePath string `json:"source_path" yaml:"source_path"`
	Ordinal    int    `json:"ordinal" yaml:"ordinal"`
	Character  string `json:"character" yaml:"character"`
	Text       string `json:"text" yaml:"text"`
}

// Search returns dialogue lines matching opts, ordered by timeline name and
// source line.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Match, error) {
	if opts.IsEmpty() {
		return nil, fmt.Errorf("query or filter required")
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	return s.query(ctx, opts, maxResults)
}

func (s *Store) query(ctx context.Context, opts QueryOptions, limit int) ([]Match, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT t.name, d.source_path, d.ordinal, d.speaker, d.text
		FROM dialogue d
		JOIN timelines t ON t.source_path = d.source_path
		WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND d.text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.Character != "" {
		qb.WriteString(` AND d.speaker = ? COLLATE NOCASE`)
		args = append(args, opts.Character)
	}
	if opts.Timeline != "" {
		qb.WriteString(` AND t.name = ?`)
		args = append(args, opts.Timeline)
	}

	qb.WriteString(` ORDER BY t.name, d.source_path, d.ordinal LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Timeline, &m.SourcePath, &m.Ordinal, &m.Character, &m.Text); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
