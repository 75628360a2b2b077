// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/timeline-transcript/pkg/types"
)

// Timelines returns every recorded timeline with its dialogue lines, ordered
// by name.
func (s *Store) Timelines(ctx context.Context) ([]types.Timeline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, name, output_path, lines_read, fragments, converted_at
		 FROM timelines ORDER BY name, source_path`)
	if err != nil {
		return nil, fmt.Errorf("querying timelines: %w", err)
	}

	var (
		timelines []types.Timeline
		index     = make(map[string]int)
	)
	for rows.Next() {
		var (
			tl          types.Timeline
			convertedAt string
		)
		if err := rows.Scan(&tl.SourcePath, &tl.Name, &tl.OutputPath,
			&tl.LinesRead, &tl.Fragments, &convertedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning timeline: %w", err)
		}
		tl.ConvertedAt, _ = time.Parse(time.RFC3339Nano, convertedAt)
		tl.Status = types.ConversionDone
		index[tl.SourcePath] = len(timelines)
		timelines = append(timelines, tl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := s.db.QueryContext(ctx,
		`SELECT source_path, ordinal, speaker, text FROM dialogue ORDER BY source_path, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("querying dialogue: %w", err)
	}
	defer lines.Close()

	for lines.Next() {
		var (
			source string
			d      types.DialogueLine
		)
		if err := lines.Scan(&source, &d.Ordinal, &d.Character, &d.Text); err != nil {
			return nil, fmt.Errorf("scanning dialogue: %w", err)
		}
		if i, ok := index[source]; ok {
			timelines[i].Dialogue = append(timelines[i].Dialogue, d)
		}
	}
	return timelines, lines.Err()
}

// ExportYAML writes the whole catalog to path, or to Dir/export.yaml when
// path is empty. It returns the path written.
func (s *Store) ExportYAML(ctx context.Context, path string) (string, error) {
	timelines, err := s.Timelines(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(timelines)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(path, "export.yaml", data)
}

// ExportJSON writes the whole catalog to path, or to Dir/export.json when
// path is empty. It returns the path written.
func (s *Store) ExportJSON(ctx context.Context, path string) (string, error) {
	timelines, err := s.Timelines(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(timelines, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(path, "export.json", data)
}

func (s *Store) writeExport(path, defaultName string, data []byte) (string, error) {
	if path == "" {
		path = filepath.Join(s.dir, defaultName)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
