// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/timeline-transcript/internal/convert"
	"github.com/pdiddy/timeline-transcript/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runShell drives a shell with the given input and returns everything it
// printed.
func runShell(t *testing.T, input string, cfg types.TranscriptConfig, run func(*shell)) string {
	t.Helper()
	var out bytes.Buffer
	sh := newShell(strings.NewReader(input), &out, convert.New(convert.Options{}), cfg)
	run(sh)
	return out.String()
}

func TestShellMenu(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "intro.dtl", "Alice: Hi.\n")
	chapter := filepath.Join(dir, "Chapter 2")
	require.NoError(t, os.Mkdir(chapter, 0o755))
	writeFile(t, chapter, "one.dtl", "jump two")
	writeFile(t, chapter, "two.dtl", "label two")

	tests := []struct {
		name       string
		input      string
		chapterDir string
		want       []string
		wantFiles  []string
		noPause    bool
	}{
		{
			name:      "convert a file with a quoted path",
			input:     "1\n\"" + file + "\"\n\n",
			want:      []string{"reading: intro.dtl", "converted: intro.dtl", "Press Enter to exit..."},
			wantFiles: []string{filepath.Join(dir, "intro.txt")},
		},
		{
			name:      "convert a folder",
			input:     "2\n" + chapter + "\n\n",
			want:      []string{"Found 2 timeline file(s)", "Converted 2/2 files successfully!"},
			wantFiles: []string{filepath.Join(chapter, "one.txt"), filepath.Join(chapter, "two.txt")},
		},
		{
			name:       "convert the chapter folder",
			input:      "3\n\n",
			chapterDir: chapter,
			want:       []string{"Convert all chapter files (" + chapter + ")", "Converted 2/2 files successfully!"},
		},
		{
			name:       "missing chapter folder",
			input:      "3\n\n",
			chapterDir: filepath.Join(dir, "Chapter 9"),
			want:       []string{"error: chapter folder not found"},
		},
		{
			name:    "exit",
			input:   "4\n",
			want:    []string{"Goodbye!"},
			noPause: true,
		},
		{
			name:  "invalid choice",
			input: "7\n\n",
			want:  []string{"Invalid choice!"},
		},
		{
			name:  "folder without timelines",
			input: "2\n" + t.TempDir() + "\n\n",
			want:  []string{"error: no .dtl files found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.TranscriptConfig{ChapterDir: tt.chapterDir, PauseOnExit: true}
			out := runShell(t, tt.input, cfg, func(sh *shell) { sh.runMenu(context.Background()) })

			assert.Contains(t, out, "1. Convert a single DTL file")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, f := range tt.wantFiles {
				assert.FileExists(t, f)
			}
			if tt.noPause {
				assert.NotContains(t, out, "Press Enter to exit...")
			}
		})
	}
}

func TestShellRunPath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "scene.dtl", "[background arg=\"bg/hall.jpg\"]\n")
	notes := writeFile(t, dir, "notes.txt", "x")

	t.Run("file", func(t *testing.T) {
		out := runShell(t, "", types.TranscriptConfig{}, func(sh *shell) { sh.runPath(context.Background(), file) })
		assert.Contains(t, out, "converted: scene.dtl")
		data, err := os.ReadFile(filepath.Join(dir, "scene.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "[SCENE: HALL]")
	})

	t.Run("folder", func(t *testing.T) {
		out := runShell(t, "", types.TranscriptConfig{}, func(sh *shell) { sh.runPath(context.Background(), dir) })
		assert.Contains(t, out, "Converted 1/1 files successfully!")
	})

	t.Run("wrong extension", func(t *testing.T) {
		out := runShell(t, "", types.TranscriptConfig{}, func(sh *shell) { sh.runPath(context.Background(), notes) })
		assert.Contains(t, out, "error: invalid file or folder: "+notes)
	})

	t.Run("pause waits for enter", func(t *testing.T) {
		out := runShell(t, "\n", types.TranscriptConfig{PauseOnExit: true}, func(sh *shell) {
			sh.runPath(context.Background(), filepath.Join(dir, "missing"))
		})
		assert.True(t, strings.HasSuffix(out, "Press Enter to exit...\n"))
	})
}

func TestShellBanner(t *testing.T) {
	out := runShell(t, "", types.TranscriptConfig{}, func(sh *shell) { sh.banner() })
	assert.Contains(t, out, "DIALOGIC DTL TO TXT CONVERTER")
	assert.Contains(t, out, strings.Repeat("=", 80))
}
