// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	h := Header("chapter_01.dtl")
	require.Len(t, h, 5)
	assert.Len(t, h[0], 80)
	assert.Equal(t, strings.Repeat("=", 80), h[0])
	assert.Equal(t, "DIALOGUE TRANSCRIPT: chapter_01", h[1])
	assert.Equal(t, "Source: chapter_01.dtl", h[2])
	assert.Equal(t, h[0], h[3])
	assert.Empty(t, h[4])
}

func TestRenderKeepsSourceOrder(t *testing.T) {
	out := Render("x.dtl", []string{"label start", "", "Narration.", "[end]", "jump start"})
	body := strings.SplitN(out, "\n", 6)[5]
	assert.Equal(t, "\n[LABEL: start]\n\n\nNarration.\n[JUMP TO: start]", body)
}

func TestRenderEmptyTimeline(t *testing.T) {
	out := Render("empty.dtl", nil)
	assert.Equal(t, strings.Join(Header("empty.dtl"), "\n"), out)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("content", "Chapter 2", "scene.txt"),
		OutputPath(filepath.Join("content", "Chapter 2", "scene.dtl")))
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"plain", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"byte order mark", "\xef\xbb\xbfjoin Alice\n", []string{"join Alice"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"empty file", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "t.dtl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ReadLines(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLinesMissing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "gone.dtl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
