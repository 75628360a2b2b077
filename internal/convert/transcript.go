// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/timeline-transcript/internal/transcode"
	"github.com/pdiddy/timeline-transcript/pkg/types"
)

const (
	// SourceExt is the extension of timeline files accepted for conversion.
	SourceExt = ".dtl"
	// OutputExt replaces SourceExt on the written transcript.
	OutputExt = ".txt"

	ruleWidth = 80
)

// Header returns the fixed block that opens every transcript.
func Header(sourceName string) []string {
	rule := strings.Repeat("=", ruleWidth)
	stem := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	return []string{
		rule,
		"DIALOGUE TRANSCRIPT: " + stem,
		"Source: " + sourceName,
		rule,
		"",
	}
}

// Render transcodes lines and joins the non-empty fragments under the
// header for sourceName. The result has no trailing newline.
func Render(sourceName string, lines []string) string {
	parts := Header(sourceName)
	parts = append(parts, transcode.TranscodeLines(lines)...)
	return strings.Join(parts, "\n")
}

// lineStats counts what a timeline rendered to.
type lineStats struct {
	fragments int
	dialogue  []types.DialogueLine
	kinds     map[string]int
}

func summarize(lines []string) lineStats {
	st := lineStats{kinds: make(map[string]int)}
	for i, l := range lines {
		st.kinds[transcode.Classify(l).String()]++
		if transcode.Transcode(l) != "" {
			st.fragments++
		}
		if d, ok := transcode.ParseDialogue(l); ok {
			st.dialogue = append(st.dialogue, types.DialogueLine{
				Ordinal:   i + 1,
				Character: d.Character,
				Text:      d.Text,
			})
		}
	}
	return st
}

// OutputPath returns the transcript path for a timeline: same directory and
// stem, OutputExt extension.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + OutputExt
}

// ReadLines loads a whole timeline file and splits it into lines. A leading
// UTF-8 byte order mark is dropped and CRLF endings are normalized. Files
// that are not valid UTF-8 are rejected.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decoding %s: invalid UTF-8", path)
	}
	data, _, err = transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// WriteTranscript writes text to path, replacing any existing file.
func WriteTranscript(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
