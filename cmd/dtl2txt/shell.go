// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/timeline-transcript/internal/convert"
	"github.com/pdiddy/timeline-transcript/pkg/types"
)

// shell is the console front end: a drag-and-drop path handler and a
// numbered menu. All of its state lives here so it can be driven from tests.
type shell struct {
	in   *bufio.Reader
	out  io.Writer
	conv *convert.Converter
	cfg  types.TranscriptConfig
}

func newShell(in io.Reader, out io.Writer, conv *convert.Converter, cfg types.TranscriptConfig) *shell {
	return &shell{in: bufio.NewReader(in), out: out, conv: conv, cfg: cfg}
}

func (s *shell) banner() {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(s.out, "\n%s\n", rule)
	fmt.Fprintln(s.out, "  DIALOGIC DTL TO TXT CONVERTER")
	fmt.Fprintln(s.out, "  Convert Dialogic timeline files to readable text format")
	fmt.Fprintln(s.out, rule)
}

// runPath converts a path given on the command line: a timeline file or a
// folder of timelines.
func (s *shell) runPath(ctx context.Context, path string) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		s.convertFolder(ctx, path)
	case err == nil && filepath.Ext(path) == convert.SourceExt:
		s.convertFile(ctx, path)
	default:
		fmt.Fprintf(s.out, "error: invalid file or folder: %s\n", path)
	}
	s.pause()
}

// runMenu shows the option menu once and runs the chosen action.
func (s *shell) runMenu(ctx context.Context) {
	fmt.Fprintln(s.out, "\nOptions:")
	fmt.Fprintln(s.out, "  1. Convert a single DTL file")
	fmt.Fprintln(s.out, "  2. Convert all DTL files in a folder")
	fmt.Fprintf(s.out, "  3. Convert all chapter files (%s)\n", s.cfg.ChapterDir)
	fmt.Fprintln(s.out, "  4. Exit")

	switch s.prompt("\nEnter your choice (1-4): ") {
	case "1":
		s.convertFile(ctx, s.promptPath("\nEnter the path to the DTL file: "))
	case "2":
		s.convertFolder(ctx, s.promptPath("\nEnter the path to the folder: "))
	case "3":
		if info, err := os.Stat(s.cfg.ChapterDir); err != nil || !info.IsDir() {
			fmt.Fprintf(s.out, "error: chapter folder not found: %s\n", s.cfg.ChapterDir)
			break
		}
		s.convertFolder(ctx, s.cfg.ChapterDir)
	case "4":
		fmt.Fprintln(s.out, "\nGoodbye!")
		return
	default:
		fmt.Fprintln(s.out, "\nInvalid choice!")
	}
	s.pause()
}

func (s *shell) convertFile(ctx context.Context, path string) {
	fmt.Fprintln(s.out)
	// Failures are already reported on s.out by the converter.
	_, _ = s.conv.ConvertFile(ctx, path, s.out)
}

func (s *shell) convertFolder(ctx context.Context, dir string) {
	if _, err := s.conv.ConvertFolder(ctx, dir, s.out); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

// prompt prints msg and returns the next input line, trimmed. End of input
// yields "".
func (s *shell) prompt(msg string) string {
	fmt.Fprint(s.out, msg)
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPath reads a path, dropping the quotes consoles add to dropped files.
func (s *shell) promptPath(msg string) string {
	return strings.Trim(s.prompt(msg), `"`)
}

func (s *shell) pause() {
	if !s.cfg.PauseOnExit {
		return
	}
	fmt.Fprint(s.out, "\nPress Enter to exit...")
	_, _ = s.in.ReadString('\n')
	fmt.Fprintln(s.out)
}
