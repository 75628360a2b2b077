// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Dialogic timeline files into plain-text transcripts,
// one file at a time or a whole folder per run. Failures are reported per
// file and never abort a batch.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/timeline-transcript/pkg/types"
)

// Options configures a Converter.
type Options struct {
	// Workers bounds concurrent conversions in a batch. Values below 2 run
	// the batch sequentially.
	Workers int

	// Logger receives diagnostic records. Nil discards them.
	Logger *slog.Logger

	// OnConverted is called once per successful conversion, in input order.
	// Its errors are reported as warnings and do not fail the conversion.
	OnConverted func(ctx context.Context, tl types.Timeline) error
}

// Converter converts timeline files to transcripts, printing one progress
// line per step to the writer passed to each call.
type Converter struct {
	opts Options
	log  *slog.Logger
}

// New returns a Converter configured by opts.
func New(opts Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{opts: opts, log: log.With(slog.String("component", "convert"))}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Timelines lists the successful conversions in input order.
	Timelines []types.Timeline
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Summary renders the success ratio, e.g. "3/4".
func (r BatchResult) Summary() string {
	return fmt.Sprintf("%d/%d", r.Converted, r.Total())
}

// ConvertFile converts the timeline at src and writes the transcript next to
// it. The returned error is an *Error whose Kind is ErrNotFound,
// ErrWrongExtension, or ErrConversionIO.
func (c *Converter) ConvertFile(ctx context.Context, src string, w io.Writer) (types.Timeline, error) {
	tl, err := c.convert(ctx, src, w)
	if err != nil {
		return tl, err
	}
	c.notify(ctx, tl, w)
	return tl, nil
}

// ConvertFolder converts every timeline directly inside dir. It returns
// ErrInvalidDirectory or ErrNoMatchingFiles before converting anything;
// individual file failures are counted in the result instead.
func (c *Converter) ConvertFolder(ctx context.Context, dir string, w io.Writer) (BatchResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return BatchResult{}, newError(ErrInvalidDirectory, dir, err)
	}
	if !info.IsDir() {
		return BatchResult{}, newError(ErrInvalidDirectory, dir, nil)
	}

	paths, err := FindTimelines(dir)
	if err != nil {
		return BatchResult{}, newError(ErrInvalidDirectory, dir, err)
	}
	if len(paths) == 0 {
		return BatchResult{}, newError(ErrNoMatchingFiles, dir, nil)
	}

	fmt.Fprintf(w, "\nFound %d timeline file(s) in %s\n", len(paths), dir)
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	return c.ConvertPaths(ctx, paths, w), nil
}

// ConvertPaths converts each path independently and prints a summary line.
// With Options.Workers above 1 files are converted concurrently; progress
// output is still written in input order.
func (c *Converter) ConvertPaths(ctx context.Context, paths []string, w io.Writer) BatchResult {
	type fileResult struct {
		tl  types.Timeline
		err error
		out bytes.Buffer
	}
	results := make([]fileResult, len(paths))

	parallel := c.opts.Workers > 1 && len(paths) > 1
	if parallel {
		var g errgroup.Group
		g.SetLimit(c.opts.Workers)
		for i, p := range paths {
			i, p := i, p
			g.Go(func() error {
				r := &results[i]
				r.tl, r.err = c.convert(ctx, p, &r.out)
				return nil
			})
		}
		_ = g.Wait()
	}

	var batch BatchResult
	for i, p := range paths {
		r := &results[i]
		if parallel {
			_, _ = w.Write(r.out.Bytes())
		} else {
			r.tl, r.err = c.convert(ctx, p, w)
		}

		if r.err != nil {
			batch.Failed++
		} else {
			batch.Converted++
			batch.Timelines = append(batch.Timelines, r.tl)
			c.notify(ctx, r.tl, w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(w, "Converted %s files successfully!\n", batch.Summary())
	c.log.Info("batch finished", "converted", batch.Converted, "failed", batch.Failed)
	return batch
}

// FindTimelines lists the timeline files directly inside dir, sorted by
// name. Subdirectories are not searched.
func FindTimelines(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != SourceExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func (c *Converter) convert(ctx context.Context, src string, w io.Writer) (types.Timeline, error) {
	name := filepath.Base(src)
	tl := types.Timeline{
		Name:       strings.TrimSuffix(name, filepath.Ext(name)),
		SourcePath: src,
		Status:     types.ConversionFailed,
	}

	fail := func(err error) (types.Timeline, error) {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		c.log.Warn("conversion failed", "source", src, "error", err)
		return tl, err
	}

	if err := ctx.Err(); err != nil {
		return fail(newError(ErrConversionIO, src, err))
	}

	info, err := os.Stat(src)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fail(newError(ErrNotFound, src, nil))
	case err != nil:
		return fail(newError(ErrConversionIO, src, err))
	case info.IsDir() || filepath.Ext(src) != SourceExt:
		return fail(newError(ErrWrongExtension, src, nil))
	}

	fmt.Fprintf(w, "reading: %s\n", name)
	lines, err := ReadLines(src)
	if err != nil {
		return fail(newError(ErrConversionIO, src, err))
	}

	out := OutputPath(src)
	if err := WriteTranscript(out, Render(name, lines)); err != nil {
		return fail(newError(ErrConversionIO, src, err))
	}

	stats := summarize(lines)
	tl.OutputPath = out
	tl.LinesRead = len(lines)
	tl.Fragments = stats.fragments
	tl.Dialogue = stats.dialogue
	tl.ConvertedAt = time.Now().UTC()
	tl.Status = types.ConversionDone

	c.log.Debug("timeline classified", "source", src, "kinds", stats.kinds)
	fmt.Fprintf(w, "converted: %s -> %s (%d lines)\n", name, out, len(lines))
	return tl, nil
}

func (c *Converter) notify(ctx context.Context, tl types.Timeline, w io.Writer) {
	if c.opts.OnConverted == nil {
		return
	}
	if err := c.opts.OnConverted(ctx, tl); err != nil {
		fmt.Fprintf(w, "warning: %s: %v\n", tl.Name, err)
		c.log.Warn("post-conversion hook failed", "source", tl.SourcePath, "error", err)
	}
}
