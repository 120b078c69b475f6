// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch generates minutes for every transcript in a directory,
// writing one Markdown file per transcript and printing per-file status.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/minutes-engine/internal/extract"
	"github.com/pdiddy/minutes-engine/internal/markdown"
	"github.com/pdiddy/minutes-engine/internal/minutes"
)

// Status is the outcome for one transcript.
type Status int

const (
	StatusSkipped Status = iota
	StatusGenerated
	StatusFailed
)

// Generator is the part of minutes.Generator a batch run needs.
type Generator interface {
	Generate(ctx context.Context, transcript string) minutes.Result
	LastError() string
}

// Result holds the outcome of a batch run.
type Result struct {
	Generated int
	Skipped   int
	Failed    int
}

// Total returns the number of transcripts processed.
func (r Result) Total() int {
	return r.Generated + r.Skipped + r.Failed
}

// HasFailures reports whether any transcript failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Runner processes transcripts one at a time; it never calls the
// Generator concurrently.
type Runner struct {
	Extractor extract.Extractor
	Generator Generator
	OutDir    string

	// Now stamps output front matter; nil means time.Now.
	Now func() time.Time
}

// OutputPath returns the Markdown path written for transcript path.
func (r *Runner) OutputPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(r.OutDir, base+".md")
}

// ProcessFile generates minutes for one transcript. An existing output file
// is left alone.
func (r *Runner) ProcessFile(ctx context.Context, path string, w io.Writer) Status {
	name := filepath.Base(path)
	out := r.OutputPath(path)

	if _, err := os.Stat(out); err == nil {
		fmt.Fprintf(w, "skipped:   %s (already exists)\n", name)
		return StatusSkipped
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}

	text := r.Extractor.Extract(data, extract.ContentTypeForPath(path))
	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(w, "failed:    %s (could not extract text)\n", name)
		return StatusFailed
	}

	res := r.Generator.Generate(ctx, text)
	if !res.OK {
		fmt.Fprintf(w, "failed:    %s (%s)\n", name, r.Generator.LastError())
		return StatusFailed
	}

	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}
	if err := os.WriteFile(out, []byte(r.frontMatter(path)+markdown.Format(res.Record)+"\n"), 0o644); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "generated: %s -> %s\n", name, out)
	return StatusGenerated
}

// Run processes paths in order, printing per-file status and a summary to w.
// A cancelled context stops the run before the next file.
func (r *Runner) Run(ctx context.Context, paths []string, w io.Writer) Result {
	var result Result
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		switch r.ProcessFile(ctx, p, w) {
		case StatusGenerated:
			result.Generated++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d generated, %d skipped, %d failed (total: %d)\n",
		result.Generated, result.Skipped, result.Failed, result.Total())
	return result
}

// Collect lists the supported transcript files directly inside dir, sorted
// by name.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if extract.ContentTypeForPath(e.Name()) == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *Runner) frontMatter(path string) string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source: %q\n", filepath.Base(path))
	fmt.Fprintf(&b, "generated_at: %q\n", now().UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	return b.String()
}
