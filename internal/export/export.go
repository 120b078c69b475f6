// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a MinutesRecord to Markdown, JSON, YAML, or DOCX.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/minutes-engine/internal/markdown"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatDOCX     Format = "docx"
)

// ParseFormat accepts a format name or a common alias ("md", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use markdown, json, yaml, or docx", s)
	}
}

// FormatForPath infers the format from a file extension, defaulting to
// Markdown.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatMarkdown
}

// WriteMarkdown writes the Markdown rendering of r.
func WriteMarkdown(w io.Writer, r types.MinutesRecord) error {
	_, err := io.WriteString(w, markdown.Format(r))
	return err
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r types.MinutesRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteYAML writes r as YAML.
func WriteYAML(w io.Writer, r types.MinutesRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a record previously written by WriteYAML or WriteJSON
// (JSON is valid YAML). The result is not sanitized.
func ReadYAML(rd io.Reader) (types.MinutesRecord, error) {
	var r types.MinutesRecord
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return types.MinutesRecord{}, fmt.Errorf("decoding minutes: %w", err)
	}
	return r, nil
}

// SaveFile writes r to path in format f, creating parent directories.
func SaveFile(path string, f Format, r types.MinutesRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if f == FormatDOCX {
		return SaveDOCX(path, DefaultTitle, r)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch f {
	case FormatJSON:
		err = WriteJSON(out, r)
	case FormatYAML:
		err = WriteYAML(out, r)
	default:
		err = WriteMarkdown(out, r)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
