// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/minutes-engine/internal/container"
	"github.com/pdiddy/minutes-engine/internal/extract"
	"github.com/pdiddy/minutes-engine/internal/minutes"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// stdinName labels a transcript read from standard input.
const stdinName = "stdin"

// newExtractor returns the extractor for backend. The markitdown backend
// requires docker or podman and the converter image.
func newExtractor(backend types.ExtractionBackend) (extract.Extractor, error) {
	switch backend {
	case "", types.ExtractNative:
		return extract.Native{}, nil
	case types.ExtractMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return extract.NewMarkitdownExtractor(rt, viper.GetString("markitdown.image"))
	default:
		return nil, fmt.Errorf("unsupported extraction backend %q: use native or markitdown", backend)
	}
}

// backendFlag reads --backend, falling back to configuration.
func backendFlag(cmd *cobra.Command, cfg types.Config) types.ExtractionBackend {
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		return types.ExtractionBackend(b)
	}
	return cfg.Extract
}

// readTranscript loads the transcript named by args ("-" is stdin) and
// extracts its text. An empty result is an error naming the source.
func readTranscript(ex extract.Extractor, args []string, stdin io.Reader) (name, text string, err error) {
	if len(args) == 0 {
		return "", "", fmt.Errorf("provide a transcript file, - for stdin, or --text")
	}

	path := args[0]
	var data []byte
	contentType := extract.TypePlain
	if path == "-" {
		name = stdinName
		data, err = io.ReadAll(stdin)
	} else {
		name = filepath.Base(path)
		contentType = extract.ContentTypeForPath(path)
		if contentType == "" {
			return name, "", fmt.Errorf("unsupported file type %q: use .txt, .pdf, or .docx", filepath.Ext(path))
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return name, "", fmt.Errorf("reading %s: %w", name, err)
	}

	text = ex.Extract(data, contentType)
	if strings.TrimSpace(text) == "" {
		return name, "", fmt.Errorf("could not extract text from %s", name)
	}
	return name, text, nil
}

// newGenerator builds and configures a Generator from cfg.
func newGenerator(cfg types.AIConfig) *minutes.Generator {
	g := minutes.New(minutes.WithLogger(logger))
	g.Configure(cfg)
	return g
}
