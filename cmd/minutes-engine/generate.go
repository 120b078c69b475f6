// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/minutes-engine/internal/batch"
	"github.com/pdiddy/minutes-engine/internal/export"
	"github.com/pdiddy/minutes-engine/internal/markdown"
	"github.com/pdiddy/minutes-engine/internal/minutes"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// errGenerationFailed is returned after the failure message was printed.
var errGenerationFailed = errors.New("generation failed")

var generateCmd = &cobra.Command{
	Use:   "generate [transcript]",
	Short: "Generate structured minutes from a meeting transcript",
	Long: `Generate reads a transcript (.txt, .pdf, or .docx; "-" for stdin, or
--text), sends it to the language model, and prints the minutes.

Output formats: structured (every section, with captions for empty ones),
markdown (empty sections omitted), json, or yaml. Use --out to save the
Markdown download and --docx to save a Word document.

With --from FILE, minutes previously saved as JSON or YAML are re-rendered
without calling the language model.

With --batch DIR, every supported file in DIR is processed in turn and
written to --output-dir as <name>.md; existing outputs are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("text", "", "transcript text (instead of a file)")
	generateCmd.Flags().String("format", "structured", "output format: structured, markdown, json, or yaml")
	generateCmd.Flags().String("out", "", "also write minutes to this file (format from extension, Markdown by default)")
	generateCmd.Flags().String("docx", "", "also write minutes as a Word document to this path")
	generateCmd.Flags().String("backend", "", "extraction backend: native or markitdown")
	generateCmd.Flags().String("model", "", "model identifier (overrides OPENAI_MODEL)")
	generateCmd.Flags().String("from", "", "re-render minutes saved as JSON or YAML instead of generating")
	generateCmd.Flags().String("batch", "", "process every transcript in this directory")
	generateCmd.Flags().String("output-dir", "output", "directory for --batch results")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		record, err := loadRecord(from)
		if err != nil {
			return err
		}
		if err := printRecord(cmd.OutOrStdout(), format, record); err != nil {
			return err
		}
		return saveOutputs(cmd, record)
	}

	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.OpenAI.Model = model
	}

	if dir, _ := cmd.Flags().GetString("batch"); dir != "" {
		return runBatch(cmd, dir, cfg)
	}

	name, transcript, err := transcriptFromFlags(cmd, args, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully loaded %d characters from %s\n", len([]rune(transcript)), name)

	gen := newGenerator(cfg.OpenAI)
	if gen.State() == minutes.StateUninitialized {
		return fmt.Errorf("model provider not configured: %s", gen.LastError())
	}

	record, err := generateRecord(cmd.Context(), gen, transcript, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := printRecord(cmd.OutOrStdout(), format, record); err != nil {
		return err
	}
	return saveOutputs(cmd, record)
}

func runBatch(cmd *cobra.Command, dir string, cfg types.Config) error {
	paths, err := batch.Collect(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no transcripts (.txt, .pdf, .docx) found in %s", dir)
	}

	ex, err := newExtractor(backendFlag(cmd, cfg))
	if err != nil {
		return err
	}
	gen := newGenerator(cfg.OpenAI)
	if gen.State() == minutes.StateUninitialized {
		return fmt.Errorf("model provider not configured: %s", gen.LastError())
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	r := &batch.Runner{Extractor: ex, Generator: gen, OutDir: outDir}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result := r.Run(ctx, paths, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d transcript(s) failed", result.Failed)
	}
	return nil
}

func transcriptFromFlags(cmd *cobra.Command, args []string, cfg types.Config) (string, string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		if strings.TrimSpace(text) == "" {
			return "", "", fmt.Errorf("transcript is empty")
		}
		return "text", text, nil
	}

	ex, err := newExtractor(backendFlag(cmd, cfg))
	if err != nil {
		return "", "", err
	}
	return readTranscript(ex, args, cmd.InOrStdin())
}

// generateRecord runs one generation and reports a failure the way the
// caller should show it: the fallback is never printed as real minutes.
func generateRecord(ctx context.Context, gen *minutes.Generator, transcript string, stderr io.Writer) (types.MinutesRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res := gen.Generate(ctx, transcript)
	if !res.OK {
		fmt.Fprintf(stderr, "Failed to generate minutes. Error: %s\n", gen.LastError())
		return res.Record, errGenerationFailed
	}
	return res.Record, nil
}

// loadRecord reads minutes written by --out in JSON or YAML form.
func loadRecord(path string) (types.MinutesRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.MinutesRecord{}, err
	}
	defer f.Close()

	r, err := export.ReadYAML(f)
	if err != nil {
		return types.MinutesRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	if r.IsEmpty() {
		return types.MinutesRecord{}, fmt.Errorf("%s contains no minutes", path)
	}
	return minutes.SanitizeRecord(r), nil
}

func validateOutputFormat(format string) error {
	switch format {
	case "structured", "markdown", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use structured, markdown, json, or yaml", format)
	}
}

func printRecord(w io.Writer, format string, r types.MinutesRecord) error {
	switch format {
	case "markdown":
		_, err := fmt.Fprintln(w, markdown.Format(r))
		return err
	case "json":
		return export.WriteJSON(w, r)
	case "yaml":
		return export.WriteYAML(w, r)
	default:
		_, err := io.WriteString(w, markdown.Structured(r))
		return err
	}
}

// outputPath resolves a directory --out to the Markdown download inside it.
func outputPath(out string) string {
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, markdown.DownloadName)
	}
	return out
}

func saveOutputs(cmd *cobra.Command, r types.MinutesRecord) error {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		out = outputPath(out)
		if err := export.SaveFile(out, export.FormatForPath(out), r); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", out)
	}

	if path, _ := cmd.Flags().GetString("docx"); path != "" {
		if err := export.SaveDOCX(path, export.DefaultTitle, r); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", path)
	}
	return nil
}
