// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract [transcript]",
	Short: "Print the plain text extracted from a transcript file",
	Long: `Extract reads a .txt, .pdf, or .docx file ("-" for stdin) and prints
its plain text. PDF pages are separated by a blank line; Word documents list
body paragraphs first, then table cells. A file with no extractable text is
an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("backend", "", "extraction backend: native or markitdown")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)

	ex, err := newExtractor(backendFlag(cmd, cfg))
	if err != nil {
		return err
	}

	name, text, err := readTranscript(ex, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully loaded %d characters from %s\n", len([]rune(text)), name)
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
