// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the connection to the model provider",
	Long: `Check configures the provider client and issues a read-only
list-models call. It prints "Connection successful" or the reason the
connection failed, and exits non-zero on failure.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	gen := newGenerator(cfg.OpenAI)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ok, msg := gen.TestConnection(ctx)
	if !ok {
		return fmt.Errorf("connection failed: %s", msg)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (model %s)\n", msg, gen.Model())
	return nil
}
