// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/minutes-engine/internal/api"
	"github.com/pdiddy/minutes-engine/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the minutes API over HTTP",
	Long: `Serve starts an HTTP API for extraction, connectivity checks, and
per-session minutes generation. Sessions live in memory only and are lost
when the process exits.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8710)")
	serveCmd.Flags().String("backend", "", "extraction backend: native or markitdown")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	ex, err := newExtractor(backendFlag(cmd, cfg))
	if err != nil {
		return err
	}

	gen := newGenerator(cfg.OpenAI)
	logger.Info("generator configured", "state", gen.State().String(), "model", gen.Model())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(gen, session.NewStore(), ex, cfg.Server, logger)
	return srv.Start(ctx)
}
