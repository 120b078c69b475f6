// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the minutes-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/minutes-engine/internal/envfile"
	"github.com/pdiddy/minutes-engine/internal/extract"
	"github.com/pdiddy/minutes-engine/internal/httputil"
	"github.com/pdiddy/minutes-engine/internal/logging"
	"github.com/pdiddy/minutes-engine/internal/secrets"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Set in PersistentPreRunE.
var (
	loadedSecrets secrets.Store
	logger        = slog.Default()
)

// rootCmd is the base command for the minutes-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "minutes-engine",
	Short: "Turn meeting transcripts into structured minutes",
	Long: `minutes-engine reads a meeting transcript (plain text, PDF, or Word),
asks a language model for structured minutes, and renders them as Markdown.

The model provider is configured with OPENAI_API_KEY and, optionally,
OPENAI_BASE_URL and OPENAI_MODEL. Settings may also come from
minutes-engine.yaml, MINUTES_ENGINE_* variables, .env files, or .secrets/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = viper.GetString("log.level")
		}
		logger = logging.New(level, viper.GetString("log.format"), os.Stderr)
		slog.SetDefault(logger)

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			logger.Debug("loaded secrets", "names", names)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./minutes-engine.yaml or ~/.config/minutes-engine/minutes-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	if loaded, err := envfile.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	} else if len(loaded) > 0 {
		fmt.Fprintln(os.Stderr, "Loaded env from", strings.Join(loaded, ", "))
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("minutes-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "minutes-engine"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers defaults and environment bindings on v. The
// provider's own variable names are honoured alongside the prefixed ones.
func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix("MINUTES_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("openai.api_key", "MINUTES_ENGINE_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "MINUTES_ENGINE_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	v.BindEnv("openai.model", "MINUTES_ENGINE_OPENAI_MODEL", "OPENAI_MODEL")

	v.SetDefault("http.timeout", httputil.DefaultTimeout)
	v.SetDefault("http.user_agent", "minutes-engine/"+version)
	v.SetDefault("extract_backend", string(types.ExtractNative))
	v.SetDefault("markitdown.image", extract.DefaultMarkitdownImage)
	v.SetDefault("server.addr", ":8710")
	v.SetDefault("server.max_upload_bytes", 20<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// loadConfig assembles a Config from v, falling back to .secrets/ for the
// provider credential and endpoint.
func loadConfig(v *viper.Viper, s secrets.Store) types.Config {
	return types.Config{
		OpenAI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   durationOr(v.GetDuration("http.timeout"), httputil.DefaultTimeout),
				UserAgent: v.GetString("http.user_agent"),
			},
			APIKey:  s.Default(secrets.OpenAIAPIKey, strings.TrimSpace(v.GetString("openai.api_key"))),
			BaseURL: s.Default(secrets.OpenAIBaseURL, strings.TrimSpace(v.GetString("openai.base_url"))),
			Model:   strings.TrimSpace(v.GetString("openai.model")),
		},
		Extract: types.ExtractionBackend(v.GetString("extract_backend")),
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
