// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anomaly-console CLI: a terminal
// and HTTP front-end for the content anomaly analysis backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anomaly-console/internal/client"
	"github.com/pdiddy/anomaly-console/internal/logging"
	"github.com/pdiddy/anomaly-console/internal/report"
	"github.com/pdiddy/anomaly-console/internal/secrets"
	"github.com/pdiddy/anomaly-console/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is populated from flags, environment, and the config file before
	// any subcommand runs.
	cfg types.Config

	logger = zerolog.Nop()
)

// rootCmd is the base command for the anomaly-console CLI.
var rootCmd = &cobra.Command{
	Use:   "anomaly-console",
	Short: "Front-end for the content anomaly analysis backend",
	Long: `anomaly-console talks to the content anomaly analysis backend. It uploads
spreadsheets of articles, lists and pages through analysed articles, shows
per-article anomaly reports and dashboard statistics, and serves the dashboard
pages over HTTP.

The backend URL comes from --base-url, ANOMALY_CONSOLE_BASE_URL, or base_url
in anomaly-console.yaml. A bearer token is read from .secrets/api-token.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, viper.GetString("log_level"))

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		if keys := s.Keys(); len(keys) > 0 {
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}

		c, err := loadConfig(s)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./anomaly-console.yaml or ~/.config/anomaly-console/config.yaml)")
	pf.String("base-url", "", "backend API prefix (default "+types.DefaultBaseURL+")")
	pf.Duration("timeout", 0, "per-request timeout (default 30s)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.StringP("output", "o", "table", "output format: table, json, yaml")
	pf.Bool("json", false, "output as JSON (same as --output json)")
	pf.Bool("yaml", false, "output as YAML (same as --output yaml)")
	rootCmd.MarkFlagsMutuallyExclusive("output", "json", "yaml")

	_ = viper.BindPFlag("base_url", pf.Lookup("base-url"))
	_ = viper.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anomaly-console")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anomaly-console"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("ANOMALY_CONSOLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that AutomaticEnv can see it
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", types.DefaultBaseURL)
	v.SetDefault("timeout", types.DefaultTimeout)
	v.SetDefault("upload_timeout", types.DefaultUploadTimeout)
	v.SetDefault("user_agent", types.DefaultUserAgent+" ("+version+")")
	v.SetDefault("api_token", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("addr", types.DefaultServeAddr)
	v.SetDefault("page_size", types.DefaultPageSize)
	v.SetDefault("log_format", "console")
	v.SetDefault("archive_dir", types.DefaultArchiveDir)
}

// loadConfig decodes the viper settings into a Config. The api-token
// secret is used when no token was configured explicitly.
func loadConfig(s secrets.Set) (types.Config, error) {
	return decodeConfig(viper.GetViper(), s)
}

func decodeConfig(v *viper.Viper, s secrets.Set) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if c.Client.APIToken == "" {
		c.Client.APIToken = s.Get(secrets.APIToken)
	}
	c.Client = c.Client.WithDefaults()
	if err := c.Client.Validate(); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// newClient builds a backend client from the loaded config.
func newClient() (*client.Client, error) {
	return client.New(cfg.Client, client.WithLogger(logger))
}

// outputFormat reads --output, with --json and --yaml as shorthands.
func outputFormat(cmd *cobra.Command) (report.Format, error) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.JSON, nil
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return report.YAML, nil
	}
	out, _ := cmd.Flags().GetString("output")
	return report.ParseFormat(out)
}

// render writes v to the command's stdout in the selected format.
func render(cmd *cobra.Command, v any) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), f, v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
