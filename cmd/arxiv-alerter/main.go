// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-alerter CLI. The root
// command runs one alert cycle; subcommands expose the query and search
// stages for inspection.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/internal/logging"
	"github.com/pdiddy/arxiv-alerter/internal/pipeline"
	"github.com/pdiddy/arxiv-alerter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile    string
	envFile    string
	secretsDir string
	testMode   bool

	v             *viper.Viper
	loadedSecrets secrets.Store
	log           = logging.New(os.Stdout, "info")
)

var rootCmd = &cobra.Command{
	Use:   "arxiv-alerter",
	Short: "Mail a daily digest of new arXiv papers matching your keywords",
	Long: `arxiv-alerter searches arXiv for papers published yesterday (Japan time)
that match SEARCH_KEYWORDS, summarizes each one from its HTML full text or
abstract, and mails the digest over SMTP with STARTTLS.

Run it once a day from cron. With TEST_MODE=true (or --test-mode) the digest
is printed to stdout instead of being sent.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotenv(envFile); err != nil {
			return err
		}
		var err error
		if v, err = config.NewViper(cfgFile); err != nil {
			return err
		}
		logging.SetLevel(log, v.GetString(config.KeyLogLevel))

		loadedSecrets, err = secrets.Load(secretsDir, log)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if testMode {
			v.Set(config.KeyTestMode, "true")
		}
		cfg, err := config.Load(v, loadedSecrets)
		if err != nil {
			log.WithError(err).Error("configuration incomplete")
			return err
		}

		runLog := logging.WithRun(log)
		runLog.WithFields(logrus.Fields{
			"keywords":  cfg.Search.Keywords,
			"category":  cfg.Search.Category,
			"test_mode": cfg.Mail.TestMode,
		}).Info("starting alert cycle")

		ctx := cmd.Context()
		pipeline.New(ctx, cfg, cmd.OutOrStdout(), runLog).Run(ctx)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file (keys are the environment variable names)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&secretsDir, "secrets-dir", secrets.DefaultDir, "directory of secret files (gemini-api-key, smtp-password)")
	rootCmd.Flags().BoolVar(&testMode, "test-mode", false, "print the digest to stdout instead of sending mail")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
