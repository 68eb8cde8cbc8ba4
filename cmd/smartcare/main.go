/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/smartcare/config"
	"github.com/suparena/smartcare/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	envFiles   []string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smartcare",
	Short: "Smart Care presentation site content service",
	Long: `smartcare serves the bilingual content of the Smart Care site.

Content is read from the document store and resolved for the visitor's
language. When the store cannot be reached, bundled local content is served.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath, envFiles...)
		if err != nil {
			return err
		}

		logCfg := cfg.Log
		if verbose {
			logCfg = logging.Verbose(logCfg)
		}
		logger, err = logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SMARTCARE_CONFIG"), "YAML configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default: .env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for seed and audit runs")

	seedCmd.Flags().Bool("merge", false, "Merge into existing documents instead of replacing them")
	seedCmd.Flags().Int("concurrency", 4, "Parallel writes")
	seedCmd.Flags().Bool("dry-run", false, "Print the planned writes without storing them")

	auditCmd.Flags().StringSlice("collections", nil, "Split collections to check (default: team and roadmap collections)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
