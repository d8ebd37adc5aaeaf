// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-analyzer CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-analyzer/internal/logging"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the resolved configuration for the running command.
var cfg = types.DefaultConfig()

// logCleanup closes the log file opened by logging.Setup.
var logCleanup = func() {}

// rootCmd analyzes a file or directory when given a path.
var rootCmd = &cobra.Command{
	Use:   "doc-analyzer <path>",
	Short: "Mine product documentation for APIs, workflows, pain points, and opportunities",
	Long: `doc-analyzer scans a documentation file or directory tree (PDF, text,
Markdown, reStructuredText) with a fixed table of patterns and writes
analysis_results.json and opportunity_report.md to the output directory.

Directory mode walks the tree, skips unsupported files, and merges every
file's findings into one deduplicated, sorted result. Single-file mode also
prints that file's result as JSON.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	RunE:          runAnalyze,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		logger, cleanup, err := logging.Setup(cfg.Log)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		logCleanup = cleanup

		if used := viper.ConfigFileUsed(); used != "" {
			slog.Info("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doc-analyzer.yaml or ~/.config/doc-analyzer/doc-analyzer.yaml)")
	rootCmd.PersistentFlags().String("output", types.DefaultOutputDir, "output directory for results")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("patterns", "", "YAML pattern table merged over the built-in patterns")

	rootCmd.Flags().Int("workers", 1, "concurrent extraction workers in directory mode")
	rootCmd.Flags().String("pdf-backend", string(types.PDFNative), "PDF backend: native, pdftotext, or none")
	rootCmd.Flags().Bool("docx", false, "analyze .docx files in directory mode")
	rootCmd.Flags().StringSlice("format", nil, "extra report formats: html, xlsx, yaml")
	rootCmd.Flags().Bool("all-categories", false, "scan every category regardless of file kind")
	rootCmd.Flags().Bool("index", false, "record this run's findings in the SQLite findings index")

	bindFlags(viper.GetViper(), rootCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: loading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-analyzer"))
		}
	}

	viper.SetEnvPrefix("DOC_ANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	err := rootCmd.Execute()
	logCleanup()
	if err != nil {
		os.Exit(1)
	}
}
