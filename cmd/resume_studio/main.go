// Package main provides the resume_studio CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/config"
	"github.com/atsresumie/latex-studio/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	// appConfig is loaded before every command runs
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "LaTeX resume studio",
	Long: "resume_studio converts LaTeX and plain-text resumes into structured payloads, " +
		"round-trips style parameters through LaTeX source, paginates and exports resumes " +
		"as PDF, Word and text, and serves the same operations over HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override (text or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print summaries to stderr")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
