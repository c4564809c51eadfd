package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/db"
	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/server"
	"github.com/atsresumie/latex-studio/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing the studio operations. The compile, generate, " +
		"PDF capture and document routes are enabled when their collaborators are configured.",
	RunE: runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the document tables in DATABASE_URL",
	RunE:  runMigrate,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: config or 8080)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.WithComponent("serve")
	cfg := server.Config{
		Port:         appConfig.Port,
		TemplatePath: appConfig.Template,
		RateLimit:    ratelimit.LoadConfig(),
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	var compileDeps export.Compiler
	if appConfig.CompilerURL != "" {
		client, cleanup, err := newCompiler(ctx, appConfig)
		if err != nil {
			return err
		}
		defer cleanup()
		cfg.Compiler = client
		compileDeps = client
	} else {
		log.Warn("COMPILER_URL not set; compile and bundle routes are disabled")
	}
	cfg.Exporter = export.NewExporter(newCapturer(appConfig), compileDeps)

	if appConfig.APIKey != "" {
		client, err := newGenerator(ctx, appConfig)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		cfg.Generator = client
	}

	if appConfig.DatabaseURL != "" {
		database, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		cfg.Store = database
	}

	auth, err := newAuth()
	if err != nil {
		return err
	}
	cfg.Auth = auth

	return server.New(cfg).Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

// connectDB connects to DATABASE_URL and applies the schema
func connectDB(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
