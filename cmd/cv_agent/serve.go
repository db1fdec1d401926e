package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/server"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for document upload, the interview loop and finalization.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if serveConfigFile != "" {
		loaded, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:              8080,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		APIKey:            os.Getenv("GEMINI_API_KEY"),
		SessionTTLMinutes: 60,
	})
	if servePort != 0 {
		cfg.Port = servePort
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or 'api_key' in the config file)")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		QuestionCap: cfg.QuestionCap,
		BatchSize:   cfg.QuestionBatch,
		SessionTTL:  time.Duration(cfg.SessionTTLMinutes) * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
