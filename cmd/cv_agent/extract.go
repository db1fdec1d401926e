package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/ingest"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured record from a document file",
	Long:  "Extract a structured CV record from a text or HTML document and print it as JSON, without starting a session.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractAPIKey     string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to document file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a summary of the extracted record")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractInputFile == "" {
		return fmt.Errorf("--in flag is required")
	}

	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	raw, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	text := ingest.PrepareDocument(string(raw))
	if text == "" {
		return fmt.Errorf("document contains no extractable text")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	rawJSON, err := llm.NewService(client).ExtractRecord(ctx, text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := schemas.ValidateRecordJSON(rawJSON); err != nil {
		return fmt.Errorf("extraction output rejected: %w", err)
	}
	rec, err := record.Parse(rawJSON)
	if err != nil {
		return fmt.Errorf("extraction output rejected: %w", err)
	}

	if extractVerbose {
		observability.NewPrinter(os.Stderr).PrintRecord(rec)
	}

	jsonBytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if extractOutputFile == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
