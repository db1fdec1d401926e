package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a record JSON file",
	Long:  "Check a CV record JSON file against the record schema and the normalizing record model.",
	RunE:  runValidate,
}

var validateInputFile string

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to record JSON file (required)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateInputFile == "" {
		return fmt.Errorf("--in flag is required")
	}

	raw, err := os.ReadFile(validateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if err := schemas.ValidateRecordJSON(string(raw)); err != nil {
		return err
	}
	if _, err := record.Parse(string(raw)); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", validateInputFile)
	return nil
}
