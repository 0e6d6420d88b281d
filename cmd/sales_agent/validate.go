package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/sales-simulator/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON record against its schema",
	Long:  "Validates a JSON file against one of the built-in record schemas and prints each violation with its field path.",
	RunE:  runValidateCmd,
}

var (
	validateInput string
	validateKind  string
)

func init() {
	validateCommand.Flags().StringVarP(&validateInput, "in", "i", "", "Path to JSON file (required)")
	validateCommand.Flags().StringVarP(&validateKind, "kind", "k", "", fmt.Sprintf("Record kind, one of: %s (required)", strings.Join(schemas.Kinds(), ", ")))

	if err := validateCommand.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := validateCommand.MarkFlagRequired("kind"); err != nil {
		panic(fmt.Sprintf("failed to mark kind flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCommand)
}

func runValidateCmd(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateInput); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", validateInput)
	}

	err := schemas.ValidateJSONFile(validateKind, validateInput)
	if err == nil {
		fmt.Printf("%s is a valid %s record\n", validateInput, validateKind)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(os.Stderr, "%s failed validation against %s:\n", validateInput, validateKind)
		for _, fieldErr := range validationErr.Errors {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("validation failed with %d violation(s)", len(validationErr.Errors))
	}
	return fmt.Errorf("failed to validate %s: %w", validateInput, err)
}
