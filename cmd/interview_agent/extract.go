package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/ai"
	"github.com/jonathan/interview-prep/internal/extraction"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured profile fields from a resume PDF",
	Long:  "Read a resume PDF, extract its text and print the structured profile candidate as JSON. Useful for testing the extraction pipeline without a server.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractAPIKey     string
	extractTextOnly   bool
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to resume PDF (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVar(&extractTextOnly, "text-only", false, "Print the extracted text without calling the AI gateway")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted summary of the extracted profile to stderr")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractInputFile == "" {
		return fmt.Errorf("--in is required")
	}

	data, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", extractInputFile, err)
	}

	text := extraction.ExtractText(data)
	if extraction.IsExtractionError(text) {
		return fmt.Errorf("%s", text)
	}

	if extractTextOnly {
		return writeOutput(extractOutputFile, []byte(text))
	}

	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	candidate, err := ai.NewService(client).ExtractResume(ctx, text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractVerbose {
		observability.NewPrinter(os.Stderr).PrintExtractedProfile(&candidate)
	}

	out, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return writeOutput(extractOutputFile, append(out, '\n'))
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
