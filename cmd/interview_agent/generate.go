package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/ai"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate interview questions from a profile JSON",
	Long:  "Read a profile JSON file and print generated interview questions. Useful for testing question generation without a server.",
	RunE:  runGenerate,
}

var (
	generateProfileFile string
	generateOutputFile  string
	generateAPIKey      string
	generateCount       int
	generateCategories  []string
	generateVerbose     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfileFile, "profile", "p", "", "Path to profile JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().IntVar(&generateCount, "count", 5, "Number of questions to generate")
	generateCmd.Flags().StringSliceVar(&generateCategories, "categories", nil, "Question categories (default: all)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print a formatted summary of the generated questions to stderr")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	if generateProfileFile == "" {
		return fmt.Errorf("--profile is required")
	}

	data, err := os.ReadFile(generateProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", generateProfileFile, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	categories := make([]types.QuestionCategory, 0, len(generateCategories))
	for _, c := range generateCategories {
		category := types.QuestionCategory(c)
		if !category.IsValid() {
			return fmt.Errorf("unknown category: %q", c)
		}
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		categories = append(categories, types.AllCategories...)
	}

	apiKey := generateAPIKey
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

	questions, err := ai.NewService(client).GenerateQuestions(ctx, profile, categories, generateCount, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: generation degraded, returning placeholders: %v\n", err)
	}

	if generateVerbose {
		observability.NewPrinter(os.Stderr).PrintQuestions(questions)
	}

	out, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return writeOutput(generateOutputFile, append(out, '\n'))
}
