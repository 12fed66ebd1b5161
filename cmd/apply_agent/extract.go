package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-apply/internal/ingestion"
	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/jonathan/internship-apply/internal/observability"
	"github.com/jonathan/internship-apply/internal/parsing"
)

var (
	extractCV         string
	extractBook       string
	extractCompany    string
	extractName       string
	extractEmail      string
	extractOut        string
	extractConfigPath string
	extractVerbose    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured records from a CV or offer book PDF",
	Long: `Extract a structured candidate profile from a CV PDF, or the full list
of internship topics from an offer book PDF, and write the result as JSON.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractCV, "cv", "", "Path to a CV PDF")
	extractCmd.Flags().StringVar(&extractBook, "book", "", "Path to an internship offer book PDF")
	extractCmd.Flags().StringVar(&extractCompany, "company", "", "Company name to backfill topics that don't state one")
	extractCmd.Flags().StringVar(&extractName, "name", "", "Candidate name fallback for profile extraction")
	extractCmd.Flags().StringVar(&extractEmail, "email", "", "Candidate email fallback for profile extraction")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default stdout)")
	extractCmd.Flags().StringVarP(&extractConfigPath, "config", "c", "", "Path to JSON config file")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractCV == "" && extractBook == "" {
		return fmt.Errorf("either --cv or --book must be provided")
	}
	if extractCV != "" && extractBook != "" {
		return fmt.Errorf("--cv and --book are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(extractConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer client.Close()
	extractor := parsing.NewExtractor(client)

	// Summaries go to stderr so stdout stays machine-readable JSON.
	var printer *observability.Printer
	if extractVerbose || cfg.Verbose {
		printer = observability.NewPrinter(os.Stderr)
	}

	var result any
	if extractCV != "" {
		data, err := os.ReadFile(extractCV)
		if err != nil {
			return fmt.Errorf("failed to read CV: %w", err)
		}
		text, err := ingestion.ExtractPDFText(data)
		if err != nil {
			return err
		}

		profile, defaulted, err := extractor.ExtractProfile(ctx, text, parsing.ProfileDefaults{
			FullName: extractName,
			Email:    extractEmail,
		})
		if err != nil {
			return err
		}
		if len(defaulted) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: defaulted fields: %v\n", defaulted)
		}
		if printer != nil {
			printer.PrintProfile(profile)
			printer.PrintDefaultedFields(defaulted)
		}
		result = profile
	} else {
		data, err := os.ReadFile(extractBook)
		if err != nil {
			return fmt.Errorf("failed to read offer book: %w", err)
		}
		text, err := ingestion.ExtractPDFText(data)
		if err != nil {
			return err
		}

		topics, err := extractor.ExtractTopics(ctx, text, extractCompany)
		if err != nil {
			return err
		}
		if printer != nil {
			printer.PrintTopics(topics)
		}
		result = map[string]any{"topics": topics}
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	encoded = append(encoded, '\n')

	if extractOut == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(extractOut, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", extractOut)
	return nil
}
