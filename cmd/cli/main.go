package main

import (
	"encoding/json"
	"fmt"
	"os"

	handlers "github.com/dannyatorres/fcs-analyzer/pkg/handlers/analysis"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/fcs"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/lender"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilesPath       string
	additionalWithhold float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fcs-analyze <report-file>",
		Short: "Analyze an FCS report file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", "config/lender_profiles.json",
		"Path to the lender profiles JSON file")
	rootCmd.Flags().Float64VarP(&additionalWithhold, "withhold", "w", fcs.DefaultAdditionalWithhold,
		"Additional withholding tolerance in percentage points of revenue")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	reportText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	directory, err := lender.NewFileDirectory(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load lender profiles: %w", err)
	}

	analyzer := fcs.NewAnalyzer(directory)
	analysis, err := analyzer.Analyze(ctx, string(reportText), additionalWithhold)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(handlers.ToAnalyzeResponse(analysis), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
