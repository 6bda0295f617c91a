package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/dannyatorres/fcs-analyzer/pkg/server"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/fcs"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/lender"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var profilesPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the FCS Analyzer web API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", "config/lender_profiles.json",
		"Path to the lender profiles JSON file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if env := os.Getenv("LENDER_PROFILES_PATH"); env != "" && !cmd.Flags().Changed("profiles") {
		profilesPath = env
	}

	directory, err := lender.NewFileDirectory(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load lender profiles: %w", err)
	}

	profiles := directory.List()
	if len(profiles) == 0 {
		logger.Warn().Str("path", profilesPath).Msg("no lender profiles loaded, generic defaults apply")
	} else {
		logger.Info().Int("count", len(profiles)).Msgf("Lender profiles found at `%s` successfully loaded.", profilesPath)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" {
		host = "0.0.0.0"
	}
	if port == "" {
		port = "8000"
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analyzer: fcs.NewAnalyzer(directory),
			Lenders:  directory,
		},
	})

	return webAPI.Start()
}
