package main

import (
	"fmt"
	"os"

	"github.com/skillgenome/genome/internal/config"
	"github.com/skillgenome/genome/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
	serveData       string
	serveDataURL    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the dashboard, graph, clustering, forecast, and risk-zone endpoints over the ingested dataset.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveData, "data", "", "Path to the CSV dataset (defaults to GENOME_DATA env var)")
	serveCmd.Flags().StringVar(&serveDataURL, "data-url", "", "URL to fetch the dataset from (defaults to GENOME_DATA_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("data") {
		cfg.DataPath = serveData
	} else if cfg.DataPath == "" {
		cfg.DataPath = os.Getenv("GENOME_DATA")
	}
	if cmd.Flags().Changed("data-url") {
		cfg.DataURL = serveDataURL
	} else if cfg.DataURL == "" {
		cfg.DataURL = os.Getenv("GENOME_DATA_URL")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        servePort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		App:         cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
