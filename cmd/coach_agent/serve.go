package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/reece-davies/trampoline-coach-ai/internal/config"
	"github.com/reece-davies/trampoline-coach-ai/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveDataset string
	serveConfig  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
	Long:  `Start an HTTP server that exposes the grounded chat endpoint and the web UI.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "Path to the skill CSV dataset")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	// Missing credentials are a startup error, never a request-time one.
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:        cfg.Port,
		APIKey:      cfg.APIKey,
		Dataset:     cfg.Dataset,
		DatabaseURL: cfg.DatabaseURL,
		Model:       cfg.Model,
		Temperature: float32(cfg.Temperature),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveConfig merges flags, the optional config file, the environment, and
// the built-in defaults, in that priority order.
func resolveConfig() (config.Config, error) {
	cfg := config.Config{
		Port:    servePort,
		Dataset: serveDataset,
	}

	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(configFromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{
		Port:        8080,
		Dataset:     "data/skills.csv",
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func configFromEnv() config.Config {
	cfg := config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Model:       os.Getenv("COACH_MODEL"),
		Dataset:     os.Getenv("COACH_DATASET"),
	}
	if port, err := strconv.Atoi(os.Getenv("COACH_PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}
