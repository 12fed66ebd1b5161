package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-apply/internal/config"
	"github.com/jonathan/internship-apply/internal/db"
	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/jonathan/internship-apply/internal/mail"
	"github.com/jonathan/internship-apply/internal/parsing"
	"github.com/jonathan/internship-apply/internal/rendering"
	"github.com/jonathan/internship-apply/internal/server"
	"github.com/jonathan/internship-apply/internal/tailoring"
)

var (
	serveAddr       string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing profile import, topic import, tailoring, and delivery endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to serve")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer client.Close()

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return err
	}
	pwCfg, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return err
	}

	extractor := parsing.NewExtractor(client)

	srv := server.New(server.Config{Addr: cfg.Addr, UseBrowser: cfg.UseBrowser}, server.Deps{
		DB:         database,
		Extractor:  extractor,
		Tailor:     tailoring.NewEngine(extractor),
		Renderer:   rendering.NewChromeRenderer(),
		Dispatcher: mail.NewDispatcher(db.NewCredentialStore(database)),
		JWT:        server.NewJWTService(jwtCfg),
		Passwords:  pwCfg,
	})

	return srv.Start()
}

// loadConfig builds the effective configuration: file, then environment,
// then defaults.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	cfg = cfg.Merge(config.Default())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
