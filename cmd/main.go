package main

import (
	"context"
	"fmt"
	"os"

	"trial-bridge/cmd/bootstrap"
	"trial-bridge/config"
	"trial-bridge/internal/fixture"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	root := &cobra.Command{
		Use:           "trialbridge",
		Short:         "Clinical trial portal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serve, &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  runMigrate,
	}, &cobra.Command{
		Use:   "seed",
		Short: "Migrate and load the demo dataset if the database is empty",
		RunE:  runSeed,
	})
	return root
}

// setup loads configuration and builds the logger every command shares.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, bootstrap.NewLogger(cfg.App), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cmd.Context(), cfg, log)
	if err != nil {
		log.Errorf("Failed to initialize application: %v", err)
		return err
	}

	if err := app.Run(cmd.Context()); err != nil {
		log.Errorf("Server stopped: %v", err)
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cmd.Context(), cfg, log)
	if err != nil {
		log.Errorf("Failed to migrate: %v", err)
		return err
	}
	(&bootstrap.App{DB: db}).Close()
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := bootstrap.OpenDatabase(ctx, cfg, log)
	if err != nil {
		log.Errorf("Failed to migrate: %v", err)
		return err
	}
	defer (&bootstrap.App{DB: db}).Close()

	if err := fixture.Seed(ctx, db, cfg.Auth.BcryptCost); err != nil {
		log.Errorf("Failed to seed: %v", err)
		return err
	}
	log.Info("Seed complete")
	return nil
}
