package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"placement-portal/internal/config"
	"placement-portal/internal/database/migration"
	dbpostgres "placement-portal/internal/database/postgres"
	"placement-portal/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	n, err := migration.Runner{Source: migrations.FS, Logger: logger}.Run(ctx, db.SQLDB())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
	return nil
}
