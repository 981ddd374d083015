package main

import (
	"context"
	"fmt"
	"time"

	"placement-portal/internal/config"
	dbpostgres "placement-portal/internal/database/postgres"
	"placement-portal/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load staff, companies, opportunities and students from a YAML fixture",
	RunE:  runSeed,
}

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the YAML fixture (required)")
	_ = seedCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	fixture, err := seeder.LoadFixture(seedFile)
	if err != nil {
		return err
	}

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

	if err := (seeder.Runner{Seeders: seeder.FromFixture(fixture)}).Run(ctx, db); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d staff, %d companies, %d students\n",
		len(fixture.Staff), len(fixture.Companies), len(fixture.Students))
	return nil
}
