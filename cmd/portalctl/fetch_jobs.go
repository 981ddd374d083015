package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"placement-portal/internal/config"
	dbpostgres "placement-portal/internal/database/postgres"
	"placement-portal/internal/pipeline"
	"placement-portal/internal/repository"
	"placement-portal/internal/scraper"

	"github.com/spf13/cobra"
)

var fetchJobsCmd = &cobra.Command{
	Use:   "fetch-jobs",
	Short: "Import listings from external job boards and expire stale ones",
	Example: "  portalctl fetch-jobs\n" +
		"  portalctl fetch-jobs --sources sources.yaml --workers 8 --rps 10 --expire-days 14",
	RunE: runFetchJobs,
}

var (
	fetchSources    string
	fetchWorkers    int
	fetchRPS        int
	fetchExpireDays int
	fetchTimeout    time.Duration
)

func init() {
	fetchJobsCmd.Flags().StringVar(&fetchSources, "sources", "", "YAML file listing the boards to read (defaults to EXTERNAL_JOBS_SOURCES, then JSearch only)")
	fetchJobsCmd.Flags().IntVar(&fetchWorkers, "workers", 0, "Concurrent writers per source (defaults to EXTERNAL_JOBS_WORKERS)")
	fetchJobsCmd.Flags().IntVar(&fetchRPS, "rps", -1, "Writes per second per source, 0 for unlimited (defaults to EXTERNAL_JOBS_RPS)")
	fetchJobsCmd.Flags().IntVar(&fetchExpireDays, "expire-days", -1, "Deactivate listings not seen for this many days, 0 to skip (defaults to EXTERNAL_JOBS_EXPIRE_AFTER)")
	fetchJobsCmd.Flags().DurationVar(&fetchTimeout, "timeout", 15*time.Minute, "Overall time limit")

	rootCmd.AddCommand(fetchJobsCmd)
}

type fetchJobsOutput struct {
	Sources []pipeline.Report `json:"sources"`
	Expired int64             `json:"expired"`
}

func runFetchJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ec := cfg.ExternalJobs

	sources := scraper.DefaultSources()
	if path := pickFlag(fetchSources, ec.SourcesFile); path != "" {
		if sources, err = scraper.LoadSources(path); err != nil {
			return err
		}
	}
	fetchers, err := scraper.BuildFetchers(sources, scraper.Options{JSearchAPIKey: ec.JSearchAPIKey})
	if err != nil {
		return err
	}

	params := pipeline.ImportParams{Workers: ec.Workers, RPS: ec.RPS}
	if fetchWorkers > 0 {
		params.Workers = fetchWorkers
	}
	if fetchRPS >= 0 {
		params.RPS = fetchRPS
	}
	expireAfter := ec.ExpireAfter
	if fetchExpireDays >= 0 {
		expireAfter = time.Duration(fetchExpireDays) * 24 * time.Hour
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	importer := pipeline.NewExternalJobImporter(repository.NewPostgresExternalJobRepository(db), logger)

	out := fetchJobsOutput{}
	out.Sources, err = importer.Run(ctx, fetchers, params)
	if err != nil {
		return err
	}
	if expireAfter > 0 {
		if out.Expired, err = importer.Expire(ctx, expireAfter); err != nil {
			return fmt.Errorf("expire listings: %w", err)
		}
	}
	return writeJSON(cmd, out)
}

func pickFlag(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}
