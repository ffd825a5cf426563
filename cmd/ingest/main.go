// Package main provides the one-shot ingestion CLI: it scrapes the
// configured programs, downloads their study plans, and upserts the
// results into the corpus database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abitbot/abit-advisor-go/internal/config"
	"github.com/abitbot/abit-advisor-go/internal/ingest"
	"github.com/abitbot/abit-advisor-go/internal/logger"
	"github.com/abitbot/abit-advisor-go/internal/scraper"
	"github.com/abitbot/abit-advisor-go/internal/scraper/abit"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

var slugsFlag = flag.String("slugs", "", "Comma-separated program slugs to ingest (default: configured set)")

func main() {
	flag.Parse()

	cfg, err := config.LoadForMode(config.IngestMode)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting ingestion tool")

	slugs := cfg.ProgramSlugs
	if *slugsFlag != "" {
		slugs = parseSlugs(*slugsFlag)
	}
	if len(slugs) == 0 {
		fmt.Println("No program slugs to ingest")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	client := scraper.NewClient(cfg.ScraperTimeout, cfg.ScraperMaxRetries)
	siteScraper := abit.New(client)

	report, err := ingest.Run(ctx, slugs, db, siteScraper, log, ingest.Options{
		DocumentDir: cfg.DocumentDir(),
	})
	if err != nil {
		log.WithError(err).Fatal("Ingestion run aborted")
	}

	for _, outcome := range report.Outcomes {
		if outcome.Err != nil {
			fmt.Printf("FAIL %s: %v\n", outcome.Slug, outcome.Err)
		} else {
			fmt.Printf("OK   %s: %s\n", outcome.Slug, outcome.Title)
		}
	}
	fmt.Printf("Done in %s: %d succeeded, %d failed\n",
		report.Duration.Round(time.Millisecond), report.Succeeded(), report.Failed())

	if report.Failed() > 0 {
		os.Exit(1)
	}
}

func parseSlugs(raw string) []string {
	var slugs []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}
