// Package ingest drives the program ingestion pipeline: fetch each
// program page, extract the embedded data, download and convert the
// study plan, and upsert the assembled record into the corpus.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abitbot/abit-advisor-go/internal/ctxutil"
	"github.com/abitbot/abit-advisor-go/internal/document"
	"github.com/abitbot/abit-advisor-go/internal/logger"
	"github.com/abitbot/abit-advisor-go/internal/metrics"
	"github.com/abitbot/abit-advisor-go/internal/scraper/abit"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

// Options configures an ingestion run.
type Options struct {
	// DocumentDir is where downloaded study plans are stored.
	DocumentDir string
	// Metrics is an optional metrics recorder.
	Metrics *metrics.Metrics
}

// Outcome is the result of ingesting one slug.
type Outcome struct {
	Slug  string
	Title string // set on success
	Err   error  // set on failure
}

// Report summarizes one ingestion run. It is for operator visibility
// only; nothing else consumes it.
type Report struct {
	RunID    string
	Outcomes []Outcome
	Duration time.Duration
}

// Succeeded returns the number of slugs ingested successfully.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of slugs that failed to ingest.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Run ingests the given slugs sequentially. A failure at any step of
// one slug skips that slug and moves on; a previously stored record
// for a failed slug stays untouched. Run itself only fails when the
// context is done.
func Run(ctx context.Context, slugs []string, repo storage.ProgramRepository, scraper *abit.Scraper, log *logger.Logger, opts Options) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	ctx = ctxutil.WithRunID(ctx, report.RunID)
	log = log.WithModule("ingest")

	startTime := time.Now()
	log.InfoContext(ctx, "Starting ingestion run", "slugs", len(slugs))

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		slugCtx := ctxutil.WithSlug(ctx, slug)
		program, err := ingestOne(slugCtx, slug, repo, scraper, opts)
		if err != nil {
			log.WithError(err).ErrorContext(slugCtx, "Failed to ingest program")
			report.Outcomes = append(report.Outcomes, Outcome{Slug: slug, Err: err})
			if opts.Metrics != nil {
				opts.Metrics.RecordIngestOutcome(false)
			}
			continue
		}

		log.InfoContext(slugCtx, "Ingested program", "title", program.Title, "plan_chars", len(program.StudyPlanText))
		report.Outcomes = append(report.Outcomes, Outcome{Slug: slug, Title: program.Title})
		if opts.Metrics != nil {
			opts.Metrics.RecordIngestOutcome(true)
		}
	}

	report.Duration = time.Since(startTime)
	if opts.Metrics != nil {
		opts.Metrics.IngestDurationSeconds.Observe(report.Duration.Seconds())
		if count, err := repo.CountPrograms(ctx); err == nil {
			opts.Metrics.CorpusPrograms.Set(float64(count))
		}
	}

	log.InfoContext(ctx, "Ingestion run finished",
		"succeeded", report.Succeeded(), "failed", report.Failed(), "duration", report.Duration.String())
	return report, nil
}

// ingestOne runs the full pipeline for a single slug. The record is
// only saved once every field is in place, so a failure part-way
// through never half-updates the store.
func ingestOne(ctx context.Context, slug string, repo storage.ProgramRepository, scraper *abit.Scraper, opts Options) (*storage.Program, error) {
	start := time.Now()
	program, err := scraper.ScrapeProgram(ctx, slug)
	opts.Metrics.RecordScraperRequest("page", err, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	start = time.Now()
	planPath, err := scraper.DownloadPlan(ctx, program.ProgramID, opts.DocumentDir)
	opts.Metrics.RecordScraperRequest("plan", err, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	program.StudyPlanFile = planPath

	text, err := document.ExtractText(planPath)
	if err != nil {
		return nil, err
	}
	program.StudyPlanText = text
	program.CachedAt = time.Now().Unix()

	if err := repo.SaveProgram(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}
