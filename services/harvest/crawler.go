package harvest

import (
	"context"
	"errors"
	"log/slog"

	"registry-harvester/lib/scrapers/registry"
	"registry-harvester/lib/scrapers/registry/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/harvest")

const progressEvery = 10

// Counters are the final tallies of one crawl run.
type Counters struct {
	Processed  int
	Saved      int
	Duplicates int
	Incomplete int
	Failed     int
}

// Crawler drives the full pipeline: roster pagination, per-student
// fan-out to the three detail pages, reconciliation and persistence.
// Everything runs strictly sequentially.
type Crawler struct {
	Client *core.Client
	Store  Store
	Policy Policy
	// first roster page, defaults to the registry list path
	ListUrl string
	// hard cap on roster pages, a guard against a malformed "Next"
	// affordance that loops; 0 means the default of 500
	MaxPages int
}

// Run walks the roster until the "Next" affordance disappears or the
// page cap is hit. A failure inside one student's pipeline skips that
// student; only a failure to fetch or parse the roster itself ends the
// crawl.
func (c Crawler) Run(ctx context.Context) (Counters, error) {
	ctx, span := tracer.Start(ctx, "crawler:Run")
	defer span.End()

	listUrl := c.ListUrl
	if listUrl == "" {
		listUrl = registry.ListPath
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = 500
	}

	var counters Counters
	for page := 0; listUrl != "" && page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return counters, err
		}

		slog.InfoContext(ctx, "scraping student list", "url", listUrl)
		rows, nextUrl, err := registry.ListPage(ctx, c.Client, listUrl)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to crawl roster page")
			return counters, err
		}

		for _, row := range rows {
			c.processRow(ctx, row, &counters)
			if counters.Processed%progressEvery == 0 {
				slog.InfoContext(ctx, "progress",
					"processed", counters.Processed,
					"saved", counters.Saved,
				)
			}
		}

		if nextUrl == "" {
			slog.InfoContext(ctx, "finished scraping all student pages")
		}
		listUrl = nextUrl
	}

	slog.InfoContext(ctx, "crawl complete",
		"processed", counters.Processed,
		"saved", counters.Saved,
		"duplicates", counters.Duplicates,
		"incomplete", counters.Incomplete,
		"failed", counters.Failed,
	)
	return counters, nil
}

func (c Crawler) processRow(ctx context.Context, row registry.Row, counters *Counters) {
	counters.Processed++
	slog.InfoContext(ctx, "processing student", "student", row.StudentNumber)

	transcript, err := registry.FetchTranscript(ctx, c.Client, row.StudentNumber)
	if err != nil {
		slog.ErrorContext(ctx, "failed to scrape transcript",
			"student", row.StudentNumber, "err", err)
		counters.Failed++
		return
	}
	if !transcript.Usable() {
		transcript, err = registry.FetchProgramList(ctx, c.Client, row.StudentNumber)
		if err != nil {
			slog.ErrorContext(ctx, "failed to scrape program list",
				"student", row.StudentNumber, "err", err)
			counters.Failed++
			return
		}
	}

	personal, err := registry.FetchPersonal(ctx, c.Client, row.StudentNumber)
	if err != nil {
		slog.ErrorContext(ctx, "failed to scrape personal details",
			"student", row.StudentNumber, "err", err)
		counters.Failed++
		return
	}
	sponsor, err := registry.FetchSponsor(ctx, c.Client, row.StudentNumber)
	if err != nil {
		slog.ErrorContext(ctx, "failed to scrape sponsor",
			"student", row.StudentNumber, "err", err)
		counters.Failed++
		return
	}

	rec, err := Reconcile(row, transcript, personal, sponsor, c.Policy)
	if err != nil {
		if errors.Is(err, ErrIncompleteRecord) {
			slog.WarnContext(ctx, "incomplete data for student, skipping",
				"student", row.StudentNumber, "err", err)
			counters.Incomplete++
			return
		}
		slog.ErrorContext(ctx, "failed to reconcile student",
			"student", row.StudentNumber, "err", err)
		counters.Failed++
		return
	}

	outcome, err := c.Store.Persist(ctx, rec)
	switch outcome {
	case OutcomeInserted:
		counters.Saved++
	case OutcomeSkipped:
		counters.Duplicates++
	case OutcomeFailed:
		slog.ErrorContext(ctx, "failed to save student",
			"student", row.StudentNumber, "err", err)
		counters.Failed++
	}
}
