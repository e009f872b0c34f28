// Command report extracts a date range of forum activity logs and writes
// daily aggregate metrics (new users, comment counts, anonymous-comment
// ratio, topic-count growth) to a CSV file.
//
// Flags:
//
//	--start-date  range start, YYYY-MM-DD (default 2025-01-01)
//	--end-date    range end, YYYY-MM-DD, inclusive (default 2025-01-10)
//	--output      output CSV filename (default data.csv)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/avoronov/forumsim/internal/adapter/postgres"
	"github.com/avoronov/forumsim/internal/app"
	"github.com/avoronov/forumsim/internal/config"
	"github.com/avoronov/forumsim/internal/report"
)

func main() {
	startFlag := flag.String("start-date", "2025-01-01", "range start (YYYY-MM-DD)")
	endFlag := flag.String("end-date", "2025-01-10", "range end, inclusive (YYYY-MM-DD)")
	outputFlag := flag.String("output", "data.csv", "output CSV filename")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	start, end, err := parseRange(*startFlag, *endFlag)
	if err != nil {
		logger.Error("invalid date range", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, appCfg, start, end, *outputFlag); err != nil {
		logger.Error("report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("report written",
		slog.String("output", *outputFlag),
		slog.String("start", start.Format(time.DateOnly)),
		slog.String("end", end.Format(time.DateOnly)),
	)
}

func parseRange(startRaw, endRaw string) (start, end time.Time, err error) {
	start, err = time.Parse(time.DateOnly, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %q: %w", startRaw, err)
	}

	end, err = time.Parse(time.DateOnly, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %q: %w", endRaw, err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", endRaw, startRaw)
	}

	return start, end, nil
}

func run(ctx context.Context, appCfg *config.Config, start, end time.Time, output string) error {
	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	records, err := report.NewRepo(pool).LogsBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("extract logs: %w", err)
	}

	rows := report.Aggregate(records)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}

	return nil
}
