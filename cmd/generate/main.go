// Command generate populates the forum schema with one simulated month of
// activity: registrations, logins, topics, views, comments, deletions and
// logouts, causally ordered per user per day. It is intended to be run
// offline against an otherwise idle database.
//
// Flags:
//
//	--year        simulated year (default 2025)
//	--month       simulated month 1-12 (default 1)
//	--days        number of consecutive days to simulate (overrides config)
//	--seed        random seed for reproducible runs (overrides config)
//	--sim-config  path to generator YAML config file
//	--migrate     apply embedded schema migrations before generating
//	--dry-run     generate without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (goose)
	"github.com/pressly/goose/v3"

	"github.com/avoronov/forumsim/internal/adapter/faker"
	"github.com/avoronov/forumsim/internal/adapter/postgres"
	"github.com/avoronov/forumsim/internal/adapter/postgres/forum"
	"github.com/avoronov/forumsim/internal/app"
	"github.com/avoronov/forumsim/internal/config"
	"github.com/avoronov/forumsim/internal/domain"
	"github.com/avoronov/forumsim/internal/sim"
	"github.com/avoronov/forumsim/migrations"
)

// Compile-time interface assertions.
var (
	_ sim.Sink     = (*forum.Repo)(nil)
	_ sim.TxRunner = (*postgres.TxManager)(nil)
)

func main() {
	yearFlag := flag.Int("year", 2025, "simulated year")
	monthFlag := flag.Int("month", 1, "simulated month (1-12)")
	daysFlag := flag.Int("days", 0, "days to simulate (overrides config)")
	seedFlag := flag.Int64("seed", 0, "random seed (overrides config)")
	simConfigFlag := flag.String("sim-config", "", "path to generator YAML config file")
	migrateFlag := flag.Bool("migrate", false, "apply schema migrations before generating")
	dryRunFlag := flag.Bool("dry-run", false, "generate without writing to the database")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)
	logger.Info("forumsim generate", slog.String("version", app.BuildVersion()))

	// Load generator config.
	simCfg, err := sim.LoadConfig(*simConfigFlag)
	if err != nil {
		logger.Error("load generator config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *daysFlag > 0 {
		simCfg.Days = *daysFlag
	}
	if *seedFlag != 0 {
		simCfg.Seed = *seedFlag
	}

	if *monthFlag < 1 || *monthFlag > 12 {
		logger.Error("month must be in 1..12", slog.Int("month", *monthFlag))
		os.Exit(1)
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := run(ctx, logger, appCfg, simCfg, *yearFlag, time.Month(*monthFlag), *migrateFlag, *dryRunFlag); err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("generation completed successfully")
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	appCfg *config.Config,
	simCfg *sim.Config,
	year int,
	month time.Month,
	migrate, dryRun bool,
) error {
	synth := faker.New(uint64(simCfg.Seed))

	if dryRun {
		sink := &discardSink{}
		gen, err := sim.New(logger, sink, synth, noopTxRunner{}, *simCfg)
		if err != nil {
			return err
		}
		if err := gen.GenerateMonth(ctx, year, month); err != nil {
			return err
		}
		logger.Info("dry run finished",
			slog.Int("users", int(sink.users)),
			slog.Int("topics", int(sink.topics)),
			slog.Int("comments", int(sink.comments)),
			slog.Int("log_records", sink.logs),
		)
		return nil
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := applyMigrations(ctx, appCfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	gen, err := sim.New(logger, forum.New(pool), synth, postgres.NewTxManager(pool), *simCfg)
	if err != nil {
		return err
	}

	logger.Info("starting generation",
		slog.String("run_id", gen.RunID().String()),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.Int("days", simCfg.Days),
	)

	return gen.GenerateMonth(ctx, year, month)
}

// applyMigrations runs the embedded goose migrations (goose requires *sql.DB).
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// discardSink counts entities without persisting anything (dry runs).
type discardSink struct {
	users    int64
	topics   int64
	comments int64
	logs     int
}

func (s *discardSink) CreateUser(context.Context, string) (int64, error) {
	s.users++
	return s.users, nil
}

func (s *discardSink) CreateTopic(context.Context, string, int64) (int64, error) {
	s.topics++
	return s.topics, nil
}

func (s *discardSink) CreateComment(context.Context, domain.Comment) (int64, error) {
	s.comments++
	return s.comments, nil
}

func (s *discardSink) AppendLog(context.Context, domain.LogRecord) error {
	s.logs++
	return nil
}

// noopTxRunner satisfies sim.TxRunner for dry runs.
type noopTxRunner struct{}

func (noopTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
