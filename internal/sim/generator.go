package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/avoronov/forumsim/internal/domain"
)

// dayPhases defines the fixed per-day phase order.
var dayPhases = []string{
	"registration",
	"login",
	"topic_errors",
	"topics",
	"activity",
	"topic_deletes",
	"logouts",
}

// PhaseResult holds the outcome of one phase of one simulated day.
type PhaseResult struct {
	Events  int
	Skipped bool
	Reason  string // diagnostic for empty-working-set no-ops
}

// dayCounts are the per-day event counts, redrawn from the configured ranges
// at the start of every simulated day.
type dayCounts struct {
	registrations int
	logins        int
	topicErrors   int
	topics        int
	activity      int
	topicDeletes  int
	logouts       int
}

// Generator produces one month of forum activity. It is strictly
// single-writer: state, clock jitter and sink calls are all sequential, and
// later days depend on the state left by earlier days.
type Generator struct {
	log   *slog.Logger
	sink  Sink
	text  TextSynth
	tx    TxRunner
	rng   *rand.Rand
	cfg   Config
	runID uuid.UUID
	state *State
}

// New creates a Generator. The configuration is validated up front so phase
// ranges can never fail mid-run.
func New(log *slog.Logger, sink Sink, text TextSynth, tx TxRunner, cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		log:   log.With("component", "generator"),
		sink:  sink,
		text:  text,
		tx:    tx,
		rng:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1)),
		cfg:   cfg,
		runID: uuid.New(),
		state: NewState(),
	}, nil
}

// RunID identifies this generation run; every log row the run emits carries it.
func (g *Generator) RunID() uuid.UUID { return g.runID }

// State exposes the working set, mainly for tests and post-run inspection.
func (g *Generator) State() *State { return g.state }

// GenerateMonth simulates cfg.Days consecutive days starting at the first of
// the given month, carrying the working set forward between days. Each day is
// one atomic unit: a sink failure rolls the whole day back and aborts the run.
func (g *Generator) GenerateMonth(ctx context.Context, year int, month time.Month) error {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	g.log.Info("run started",
		slog.String("run_id", g.runID.String()),
		slog.String("start", start.Format(time.DateOnly)),
		slog.Int("days", g.cfg.Days),
	)

	for day := 0; day < g.cfg.Days; day++ {
		dayStart := start.AddDate(0, 0, day)

		err := g.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return g.runDay(txCtx, dayStart)
		})
		if err != nil {
			return fmt.Errorf("day %s: %w", dayStart.Format(time.DateOnly), err)
		}
	}

	g.log.Info("run completed",
		slog.String("run_id", g.runID.String()),
		slog.Int("users", len(g.state.UserIDs)),
		slog.Int("open_topics", len(g.state.OpenTopics)),
	)

	return nil
}

// runDay executes the seven phases in their fixed order for one simulated day.
func (g *Generator) runDay(ctx context.Context, dayStart time.Time) error {
	g.state.ResetDay(dayStart)
	counts := g.drawCounts()

	for _, phase := range dayPhases {
		start := time.Now()

		var (
			result PhaseResult
			err    error
		)
		switch phase {
		case "registration":
			result, err = g.registerUsers(ctx, dayStart, counts.registrations)
		case "login":
			result, err = g.loginUsers(ctx, counts.logins)
		case "topic_errors":
			result, err = g.failTopicCreates(ctx, dayStart, counts.topicErrors)
		case "topics":
			result, err = g.createTopics(ctx, counts.topics)
		case "activity":
			result, err = g.viewAndComment(ctx, dayStart, counts.activity)
		case "topic_deletes":
			result, err = g.deleteTopics(ctx, counts.topicDeletes)
		case "logouts":
			result, err = g.logoutUsers(ctx, counts.logouts)
		}
		if err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}

		if result.Skipped {
			g.log.Warn("phase skipped",
				slog.String("day", dayStart.Format(time.DateOnly)),
				slog.String("phase", phase),
				slog.String("reason", result.Reason),
			)
			continue
		}

		g.log.Debug("phase completed",
			slog.String("day", dayStart.Format(time.DateOnly)),
			slog.String("phase", phase),
			slog.Int("events", result.Events),
			slog.Duration("duration", time.Since(start)),
		)
	}

	return nil
}

// drawCounts redraws every phase count from its configured range.
func (g *Generator) drawCounts() dayCounts {
	return dayCounts{
		registrations: g.drawRange(g.cfg.RegistrationsMin, g.cfg.RegistrationsMax),
		logins:        g.drawRange(g.cfg.LoginsMin, g.cfg.LoginsMax),
		topicErrors:   g.drawRange(g.cfg.TopicErrorsMin, g.cfg.TopicErrorsMax),
		topics:        g.drawRange(g.cfg.TopicsMin, g.cfg.TopicsMax),
		activity:      g.drawRange(g.cfg.ActivityMin, g.cfg.ActivityMax),
		topicDeletes:  g.drawRange(g.cfg.TopicDeletesMin, g.cfg.TopicDeletesMax),
		logouts:       g.drawRange(g.cfg.LogoutsMin, g.cfg.LogoutsMax),
	}
}

func (g *Generator) drawRange(min, max int) int {
	return min + g.rng.IntN(max-min+1)
}

// firstVisit synthesizes an anonymous first visit at a random daytime hour
// (06..16) of the simulated day: a fresh cookie and a first-visit log record.
func (g *Generator) firstVisit(ctx context.Context, dayStart time.Time) (cookie string, visitedAt time.Time, err error) {
	hourShift := 6 + g.rng.IntN(11)
	visitedAt, err = Advance(g.rng, dayStart, hourShift, 1, 5)
	if err != nil {
		return "", time.Time{}, err
	}

	cookie = NewCookie(g.rng)

	err = g.sink.AppendLog(ctx, domain.LogRecord{
		Time:     visitedAt,
		Activity: domain.ActivityFirstVisit,
		Status:   domain.StatusOK,
		Cookie:   cookie,
		RunID:    g.runID,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("append first_visit: %w", err)
	}

	return cookie, visitedAt, nil
}
