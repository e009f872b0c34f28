package sim

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Days = 0

	sink := &memSink{}
	if _, err := New(discardLogger(), sink, stubText{}, passTx{}, cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestGenerateMonth_Smoke(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	cfg := testConfig()
	cfg.Days = 3
	g := newTestGenerator(t, sink, cfg)

	if err := g.GenerateMonth(context.Background(), 2025, time.January); err != nil {
		t.Fatalf("GenerateMonth: unexpected error: %v", err)
	}

	if len(sink.users) == 0 || len(sink.topics) == 0 || len(sink.comments) == 0 {
		t.Fatalf("expected users, topics and comments; got %d/%d/%d",
			len(sink.users), len(sink.topics), len(sink.comments))
	}
	for i, rec := range sink.logs {
		if rec.RunID != g.RunID() {
			t.Fatalf("row %d carries run id %s, want %s", i, rec.RunID, g.RunID())
		}
	}
}

func TestGenerateMonth_AbortsOnSinkFailure(t *testing.T) {
	t.Parallel()
	sinkErr := errors.New("connection reset")
	sink := &memSink{appendLogErr: sinkErr}
	cfg := testConfig()
	cfg.Days = 2
	g := newTestGenerator(t, sink, cfg)

	err := g.GenerateMonth(context.Background(), 2025, time.January)
	if err == nil {
		t.Fatal("expected the run to abort on a sink failure")
	}
	if !errors.Is(err, sinkErr) {
		t.Errorf("expected the sink error in the chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "2025-01-01") {
		t.Errorf("expected the failing day in the message, got %q", err)
	}
}

// TestMonth_Invariants drives a full month day by day and replays the emitted
// rows, checking the structural guarantees of the event stream.
func TestMonth_Invariants(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	cfg := testConfig()
	g := newTestGenerator(t, sink, cfg)
	ctx := context.Background()

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < cfg.Days; day++ {
		dayStart := start.AddDate(0, 0, day)
		before := len(sink.logs)

		if err := g.runDay(ctx, dayStart); err != nil {
			t.Fatalf("day %s: %v", dayStart.Format(time.DateOnly), err)
		}

		end := EndOfDay(dayStart)
		for _, rec := range sink.logs[before:] {
			if rec.Time.Before(dayStart) || rec.Time.After(end) {
				t.Fatalf("row at %v escaped day %s", rec.Time, dayStart.Format(time.DateOnly))
			}
		}
	}

	checkStatusCodes(t, sink)
	checkSessionAlternation(t, sink)
	checkDeletedTopicsRetired(t, sink)
	checkReplyParents(t, sink)
	checkAnonymousRatio(t, sink, cfg.AnonymousRatio)
}

// checkStatusCodes verifies each activity maps to its fixed response code.
func checkStatusCodes(t *testing.T, sink *memSink) {
	t.Helper()
	for i, rec := range sink.logs {
		var want int
		switch rec.Activity {
		case domain.ActivityFirstVisit, domain.ActivityLogin,
			domain.ActivityLogout, domain.ActivityViewTopic:
			want = domain.StatusOK
		case domain.ActivityRegistration, domain.ActivityCreateComment:
			want = domain.StatusCreated
		case domain.ActivityDeleteTopic:
			want = domain.StatusNoContent
		case domain.ActivityCreateTopic:
			if rec.UserID == nil || rec.TargetID == nil {
				want = domain.StatusUnauthorized
			} else {
				want = domain.StatusCreated
			}
		default:
			t.Fatalf("row %d has unknown activity %d", i, rec.Activity)
		}
		if rec.Status != want {
			t.Fatalf("row %d (%s): status %d, want %d", i, rec.Activity, rec.Status, want)
		}
		if len(rec.Cookie) != cookieLen {
			t.Fatalf("row %d: cookie %q has wrong length", i, rec.Cookie)
		}
	}
}

// checkSessionAlternation replays login/logout rows per user: no double
// login, no logout without a session.
func checkSessionAlternation(t *testing.T, sink *memSink) {
	t.Helper()
	active := make(map[int64]bool)
	for i, rec := range sink.logs {
		switch rec.Activity {
		case domain.ActivityLogin:
			if active[*rec.UserID] {
				t.Fatalf("row %d: user %d logged in twice", i, *rec.UserID)
			}
			active[*rec.UserID] = true
		case domain.ActivityLogout:
			if !active[*rec.UserID] {
				t.Fatalf("row %d: user %d logged out without a session", i, *rec.UserID)
			}
			delete(active, *rec.UserID)
		}
	}
}

// checkDeletedTopicsRetired verifies no row targets a topic after its
// deletion row.
func checkDeletedTopicsRetired(t *testing.T, sink *memSink) {
	t.Helper()
	deleted := make(map[int64]bool)
	for i, rec := range sink.logs {
		if rec.TargetID == nil {
			continue
		}
		if deleted[*rec.TargetID] {
			t.Fatalf("row %d (%s) targets deleted topic %d", i, rec.Activity, *rec.TargetID)
		}
		if rec.Activity == domain.ActivityDeleteTopic {
			deleted[*rec.TargetID] = true
		}
	}
	if len(deleted) == 0 {
		t.Error("expected at least one deletion over a full month")
	}
}

// checkReplyParents verifies every reply references an earlier comment on
// the same topic.
func checkReplyParents(t *testing.T, sink *memSink) {
	t.Helper()
	byID := make(map[int64]domain.Comment, len(sink.comments))
	for _, c := range sink.comments {
		byID[c.ID] = c
	}
	for _, c := range sink.comments {
		if c.ParentID == nil {
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			t.Fatalf("comment %d replies to unknown comment %d", c.ID, *c.ParentID)
		}
		if parent.TopicID != c.TopicID {
			t.Fatalf("comment %d replies across topics", c.ID)
		}
		if parent.ID >= c.ID {
			t.Fatalf("comment %d replies to a later comment %d", c.ID, parent.ID)
		}
	}
}

// checkAnonymousRatio verifies the anonymous share of comments tracks the
// configured ratio over a large sample.
func checkAnonymousRatio(t *testing.T, sink *memSink, want float64) {
	t.Helper()
	rows := sink.logsOf(domain.ActivityCreateComment)
	if len(rows) < 500 {
		t.Fatalf("sample too small for a ratio check: %d comments", len(rows))
	}

	anon := 0
	for _, rec := range rows {
		if rec.IsAnonymous() {
			anon++
		}
	}
	got := float64(anon) / float64(len(rows))
	if math.Abs(got-want) > 0.1 {
		t.Errorf("anonymous comment ratio %.3f deviates from %.2f over %d samples", got, want, len(rows))
	}
}

func TestMonth_DeterministicWithSeed(t *testing.T) {
	t.Parallel()
	run := func() *memSink {
		sink := &memSink{}
		cfg := testConfig()
		cfg.Days = 5
		g := newTestGenerator(t, sink, cfg)

		start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		for day := 0; day < cfg.Days; day++ {
			if err := g.runDay(context.Background(), start.AddDate(0, 0, day)); err != nil {
				t.Fatal(err)
			}
		}
		return sink
	}

	a, b := run(), run()
	if len(a.logs) != len(b.logs) {
		t.Fatalf("row counts differ: %d vs %d", len(a.logs), len(b.logs))
	}
	for i := range a.logs {
		ra, rb := a.logs[i], b.logs[i]
		// Run ids differ by design; everything else must match.
		if !ra.Time.Equal(rb.Time) || ra.Activity != rb.Activity ||
			ra.Status != rb.Status || ra.Cookie != rb.Cookie {
			t.Fatalf("row %d differs between identically seeded runs:\n%+v\n%+v", i, ra, rb)
		}
	}
}
