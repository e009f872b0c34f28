package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/avoronov/forumsim/internal/domain"
)

// memSink records every entity and log row the generator emits, assigning
// sequential ids the way the database would.
type memSink struct {
	users    []domain.User
	topics   []domain.Topic
	comments []domain.Comment
	logs     []domain.LogRecord

	createUserErr    error
	createTopicErr   error
	createCommentErr error
	appendLogErr     error
}

func (m *memSink) CreateUser(_ context.Context, name string) (int64, error) {
	if m.createUserErr != nil {
		return 0, m.createUserErr
	}
	id := int64(len(m.users) + 1)
	m.users = append(m.users, domain.User{ID: id, Name: name})
	return id, nil
}

func (m *memSink) CreateTopic(_ context.Context, name string, ownerID int64) (int64, error) {
	if m.createTopicErr != nil {
		return 0, m.createTopicErr
	}
	id := int64(len(m.topics) + 1)
	m.topics = append(m.topics, domain.Topic{ID: id, Name: name, UserID: ownerID})
	return id, nil
}

func (m *memSink) CreateComment(_ context.Context, comment domain.Comment) (int64, error) {
	if m.createCommentErr != nil {
		return 0, m.createCommentErr
	}
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return comment.ID, nil
}

func (m *memSink) AppendLog(_ context.Context, rec domain.LogRecord) error {
	if m.appendLogErr != nil {
		return m.appendLogErr
	}
	rec.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, rec)
	return nil
}

// logsOf returns the recorded log rows with the given activity, in append
// order.
func (m *memSink) logsOf(a domain.Activity) []domain.LogRecord {
	var out []domain.LogRecord
	for _, rec := range m.logs {
		if rec.Activity == a {
			out = append(out, rec)
		}
	}
	return out
}

// passTx runs the day function directly. Unit tests do not need rollback
// semantics; the real TxManager is covered by its own integration tests.
type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubText returns fixed strings so tests never depend on synthesized text.
type stubText struct{}

func (stubText) Name() string  { return "Jane Doe" }
func (stubText) Title() string { return "A topic title" }

func (stubText) Text(maxChars int) string {
	s := "a short comment body"
	if len(s) > maxChars {
		return s[:maxChars]
	}
	return s
}

// testConfig mirrors the default ranges with a fixed seed.
func testConfig() Config {
	return Config{
		Days:             30,
		Seed:             42,
		AnonymousRatio:   0.5,
		RegistrationsMin: 7, RegistrationsMax: 15,
		LoginsMin: 6, LoginsMax: 8,
		TopicErrorsMin: 2, TopicErrorsMax: 5,
		TopicsMin: 7, TopicsMax: 17,
		ActivityMin: 35, ActivityMax: 55,
		TopicDeletesMin: 5, TopicDeletesMax: 7,
		LogoutsMin: 5, LogoutsMax: 8,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGenerator(t *testing.T, sink *memSink, cfg Config) *Generator {
	t.Helper()

	g, err := New(discardLogger(), sink, stubText{}, passTx{}, cfg)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return g
}
