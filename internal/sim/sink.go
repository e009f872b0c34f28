// Package sim implements the forum activity simulator: a deterministic-shape,
// pseudo-random-content generator that produces one month of causally ordered
// forum events (visits, registrations, logins, topics, comments, deletions,
// logouts) against an injected persistence sink.
package sim

import (
	"context"

	"github.com/avoronov/forumsim/internal/domain"
)

// Sink is the persistence boundary of the generator. Implementations assign
// entity ids on insert. Day-level atomicity is the caller's concern: the
// month driver wraps each simulated day in a transaction, so a failing call
// rolls back the whole day.
// Implemented by forum.Repo.
type Sink interface {
	CreateUser(ctx context.Context, name string) (int64, error)
	CreateTopic(ctx context.Context, name string, ownerID int64) (int64, error)
	CreateComment(ctx context.Context, comment domain.Comment) (int64, error)
	AppendLog(ctx context.Context, rec domain.LogRecord) error
}

// TextSynth produces human-like strings for user names, topic titles and
// comment bodies. The generator treats it as an external collaborator.
type TextSynth interface {
	Name() string
	Title() string
	Text(maxChars int) string
}

// TxRunner runs a function inside one atomic unit (one simulated day).
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
