package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogRecord is one row of the append-only activity log. UserID is nil for
// anonymous actors; TargetID references the topic acted on, where one exists;
// Extra carries the create-comment discriminator (ExtraNewThread or
// ExtraReply) and is nil for every other activity.
type LogRecord struct {
	ID       int64
	Time     time.Time
	UserID   *int64
	Activity Activity
	TargetID *int64
	Status   int
	Cookie   string
	Extra    *string
	RunID    uuid.UUID
}

// IsAnonymous reports whether the record was produced by an actor with no
// registered user identity.
func (r LogRecord) IsAnonymous() bool {
	return r.UserID == nil
}
