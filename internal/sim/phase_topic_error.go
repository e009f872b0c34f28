package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// failTopicCreates runs the failed topic-creation phase: count unauthenticated
// submission attempts, each rejected with 401. If a known user is not logged
// in, the attempt is attributed to one of them; otherwise a brand-new
// anonymous visitor makes the attempt. No Topic entity is ever created here.
func (g *Generator) failTopicCreates(ctx context.Context, dayStart time.Time, count int) (PhaseResult, error) {
	var result PhaseResult

	for i := 0; i < count; i++ {
		var (
			userID *int64
			cookie string
			at     time.Time
			err    error
		)

		if offline := g.state.NotLoggedIn(); len(offline) > 0 {
			id := pickRandom(g.rng, offline)
			at, err = Advance(g.rng, g.state.LastAction[id], 0, 5, 15)
			if err != nil {
				return result, err
			}
			cookie = g.state.CookieFor(id, g.rng)
			userID = &id
		} else {
			cookie, at, err = g.firstVisit(ctx, dayStart)
			if err != nil {
				return result, err
			}
			result.Events++
		}

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     at,
			UserID:   userID,
			Activity: domain.ActivityCreateTopic,
			Status:   domain.StatusUnauthorized,
			Cookie:   cookie,
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append failed create_topic: %w", err)
		}
		result.Events++
	}

	return result, nil
}
