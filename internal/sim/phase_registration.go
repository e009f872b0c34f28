package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// registerUsers runs the first-visit/registration phase: count new visitors
// arrive during the day, and each registers 2-5 minutes after first visit.
// The new user inherits the visitor's cookie, joins the known-user set and
// has the registration time recorded as its last action.
func (g *Generator) registerUsers(ctx context.Context, dayStart time.Time, count int) (PhaseResult, error) {
	var result PhaseResult

	for i := 0; i < count; i++ {
		cookie, visitedAt, err := g.firstVisit(ctx, dayStart)
		if err != nil {
			return result, err
		}
		result.Events++

		registeredAt, err := Advance(g.rng, visitedAt, 0, 2, 5)
		if err != nil {
			return result, err
		}

		userID, err := g.sink.CreateUser(ctx, g.text.Name())
		if err != nil {
			return result, fmt.Errorf("create user: %w", err)
		}

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     registeredAt,
			UserID:   &userID,
			Activity: domain.ActivityRegistration,
			Status:   domain.StatusCreated,
			Cookie:   cookie,
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append registration: %w", err)
		}
		result.Events++

		g.state.AddUser(userID, cookie, registeredAt)
	}

	return result, nil
}
