package sim

import (
	"context"
	"fmt"
	"slices"

	"github.com/avoronov/forumsim/internal/domain"
)

// loginUsers runs the login phase: up to count users that are not currently
// logged in log in, 5-10 hours plus 2-10 minutes after their last action.
func (g *Generator) loginUsers(ctx context.Context, count int) (PhaseResult, error) {
	var result PhaseResult

	eligible := g.state.NotLoggedIn()
	if len(eligible) == 0 {
		return PhaseResult{Skipped: true, Reason: "no users eligible for login"}, nil
	}

	for i := 0; i < count && len(eligible) > 0; i++ {
		idx := g.rng.IntN(len(eligible))
		userID := eligible[idx]
		eligible = slices.Delete(eligible, idx, idx+1)

		loggedInAt, err := Advance(g.rng, g.state.LastAction[userID], 5+g.rng.IntN(6), 2, 10)
		if err != nil {
			return result, err
		}

		cookie := g.state.CookieFor(userID, g.rng)

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     loggedInAt,
			UserID:   &userID,
			Activity: domain.ActivityLogin,
			Status:   domain.StatusOK,
			Cookie:   cookie,
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append login: %w", err)
		}
		result.Events++

		g.state.LastAction[userID] = loggedInAt
		g.state.Login(userID)
	}

	return result, nil
}
