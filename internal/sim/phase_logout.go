package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// logoutUsers runs the logout phase: count logged-in users each log out a
// flat 5-10 minutes after their last action, capped at the end of that day.
func (g *Generator) logoutUsers(ctx context.Context, count int) (PhaseResult, error) {
	var result PhaseResult

	if len(g.state.LoggedIn) == 0 {
		return PhaseResult{Skipped: true, Reason: "no logged-in users to log out"}, nil
	}

	for i := 0; i < count && len(g.state.LoggedIn) > 0; i++ {
		userID := pickRandom(g.rng, g.state.LoggedIn)

		last := g.state.LastAction[userID]
		loggedOutAt := clampToDay(last.Add(time.Duration(5+g.rng.IntN(6))*time.Minute), last)

		err := g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     loggedOutAt,
			UserID:   &userID,
			Activity: domain.ActivityLogout,
			Status:   domain.StatusOK,
			Cookie:   g.state.Cookies[userID],
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append logout: %w", err)
		}
		result.Events++

		g.state.LastAction[userID] = loggedOutAt
		g.state.Logout(userID)
	}

	return result, nil
}
