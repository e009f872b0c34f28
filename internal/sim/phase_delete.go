package sim

import (
	"context"
	"fmt"

	"github.com/avoronov/forumsim/internal/domain"
)

// deleteTopics runs the topic-deletion phase: count logged-in users each
// remove a random open topic 5-15 minutes after their last action. Deleted
// topics leave the open set and can no longer be targeted; their rows and
// log history remain.
func (g *Generator) deleteTopics(ctx context.Context, count int) (PhaseResult, error) {
	var result PhaseResult

	if len(g.state.LoggedIn) == 0 || len(g.state.OpenTopics) == 0 {
		return PhaseResult{Skipped: true, Reason: "no logged-in user or open topic to delete"}, nil
	}

	for i := 0; i < count && len(g.state.LoggedIn) > 0 && len(g.state.OpenTopics) > 0; i++ {
		userID := pickRandom(g.rng, g.state.LoggedIn)
		topicID := pickRandom(g.rng, g.state.OpenTopics)

		deletedAt, err := Advance(g.rng, g.state.LastAction[userID], 0, 5, 15)
		if err != nil {
			return result, err
		}

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     deletedAt,
			UserID:   &userID,
			Activity: domain.ActivityDeleteTopic,
			TargetID: &topicID,
			Status:   domain.StatusNoContent,
			Cookie:   g.state.Cookies[userID],
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append delete_topic: %w", err)
		}
		result.Events++

		g.state.LastAction[userID] = deletedAt
		g.state.CloseTopic(topicID)
	}

	return result, nil
}
