package sim

import (
	"context"
	"fmt"

	"github.com/avoronov/forumsim/internal/domain"
)

// createTopics runs the successful topic-creation phase: count logged-in
// users each open a new topic 0-3 hours plus 5-15 minutes after their last
// action. The new topic joins the open set.
func (g *Generator) createTopics(ctx context.Context, count int) (PhaseResult, error) {
	var result PhaseResult

	if len(g.state.LoggedIn) == 0 {
		return PhaseResult{Skipped: true, Reason: "no logged-in users to create topics"}, nil
	}

	for i := 0; i < count; i++ {
		userID := pickRandom(g.rng, g.state.LoggedIn)

		createdAt, err := Advance(g.rng, g.state.LastAction[userID], g.rng.IntN(4), 5, 15)
		if err != nil {
			return result, err
		}

		topicID, err := g.sink.CreateTopic(ctx, g.text.Title(), userID)
		if err != nil {
			return result, fmt.Errorf("create topic: %w", err)
		}

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     createdAt,
			UserID:   &userID,
			Activity: domain.ActivityCreateTopic,
			TargetID: &topicID,
			Status:   domain.StatusCreated,
			Cookie:   g.state.Cookies[userID],
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append create_topic: %w", err)
		}
		result.Events++

		g.state.LastAction[userID] = createdAt
		g.state.OpenTopic(topicID)
	}

	return result, nil
}
