package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// maxCommentChars bounds generated comment bodies.
const maxCommentChars = 200

// viewAndComment runs the view+comment phase: count iterations of "view a
// random open topic, then comment on it 10-20 minutes later". The actor is
// anonymous with probability cfg.AnonymousRatio (forced anonymous while no
// user is logged in); anonymous actors arrive via a fresh first visit. The
// comment is a new top-level comment half the time, and always when the
// topic has no comments yet; otherwise it replies to a random existing
// comment on the same topic.
func (g *Generator) viewAndComment(ctx context.Context, dayStart time.Time, count int) (PhaseResult, error) {
	var result PhaseResult

	if len(g.state.OpenTopics) == 0 {
		return PhaseResult{Skipped: true, Reason: "no open topics for activity"}, nil
	}

	for i := 0; i < count; i++ {
		anonymous := g.rng.Float64() < g.cfg.AnonymousRatio
		if len(g.state.LoggedIn) == 0 {
			anonymous = true
		}

		var (
			userID *int64
			cookie string
			viewAt time.Time
			err    error
		)

		if anonymous {
			var visitedAt time.Time
			cookie, visitedAt, err = g.firstVisit(ctx, dayStart)
			if err != nil {
				return result, err
			}
			result.Events++

			viewAt, err = Advance(g.rng, visitedAt, g.rng.IntN(4), 1, 5)
			if err != nil {
				return result, err
			}
		} else {
			id := pickRandom(g.rng, g.state.LoggedIn)
			viewAt, err = Advance(g.rng, g.state.LastAction[id], g.rng.IntN(4), 3, 10)
			if err != nil {
				return result, err
			}
			cookie = g.state.Cookies[id]
			userID = &id
		}

		topicID := pickRandom(g.rng, g.state.OpenTopics)

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     viewAt,
			UserID:   userID,
			Activity: domain.ActivityViewTopic,
			TargetID: &topicID,
			Status:   domain.StatusOK,
			Cookie:   cookie,
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append view_topic: %w", err)
		}
		result.Events++

		if userID != nil {
			g.state.LastAction[*userID] = viewAt
		}

		commentAt, err := Advance(g.rng, viewAt, 0, 10, 20)
		if err != nil {
			return result, err
		}

		comment := domain.Comment{
			UserID:  userID,
			TopicID: topicID,
			Text:    g.text.Text(maxCommentChars),
		}

		extra := domain.ExtraNewThread
		existing := g.state.CommentIDs[topicID]
		if len(existing) > 0 && g.rng.Float64() >= 0.5 {
			parentID := pickRandom(g.rng, existing)
			comment.ParentID = &parentID
			extra = domain.ExtraReply
		}

		commentID, err := g.sink.CreateComment(ctx, comment)
		if err != nil {
			return result, fmt.Errorf("create comment: %w", err)
		}
		g.state.AddComment(topicID, commentID)

		err = g.sink.AppendLog(ctx, domain.LogRecord{
			Time:     commentAt,
			UserID:   userID,
			Activity: domain.ActivityCreateComment,
			TargetID: &topicID,
			Status:   domain.StatusCreated,
			Cookie:   cookie,
			Extra:    &extra,
			RunID:    g.runID,
		})
		if err != nil {
			return result, fmt.Errorf("append create_comment: %w", err)
		}
		result.Events++

		if userID != nil {
			g.state.LastAction[*userID] = commentAt
		}
	}

	return result, nil
}
