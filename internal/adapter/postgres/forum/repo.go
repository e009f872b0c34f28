// Package forum implements the generator's persistence sink using PostgreSQL.
// It provides insert-returning-id operations for forum entities and an
// append-only operation for activity log records.
package forum

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/avoronov/forumsim/internal/adapter/postgres"
	"github.com/avoronov/forumsim/internal/domain"
)

// Repo provides forum persistence backed by PostgreSQL. It satisfies
// sim.Sink. All methods honor a transaction carried in the context.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new forum repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	createUserSQL = `INSERT INTO users (name) VALUES ($1) RETURNING id`

	createTopicSQL = `INSERT INTO topics (name, user_id) VALUES ($1, $2) RETURNING id`

	createCommentSQL = `
INSERT INTO comments (user_id, topic_id, parent_id, text)
VALUES ($1, $2, $3, $4)
RETURNING id`

	appendLogSQL = `
INSERT INTO logs (time, user_id, activity_type, activity_id, server_response, cookie, extra, run_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// CreateUser inserts a user and returns the storage-assigned id.
func (r *Repo) CreateUser(ctx context.Context, name string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	if err := q.QueryRow(ctx, createUserSQL, name).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "user", 0)
	}

	return id, nil
}

// CreateTopic inserts a topic owned by ownerID and returns the assigned id.
func (r *Repo) CreateTopic(ctx context.Context, name string, ownerID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	if err := q.QueryRow(ctx, createTopicSQL, name, ownerID).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "topic", 0)
	}

	return id, nil
}

// CreateComment inserts a comment (anonymous when UserID is nil, a reply when
// ParentID is set) and returns the assigned id.
func (r *Repo) CreateComment(ctx context.Context, comment domain.Comment) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, createCommentSQL,
		comment.UserID,
		comment.TopicID,
		comment.ParentID,
		comment.Text,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "comment", comment.TopicID)
	}

	return id, nil
}

// AppendLog inserts one activity log record.
func (r *Repo) AppendLog(ctx context.Context, rec domain.LogRecord) error {
	if !rec.Activity.Valid() {
		return fmt.Errorf("log record: %w",
			domain.NewValidationError("activity", fmt.Sprintf("unknown activity %d", rec.Activity)))
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, appendLogSQL,
		rec.Time,
		rec.UserID,
		int16(rec.Activity),
		rec.TargetID,
		rec.Status,
		rec.Cookie,
		rec.Extra,
		rec.RunID,
	)
	if err != nil {
		return postgres.MapError(err, "log", 0)
	}

	return nil
}
