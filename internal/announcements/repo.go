package announcements

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// ListForGym returns the gym's announcements, newest first.
func (r *Repo) ListForGym(ctx context.Context, gymID int64) (_ []Announcement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.announcements.listForGym")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("gym.id", gymID))

	rows, err := r.db.Query(ctx, `
		SELECT id, gym_id, title, content, created_at
		FROM announcements
		WHERE gym_id = $1
		ORDER BY created_at DESC, id DESC
	`, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Announcement, 0)
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.GymID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating announcements: %w", err)
	}

	return list, nil
}

func (r *Repo) Create(ctx context.Context, gymID int64, draft Draft) (_ *Announcement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.announcements.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("gym.id", gymID))

	a := Announcement{
		GymID:   gymID,
		Title:   draft.Title,
		Content: draft.Content,
	}
	if err := r.db.QueryRow(ctx, `
		INSERT INTO announcements (gym_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, gymID, draft.Title, draft.Content).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, err
	}

	return &a, nil
}
