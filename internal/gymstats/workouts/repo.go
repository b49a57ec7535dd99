package workouts

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/gymstats/activity"
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

// Create stores the session and all of its sets in a single transaction.
func (r *Repo) Create(ctx context.Context, session activity.WorkoutSession) (_ *activity.WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("member.id", session.MemberRef),
		attribute.Int("exercises.count", len(session.Exercises)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO workout_sessions (member_id, date, notes)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		session.MemberRef,
		session.Date.Time(time.UTC),
		session.Notes,
	).Scan(&session.ID)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	for _, set := range session.Exercises {
		if _, err = tx.Exec(ctx, `
			INSERT INTO workout_exercises (session_id, name, sets, reps, weight)
			VALUES ($1, $2, $3, $4, $5)
		`,
			session.ID,
			set.Name,
			set.Sets,
			set.Reps,
			set.Weight,
		); err != nil {
			return nil, fmt.Errorf("insert exercise %s: %w", set.Name, err)
		}
	}

	return &session, nil
}

// ListForMember returns the member's sessions with their sets, newest date first.
func (r *Repo) ListForMember(ctx context.Context, memberID int64) (_ []activity.WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listForMember")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("member.id", memberID))

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.member_id, s.date, s.notes, e.name, e.sets, e.reps, e.weight
		FROM workout_sessions s
		LEFT JOIN workout_exercises e ON e.session_id = s.id
		WHERE s.member_id = $1
		ORDER BY s.date DESC, s.id DESC, e.id ASC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]activity.WorkoutSession, 0)
	for rows.Next() {
		var (
			sessionID int64
			member    int64
			date      time.Time
			notes     string
			name      *string
			sets      *int
			reps      *int
			weight    *float64
		)
		if err := rows.Scan(&sessionID, &member, &date, &notes, &name, &sets, &reps, &weight); err != nil {
			return nil, err
		}

		if len(sessions) == 0 || sessions[len(sessions)-1].ID != sessionID {
			sessions = append(sessions, activity.WorkoutSession{
				ID:        sessionID,
				MemberRef: member,
				Date:      activity.DayOf(date, time.UTC),
				Notes:     notes,
				Exercises: make([]activity.ExerciseSet, 0),
			})
		}
		if name == nil {
			// session without sets
			continue
		}

		current := &sessions[len(sessions)-1]
		set := activity.ExerciseSet{Name: *name}
		if sets != nil {
			set.Sets = *sets
		}
		if reps != nil {
			set.Reps = *reps
		}
		if weight != nil {
			set.Weight = *weight
		}
		current.Exercises = append(current.Exercises, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return sessions, nil
}
