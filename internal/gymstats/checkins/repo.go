package checkins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// ListForMember returns all check-ins of a member, most recent first.
func (r *Repo) ListForMember(ctx context.Context, memberID int64) (_ []Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.listForMember")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("member.id", memberID))

	rows, err := r.db.Query(ctx, `
		SELECT id, member_table_id, check_in_time, check_out_time, created_at
		FROM checkins
		WHERE member_table_id = $1
		ORDER BY check_in_time DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := make([]Checkin, 0)
	for rows.Next() {
		var c Checkin
		if err := rows.Scan(&c.ID, &c.MemberID, &c.CheckInTime, &c.CheckOutTime, &c.CreatedAt); err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("checkins.count", len(checkins)))
	return checkins, nil
}

func (r *Repo) Add(ctx context.Context, memberID int64, checkInTime time.Time) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("member.id", memberID))

	c := &Checkin{}
	err = r.db.QueryRow(ctx, `
		INSERT INTO checkins (member_table_id, check_in_time)
		VALUES ($1, $2)
		RETURNING id, member_table_id, check_in_time, check_out_time, created_at
	`, memberID, checkInTime).
		Scan(&c.ID, &c.MemberID, &c.CheckInTime, &c.CheckOutTime, &c.CreatedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownMember
		}
		return nil, err
	}
	return c, nil
}

// CheckOut sets the check-out time of an open check-in.
func (r *Repo) CheckOut(ctx context.Context, id int64, checkOutTime time.Time) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.checkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("checkin.id", id))

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

	c := &Checkin{}
	err = tx.QueryRow(ctx, `
		SELECT id, member_table_id, check_in_time, check_out_time, created_at
		FROM checkins
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&c.ID, &c.MemberID, &c.CheckInTime, &c.CheckOutTime, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCheckinNotFound
	}
	if err != nil {
		return nil, err
	}

	if c.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if checkOutTime.Before(c.CheckInTime) {
		return nil, ErrCheckOutBeforeCheckIn
	}

	if _, err = tx.Exec(ctx, `
		UPDATE checkins SET check_out_time = $2 WHERE id = $1
	`, id, checkOutTime); err != nil {
		return nil, err
	}

	c.CheckOutTime = &checkOutTime
	return c, nil
}
