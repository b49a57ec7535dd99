package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

const memberSelect = `
	SELECT m.id, m.member_id, m.name, m.email, m.age, m.phone_number, m.join_date, m.membership_type,
	       m.membership_status, m.expiry_date, m.plan_id, p.price, m.gym_id, g.name, g.payment_id, m.profile_url
	FROM members m
	JOIN gyms g ON g.id = m.gym_id
	LEFT JOIN membership_plans p ON p.id = m.plan_id
`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID, &m.MemberID, &m.Name, &m.Email, &m.Age, &m.PhoneNumber, &m.JoinDate, &m.MembershipType,
		&m.MembershipStatus, &m.ExpiryDate, &m.PlanID, &m.PlanPrice, &m.GymID, &m.GymName, &m.PaymentID, &m.ProfileURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FindByCredentials looks a member up by email (case-insensitive) and display member id.
// Display ids are stored upper-case.
func (r *Repo) FindByCredentials(ctx context.Context, email, memberID string) (_ *Member, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.findByCredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanMember(r.db.QueryRow(ctx, memberSelect+`
	WHERE lower(m.email) = lower($1) AND m.member_id = upper($2)
	`, email, memberID))
}

func (r *Repo) Get(ctx context.Context, id int64) (_ *Member, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("member.id", id))

	return scanMember(r.db.QueryRow(ctx, memberSelect+`
	WHERE m.id = $1
	`, id))
}

// IDByMemberID maps a display member id (e.g. GYM1-0042) to the table id.
func (r *Repo) IDByMemberID(ctx context.Context, memberID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.idByMemberID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int64
	err = r.db.QueryRow(ctx, `SELECT id FROM members WHERE member_id = upper($1)`, memberID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrMemberNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateProfile sets only the non-nil fields of the update.
func (r *Repo) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("member.id", id))

	tag, err := r.db.Exec(ctx, `
		UPDATE members
		SET name = COALESCE($2, name),
		    phone_number = COALESCE($3, phone_number),
		    age = COALESCE($4, age)
		WHERE id = $1
	`, id, update.Name, update.PhoneNumber, update.Age)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *Repo) UpdateProfilePicture(ctx context.Context, id int64, url string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.updateProfilePicture")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE members SET profile_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *Repo) UpdateEmail(ctx context.Context, id int64, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.updateEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE members SET email = $2 WHERE id = $1`, id, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ActivePlans returns the gym's active membership plans, cheapest first.
func (r *Repo) ActivePlans(ctx context.Context, gymID int64) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.activePlans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("gym.id", gymID))

	rows, err := r.db.Query(ctx, `
		SELECT id, gym_id, plan, price, active
		FROM membership_plans
		WHERE gym_id = $1 AND active
		ORDER BY price, id
	`, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]Plan, 0)
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.GymID, &p.Name, &p.Price, &p.Active); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Plan returns an active plan of the gym.
func (r *Repo) Plan(ctx context.Context, gymID, planID int64) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := &Plan{}
	err = r.db.QueryRow(ctx, `
		SELECT id, gym_id, plan, price, active
		FROM membership_plans
		WHERE id = $1 AND gym_id = $2 AND active
	`, planID, gymID).Scan(&p.ID, &p.GymID, &p.Name, &p.Price, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Gym(ctx context.Context, gymID int64) (_ *Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.members.gym")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		g                              Gym
		host, username, password, from *string
		port                           *int
	)
	err = r.db.QueryRow(ctx, `
		SELECT id, name, payment_id, smtp_host, smtp_port, smtp_username, smtp_password, smtp_from
		FROM gyms
		WHERE id = $1
	`, gymID).Scan(&g.ID, &g.Name, &g.PaymentID, &host, &port, &username, &password, &from)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gym %d: %w", gymID, err)
	}

	g.SMTP.Host = deref(host)
	g.SMTP.Username = deref(username)
	g.SMTP.Password = deref(password)
	g.SMTP.From = deref(from)
	if port != nil {
		g.SMTP.Port = *port
	}
	return &g, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
