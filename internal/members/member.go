package members

import (
	"errors"
	"time"

	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/mailer"
)

const (
	StatusActive       = "active"
	StatusExpired      = "expired"
	StatusExpiringSoon = "expiring_soon"

	expiringSoonDays = 7
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrGymNotFound          = errors.New("gym not found")
	ErrNothingToUpdate      = errors.New("nothing to update")
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidOTP           = errors.New("invalid or expired code")
	ErrPaymentNotConfigured = errors.New("gym payments not configured")
)

type Member struct {
	ID               int64      `json:"id"`
	MemberID         string     `json:"member_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Age              *int       `json:"age,omitempty"`
	PhoneNumber      *string    `json:"phone_number,omitempty"`
	JoinDate         time.Time  `json:"join_date"`
	MembershipType   string     `json:"membership_type"`
	MembershipStatus string     `json:"membership_status"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	PlanID           *int64     `json:"plan_id,omitempty"`
	PlanPrice        *float64   `json:"plan_price,omitempty"`
	GymID            int64      `json:"gym_id"`
	GymName          string     `json:"gym_name"`
	PaymentID        *string    `json:"payment_id,omitempty"`
	ProfileURL       *string    `json:"profile_url,omitempty"`
}

// WithStatus returns a copy with MembershipStatus derived from the expiry date:
// expired once the expiry day has passed, expiring_soon within a week of it,
// else the stored status.
func (m Member) WithStatus(now time.Time, loc *time.Location) Member {
	m.MembershipStatus = MembershipStatus(m.MembershipStatus, m.ExpiryDate, now, loc)
	return m
}

func MembershipStatus(stored string, expiry *time.Time, now time.Time, loc *time.Location) string {
	if expiry == nil {
		return stored
	}
	// DATE columns carry no zone, read the calendar day as stored
	expiryDay := activity.Day{Year: expiry.Year(), Month: expiry.Month(), Day: expiry.Day()}
	daysLeft := expiryDay.DaysSince(activity.DayOf(now, loc))
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= expiringSoonDays:
		return StatusExpiringSoon
	default:
		return stored
	}
}

type Plan struct {
	ID     int64   `json:"id"`
	GymID  int64   `json:"gym_id"`
	Name   string  `json:"plan"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

type Gym struct {
	ID        int64
	Name      string
	PaymentID *string
	SMTP      mailer.SMTPConfig
}

// ProfileUpdate holds the optional profile fields, nil means unchanged.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=2,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitnil,max=20"`
	Age         *int    `json:"age,omitempty" validate:"omitnil,gt=0,lt=150"`
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.PhoneNumber == nil && u.Age == nil
}
