package members

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/mailer"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=members_test

type membersRepo interface {
	FindByCredentials(ctx context.Context, email, memberID string) (*Member, error)
	Get(ctx context.Context, id int64) (*Member, error)
	IDByMemberID(ctx context.Context, memberID string) (int64, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error
	UpdateProfilePicture(ctx context.Context, id int64, url string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	ActivePlans(ctx context.Context, gymID int64) ([]Plan, error)
	Plan(ctx context.Context, gymID, planID int64) (*Plan, error)
	Gym(ctx context.Context, gymID int64) (*Gym, error)
}

type otpStore interface {
	Save(ctx context.Context, memberID int64, email, code string) error
	Consume(ctx context.Context, memberID int64, email, code string) error
}

type mailSender interface {
	Send(ctx context.Context, cfg mailer.SMTPConfig, mail mailer.Mail) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	repo          membersRepo
	otp           otpStore
	mail          mailSender
	metrics       *metrics.Manager
	loc           *time.Location
	payeeFallback string

	// injectable for tests
	NowFunc       func() time.Time
	CodeFunc      func(n int) (string, error)
	ReferenceFunc func() string
}

func NewService(
	repo membersRepo,
	otp otpStore,
	mail mailSender,
	loc *time.Location,
	payeeFallback string,
	metricsManager *metrics.Manager,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:          repo,
		otp:           otp,
		mail:          mail,
		metrics:       metricsManager,
		loc:           loc,
		payeeFallback: payeeFallback,
		NowFunc:       time.Now,
		CodeFunc:      pkg.GenerateNumericCode,
		ReferenceFunc: func() string { return uuid.NewString() },
	}
}

// Authenticate resolves member login credentials to the member table id and gym id.
func (s *Service) Authenticate(ctx context.Context, email, memberID string) (int64, int64, error) {
	email = strings.TrimSpace(email)
	memberID = strings.TrimSpace(memberID)
	if email == "" || memberID == "" {
		return 0, 0, auth.ErrInvalidCredentials
	}

	m, err := s.repo.FindByCredentials(ctx, email, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return 0, 0, auth.ErrInvalidCredentials
	}
	if err != nil {
		return 0, 0, fmt.Errorf("find member: %w", err)
	}
	return m.ID, m.GymID, nil
}

func (s *Service) ResolveMemberID(ctx context.Context, memberID string) (int64, error) {
	return s.repo.IDByMemberID(ctx, strings.TrimSpace(memberID))
}

// Me returns the member with the membership status computed for today.
func (s *Service) Me(ctx context.Context, id int64) (*Member, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	withStatus := m.WithStatus(s.NowFunc(), s.loc)
	return &withStatus, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*Member, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	if update.PhoneNumber != nil {
		phone := strings.TrimSpace(*update.PhoneNumber)
		update.PhoneNumber = &phone
	}
	if update.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := validate.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, err)
	}

	if err := s.repo.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}
	return s.Me(ctx, id)
}

func (s *Service) UpdateProfilePicture(ctx context.Context, id int64, pictureURL string) error {
	pictureURL = strings.TrimSpace(pictureURL)
	if err := validate.Var(pictureURL, "required,url,max=2048"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, err)
	}
	if u, err := url.Parse(pictureURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: profile picture must be an http(s) url", ErrInvalidProfile)
	}
	return s.repo.UpdateProfilePicture(ctx, id, pictureURL)
}

func (s *Service) Plans(ctx context.Context, gymID int64) ([]Plan, error) {
	return s.repo.ActivePlans(ctx, gymID)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// RequestEmailChange mails a one-time code to the member's CURRENT address.
// Returns the address the code went to.
func (s *Service) RequestEmailChange(ctx context.Context, id int64, newEmail string) (string, error) {
	newEmail, err := normalizeEmail(newEmail)
	if err != nil {
		return "", err
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(m.Email, newEmail) {
		return "", fmt.Errorf("%w: new email matches the current one", ErrInvalidEmail)
	}

	gym, err := s.repo.Gym(ctx, m.GymID)
	if err != nil {
		return "", err
	}

	code, err := s.CodeFunc(OTPLength)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := s.otp.Save(ctx, id, newEmail, code); err != nil {
		return "", err
	}

	err = s.mail.Send(ctx, gym.SMTP, otpMail(m.Email, code))
	s.countOTPMail(err)
	if err != nil {
		log.Errorf("send email change otp for member %d: %s", id, err)
		return "", err
	}

	return m.Email, nil
}

func (s *Service) countOTPMail(err error) {
	if s.metrics == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	s.metrics.CounterOTPMails.WithLabelValues(result).Inc()
}

func otpMail(to, code string) mailer.Mail {
	return mailer.Mail{
		To:      to,
		Subject: "Your Email Change Verification Code",
		TextBody: "We received a request to change the email address of your Member Hub account.\n\n" +
			"Your verification code is " + code + ". It is valid for 10 minutes.\n\n" +
			"If you did not request this change, ignore this email or contact your gym.\n",
		HTMLBody: "<p>We received a request to change the email address of your Member Hub account.</p>" +
			"<p>Your verification code is <strong>" + code + "</strong>. It is valid for 10 minutes.</p>" +
			"<p>If you did not request this change, ignore this email or contact your gym.</p>",
	}
}

// VerifyEmailChange consumes the code and stores the new address lower-cased.
func (s *Service) VerifyEmailChange(ctx context.Context, id int64, newEmail, code string) error {
	newEmail, err := normalizeEmail(newEmail)
	if err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		return ErrInvalidOTP
	}
	if err := s.otp.Consume(ctx, id, newEmail, code); err != nil {
		return err
	}
	return s.repo.UpdateEmail(ctx, id, newEmail)
}

func (s *Service) PaymentIntent(ctx context.Context, id, planID int64) (*PaymentIntent, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.PaymentID == nil || strings.TrimSpace(*m.PaymentID) == "" {
		return nil, ErrPaymentNotConfigured
	}

	plan, err := s.repo.Plan(ctx, m.GymID, planID)
	if err != nil {
		return nil, err
	}

	payee := strings.TrimSpace(m.GymName)
	if payee == "" {
		payee = s.payeeFallback
	}

	intent := &PaymentIntent{
		Reference: s.ReferenceFunc(),
		PlanID:    plan.ID,
		Plan:      plan.Name,
		Amount:    plan.Price,
		Currency:  upiCurrency,
		PayeeVPA:  strings.TrimSpace(*m.PaymentID),
		PayeeName: payee,
		Note:      fmt.Sprintf("%s membership %s", plan.Name, m.MemberID),
	}
	intent.Link = intent.UPILink()
	return intent, nil
}
