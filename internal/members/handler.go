package members

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=members_test

type memberService interface {
	Me(ctx context.Context, id int64) (*Member, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*Member, error)
	UpdateProfilePicture(ctx context.Context, id int64, pictureURL string) error
	Plans(ctx context.Context, gymID int64) ([]Plan, error)
	RequestEmailChange(ctx context.Context, id int64, newEmail string) (string, error)
	VerifyEmailChange(ctx context.Context, id int64, newEmail, code string) error
	PaymentIntent(ctx context.Context, id, planID int64) (*PaymentIntent, error)
}

type Handler struct {
	service memberService
}

func NewHandler(service memberService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers /me routes on the member router and member lookups on the admin router.
// otpMiddlewares wrap the email change endpoints only.
func (h *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router, otpMiddlewares ...mux.MiddlewareFunc) {
	memberRouter.HandleFunc("", h.HandleMe).Methods("GET", "OPTIONS").Name("me")
	memberRouter.HandleFunc("/profile", h.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("me-profile")
	memberRouter.HandleFunc("/profile-picture", h.HandleUpdateProfilePicture).Methods("PUT", "OPTIONS").Name("me-profile-picture")
	memberRouter.HandleFunc("/plans", h.HandlePlans).Methods("GET", "OPTIONS").Name("me-plans")
	memberRouter.HandleFunc("/payments/intent", h.HandlePaymentIntent).Methods("POST", "OPTIONS").Name("me-payment-intent")

	emailRouter := memberRouter.PathPrefix("/email").Subrouter()
	emailRouter.HandleFunc("/otp", h.HandleEmailOTP).Methods("POST", "OPTIONS").Name("me-email-otp")
	emailRouter.HandleFunc("/verify", h.HandleEmailVerify).Methods("POST", "OPTIONS").Name("me-email-verify")
	emailRouter.Use(otpMiddlewares...)

	adminRouter.HandleFunc("/members/{id}", h.HandleGetMember).Methods("GET", "OPTIONS").Name("admin-member")
}

func memberSession(w http.ResponseWriter, r *http.Request) (*auth.Session, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.IsMember() {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, false
	}
	return session, true
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.me")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}
	h.writeMember(ctx, w, session.SubjectID)
}

func (h *Handler) HandleGetMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.get")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}
	h.writeMember(ctx, w, id)
}

func (h *Handler) writeMember(ctx context.Context, w http.ResponseWriter, id int64) {
	m, err := h.service.Me(ctx, id)
	if errors.Is(err, ErrMemberNotFound) {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get member %d: %s", id, err)
		http.Error(w, "failed to get member", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.updateProfile")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid profile update", http.StatusBadRequest)
		return
	}

	m, err := h.service.UpdateProfile(ctx, session.SubjectID, update)
	switch {
	case errors.Is(err, ErrNothingToUpdate), errors.Is(err, ErrInvalidProfile):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrMemberNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update profile of member %d: %s", session.SubjectID, err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, m)
}

type profilePictureRequest struct {
	URL string `json:"url"`
}

func (h *Handler) HandleUpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.updateProfilePicture")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	var req profilePictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid profile picture request", http.StatusBadRequest)
		return
	}

	err := h.service.UpdateProfilePicture(ctx, session.SubjectID, req.URL)
	switch {
	case errors.Is(err, ErrInvalidProfile):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrMemberNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update profile picture of member %d: %s", session.SubjectID, err)
		http.Error(w, "failed to update profile picture", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "updated")
}

func (h *Handler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.plans")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	plans, err := h.service.Plans(ctx, session.GymID)
	if err != nil {
		log.Errorf("list plans of gym %d: %s", session.GymID, err)
		http.Error(w, "failed to get plans", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, plans)
}

type emailChangeRequest struct {
	NewEmail string `json:"new_email"`
	Code     string `json:"code,omitempty"`
}

func (h *Handler) HandleEmailOTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.emailOTP")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	var req emailChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid email change request", http.StatusBadRequest)
		return
	}

	sentTo, err := h.service.RequestEmailChange(ctx, session.SubjectID, req.NewEmail)
	switch {
	case errors.Is(err, ErrInvalidEmail):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrMemberNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "failed to send verification email", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]string{"sent_to": sentTo})
}

func (h *Handler) HandleEmailVerify(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.emailVerify")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	var req emailChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid email change request", http.StatusBadRequest)
		return
	}

	err := h.service.VerifyEmailChange(ctx, session.SubjectID, req.NewEmail, req.Code)
	switch {
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidOTP):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrMemberNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("verify email change of member %d: %s", session.SubjectID, err)
		http.Error(w, "failed to change email", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "updated")
}

type paymentIntentRequest struct {
	PlanID int64 `json:"plan_id"`
}

func (h *Handler) HandlePaymentIntent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.members.paymentIntent")
	defer span.End()

	session, ok := memberSession(w, r)
	if !ok {
		return
	}

	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanID <= 0 {
		http.Error(w, "error, plan id missing", http.StatusBadRequest)
		return
	}

	intent, err := h.service.PaymentIntent(ctx, session.SubjectID, req.PlanID)
	switch {
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, ErrMemberNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, ErrPaymentNotConfigured):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Errorf("payment intent for member %d: %s", session.SubjectID, err)
		http.Error(w, "failed to create payment intent", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, intent)
}
