package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Create(ctx context.Context, session activity.WorkoutSession) (*activity.WorkoutSession, error)
	ListForMember(ctx context.Context, memberID int64) ([]activity.WorkoutSession, error)
}

type activityInvalidator interface {
	Invalidate(memberID int64)
}

type Handler struct {
	repo        workoutsRepo
	invalidator activityInvalidator
	metrics     *metrics.Manager
}

func NewHandler(repo workoutsRepo, invalidator activityInvalidator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:        repo,
		invalidator: invalidator,
		metrics:     metricsManager,
	}
}

func (h *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router) {
	memberRouter.HandleFunc("/workouts", h.HandleList).Methods("GET", "OPTIONS").Name("me-workouts")
	memberRouter.HandleFunc("/workouts", h.HandleCreate).Methods("POST").Name("me-workouts-new")
	adminRouter.HandleFunc("/members/{id}/workouts", h.HandleListForMember).Methods("GET", "OPTIONS").Name("admin-member-workouts")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	h.writeList(ctx, w, session.SubjectID)
}

func (h *Handler) HandleListForMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listForMember")
	defer span.End()

	memberID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}
	h.writeList(ctx, w, memberID)
}

func (h *Handler) writeList(ctx context.Context, w http.ResponseWriter, memberID int64) {
	sessions, err := h.repo.ListForMember(ctx, memberID)
	if err != nil {
		log.Errorf("list workouts for member %d: %s", memberID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, sessions)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	workout, err := req.ToSession(session.SubjectID)
	if errors.Is(err, ErrInvalidWorkout) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("new workout: %s", err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("exercises.count", len(workout.Exercises)))

	created, err := h.repo.Create(ctx, workout)
	if err != nil {
		log.Errorf("new workout for member %d: %s", session.SubjectID, err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterWorkouts.Inc()
	}
	h.invalidator.Invalidate(session.SubjectID)

	pkg.WriteJSON(w, http.StatusCreated, created)
}
