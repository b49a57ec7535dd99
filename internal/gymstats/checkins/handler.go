package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/realtime"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=checkins_test

type checkinsRepo interface {
	ListForMember(ctx context.Context, memberID int64) ([]Checkin, error)
	Add(ctx context.Context, memberID int64, checkInTime time.Time) (*Checkin, error)
	CheckOut(ctx context.Context, id int64, checkOutTime time.Time) (*Checkin, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, topic string, event realtime.Event) error
}

type activityInvalidator interface {
	Invalidate(memberID int64)
}

type Handler struct {
	repo        checkinsRepo
	publisher   eventPublisher
	invalidator activityInvalidator
	metrics     *metrics.Manager
}

func NewHandler(
	repo checkinsRepo,
	publisher eventPublisher,
	invalidator activityInvalidator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:        repo,
		publisher:   publisher,
		invalidator: invalidator,
		metrics:     metricsManager,
	}
}

func (h *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router) {
	memberRouter.HandleFunc("/checkins", h.HandleListMine).Methods("GET", "OPTIONS").Name("me-checkins")
	adminRouter.HandleFunc("/checkins", h.HandleCheckIn).Methods("POST", "OPTIONS").Name("admin-checkin")
	adminRouter.HandleFunc("/checkins/{id}/checkout", h.HandleCheckOut).Methods("PUT", "OPTIONS").Name("admin-checkout")
	adminRouter.HandleFunc("/members/{id}/checkins", h.HandleListForMember).Methods("GET", "OPTIONS").Name("admin-member-checkins")
}

func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.listMine")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	h.writeList(ctx, w, session.SubjectID)
}

func (h *Handler) HandleListForMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.listForMember")
	defer span.End()

	memberID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}
	h.writeList(ctx, w, memberID)
}

func (h *Handler) writeList(ctx context.Context, w http.ResponseWriter, memberID int64) {
	checkins, err := h.repo.ListForMember(ctx, memberID)
	if err != nil {
		log.Errorf("list checkins for member %d: %s", memberID, err)
		http.Error(w, "failed to get checkins", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, checkins)
}

type checkInRequest struct {
	MemberID    int64      `json:"member_id"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
}

func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.checkin")
	defer span.End()

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new checkin, unmarshal json params: %s", err)
		http.Error(w, "add checkin failed", http.StatusBadRequest)
		return
	}
	if req.MemberID <= 0 {
		http.Error(w, "error, member id missing", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int64("member.id", req.MemberID))

	checkInTime := time.Now()
	if req.CheckInTime != nil {
		checkInTime = *req.CheckInTime
	}

	checkin, err := h.repo.Add(ctx, req.MemberID, checkInTime)
	if errors.Is(err, ErrUnknownMember) {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("new checkin for member %d: %s", req.MemberID, err)
		http.Error(w, "add checkin failed", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterCheckins.Inc()
	}
	h.invalidator.Invalidate(checkin.MemberID)

	event, err := realtime.NewInsertEvent(Table, checkin)
	if err == nil {
		err = h.publisher.Publish(ctx, realtime.CheckinsTopic(checkin.MemberID), event)
	}
	if err != nil {
		// the row is stored, subscribers just miss the live update
		log.Errorf("publish checkin %d: %s", checkin.ID, err)
	}

	pkg.WriteJSON(w, http.StatusCreated, checkin)
}

type checkOutRequest struct {
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

func (h *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.checkout")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid checkin id", http.StatusBadRequest)
		return
	}

	var req checkOutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Errorf("checkout, unmarshal json params: %s", err)
			http.Error(w, "checkout failed", http.StatusBadRequest)
			return
		}
	}
	checkOutTime := time.Now()
	if req.CheckOutTime != nil {
		checkOutTime = *req.CheckOutTime
	}

	checkin, err := h.repo.CheckOut(ctx, id, checkOutTime)
	switch {
	case errors.Is(err, ErrCheckinNotFound):
		http.Error(w, "checkin not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrCheckOutBeforeCheckIn), errors.Is(err, ErrAlreadyCheckedOut):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("checkout %d: %s", id, err)
		http.Error(w, "checkout failed", http.StatusInternalServerError)
		return
	}

	h.invalidator.Invalidate(checkin.MemberID)
	pkg.WriteJSON(w, http.StatusOK, checkin)
}
