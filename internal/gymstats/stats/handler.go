package stats

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router) {
	memberRouter.HandleFunc("/activity/streak", h.HandleStreak).Methods("GET", "OPTIONS").Name("me-activity-streak")
	memberRouter.HandleFunc("/activity/frequency", h.HandleFrequency).Methods("GET", "OPTIONS").Name("me-activity-frequency")
	memberRouter.HandleFunc("/activity/records", h.HandleRecords).Methods("GET", "OPTIONS").Name("me-activity-records")
	memberRouter.HandleFunc("/activity/summary", h.HandleSummary).Methods("GET", "OPTIONS").Name("me-activity-summary")
	adminRouter.HandleFunc("/members/{id}/activity/summary", h.HandleMemberSummary).Methods("GET", "OPTIONS").Name("admin-member-activity")
}

func memberFromSession(w http.ResponseWriter, r *http.Request) (int64, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return session.SubjectID, true
}

func (h *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.streak")
	defer span.End()

	memberID, ok := memberFromSession(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, struct {
		Streak int `json:"streak"`
	}{
		Streak: h.service.Streak(ctx, memberID),
	})
}

func (h *Handler) HandleFrequency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.frequency")
	defer span.End()

	memberID, ok := memberFromSession(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, struct {
		Buckets []activity.MonthlyCheckinBucket `json:"buckets"`
	}{
		Buckets: h.service.Frequency(ctx, memberID),
	})
}

func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.records")
	defer span.End()

	memberID, ok := memberFromSession(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, struct {
		Records []activity.PersonalRecord `json:"records"`
	}{
		Records: h.service.PersonalRecords(ctx, memberID),
	})
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.summary")
	defer span.End()

	memberID, ok := memberFromSession(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, h.service.Summary(ctx, memberID))
}

func (h *Handler) HandleMemberSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.memberSummary")
	defer span.End()

	memberID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || memberID <= 0 {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, h.service.Summary(ctx, memberID))
}
