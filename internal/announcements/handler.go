package announcements

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=announcements_test

type announcementsRepo interface {
	ListForGym(ctx context.Context, gymID int64) ([]Announcement, error)
	Create(ctx context.Context, gymID int64, draft Draft) (*Announcement, error)
}

type Handler struct {
	repo announcementsRepo
}

func NewHandler(repo announcementsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router) {
	memberRouter.HandleFunc("/announcements", handler.handleList).Methods("GET", "OPTIONS").Name("me-announcements")
	adminRouter.HandleFunc("/announcements", handler.handleList).Methods("GET", "OPTIONS").Name("admin-announcements")
	adminRouter.HandleFunc("/announcements", handler.handleCreate).Methods("POST", "OPTIONS").Name("admin-announcements-new")
}

type listResponse struct {
	Announcements []Announcement `json:"announcements"`
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.announcements.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	list, err := handler.repo.ListForGym(ctx, session.GymID)
	if err != nil {
		log.Errorf("list announcements for gym %d: %s", session.GymID, err)
		http.Error(w, "failed to get announcements", http.StatusInternalServerError)
		return
	}

	for i := range list {
		rendered, err := RenderMarkdown(list[i].Content)
		if err != nil {
			log.Warnf("announcement %d: %s", list[i].ID, err)
			continue
		}
		list[i].HTML = rendered
	}

	pkg.WriteJSON(w, http.StatusOK, listResponse{Announcements: list})
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.announcements.create")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok || !session.IsAdmin() {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid announcement", http.StatusBadRequest)
		return
	}
	draft, err := draft.Normalize()
	if err != nil {
		http.Error(w, ErrInvalidAnnouncement.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.repo.Create(ctx, session.GymID, draft)
	if err != nil {
		log.Errorf("create announcement for gym %d: %s", session.GymID, err)
		http.Error(w, "failed to create announcement", http.StatusInternalServerError)
		return
	}
	if created.HTML, err = RenderMarkdown(created.Content); err != nil {
		log.Warnf("announcement %d: %s", created.ID, err)
	}

	log.Tracef("new announcement %d [%s] for gym %d", created.ID, created.Title, session.GymID)
	pkg.WriteJSON(w, http.StatusCreated, created)
}
