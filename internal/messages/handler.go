package messages

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=messages_test

type messageService interface {
	Conversation(ctx context.Context, gymID, memberID int64) ([]Message, error)
	GroupedConversation(ctx context.Context, gymID, memberID int64) ([]DateGroup, error)
	Send(ctx context.Context, draft Message) (*Message, error)
	MarkRead(ctx context.Context, gymID, memberID int64, readerType string) (int64, error)
}

type Handler struct {
	service messageService
}

func NewHandler(service messageService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(memberRouter, adminRouter *mux.Router) {
	memberRouter.HandleFunc("/messages", h.HandleMyConversation).Methods("GET", "OPTIONS").Name("me-messages")
	memberRouter.HandleFunc("/messages", h.HandleMemberSend).Methods("POST", "OPTIONS").Name("me-messages-send")
	memberRouter.HandleFunc("/messages/read", h.HandleMemberMarkRead).Methods("PUT", "OPTIONS").Name("me-messages-read")

	adminRouter.HandleFunc("/members/{id}/messages", h.HandleAdminConversation).Methods("GET", "OPTIONS").Name("admin-messages")
	adminRouter.HandleFunc("/members/{id}/messages", h.HandleAdminSend).Methods("POST", "OPTIONS").Name("admin-messages-send")
	adminRouter.HandleFunc("/members/{id}/messages/read", h.HandleAdminMarkRead).Methods("PUT", "OPTIONS").Name("admin-messages-read")
}

type sendRequest struct {
	Content string `json:"content"`
}

type conversationResponse struct {
	Groups []DateGroup `json:"groups"`
}

func sessionOf(w http.ResponseWriter, r *http.Request) (*auth.Session, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, false
	}
	return session, true
}

func memberIDVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	memberID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || memberID <= 0 {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return 0, false
	}
	return memberID, true
}

func (h *Handler) HandleMyConversation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.myConversation")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	h.writeConversation(ctx, w, session.GymID, session.SubjectID)
}

func (h *Handler) HandleAdminConversation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.adminConversation")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDVar(w, r)
	if !ok {
		return
	}
	h.writeConversation(ctx, w, session.GymID, memberID)
}

func (h *Handler) writeConversation(ctx context.Context, w http.ResponseWriter, gymID, memberID int64) {
	groups, err := h.service.GroupedConversation(ctx, gymID, memberID)
	if err != nil {
		log.Errorf("conversation of member %d: %s", memberID, err)
		http.Error(w, "failed to get messages", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, conversationResponse{Groups: groups})
}

func (h *Handler) HandleMemberSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.memberSend")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid message", http.StatusBadRequest)
		return
	}
	h.send(ctx, w, FromMember(session.GymID, session.SubjectID, req.Content))
}

func (h *Handler) HandleAdminSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.adminSend")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDVar(w, r)
	if !ok {
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid message", http.StatusBadRequest)
		return
	}
	h.send(ctx, w, FromAdmin(session.GymID, memberID, req.Content))
}

func (h *Handler) send(ctx context.Context, w http.ResponseWriter, draft Message) {
	msg, err := h.service.Send(ctx, draft)
	if errors.Is(err, ErrInvalidContent) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("send message from %s %d: %s", draft.SenderType, draft.SenderID, err)
		http.Error(w, "failed to send message", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, msg)
}

func (h *Handler) HandleMemberMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.memberMarkRead")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	h.markRead(ctx, w, session.GymID, session.SubjectID, ParticipantMember)
}

func (h *Handler) HandleAdminMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messages.adminMarkRead")
	defer span.End()

	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	memberID, ok := memberIDVar(w, r)
	if !ok {
		return
	}
	h.markRead(ctx, w, session.GymID, memberID, ParticipantAdmin)
}

func (h *Handler) markRead(ctx context.Context, w http.ResponseWriter, gymID, memberID int64, readerType string) {
	marked, err := h.service.MarkRead(ctx, gymID, memberID, readerType)
	if err != nil {
		log.Errorf("mark messages read for member %d (%s): %s", memberID, readerType, err)
		http.Error(w, "failed to mark messages read", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, map[string]int64{"marked": marked})
}
