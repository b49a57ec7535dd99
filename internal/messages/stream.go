package messages

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/gymstats/checkins"
	"github.com/2beens/memberhub/internal/realtime"
)

//go:generate mockgen -source=$GOFILE -destination=stream_mocks_test.go -package=messages_test

const (
	StreamKindMessage = "message"
	StreamKindCheckin = checkins.NotificationKind

	streamBuffer   = 32
	writeTimeout   = 10 * time.Second
	pongTimeout    = 60 * time.Second
	pingInterval   = pongTimeout * 9 / 10
	maxClientFrame = 512

	maxDeliveredTracked = 256
)

type insertSubscriber interface {
	OnInsert(ctx context.Context, topic string, callback func(realtime.Event)) (func(), error)
}

type checkinNotifier interface {
	FromEvent(event realtime.Event) (*checkins.Notification, bool)
}

// StreamEvent is one frame pushed to the member's socket.
type StreamEvent struct {
	Kind         string                 `json:"kind"`
	Message      *Message               `json:"message,omitempty"`
	Notification *checkins.Notification `json:"notification,omitempty"`
}

// StreamHandler pushes new conversation messages and fresh check-in
// notifications to a connected member over a websocket.
type StreamHandler struct {
	subscriber     insertSubscriber
	notifier       checkinNotifier
	allowedOrigins map[string]struct{}
	upgrader       websocket.Upgrader
}

func NewStreamHandler(subscriber insertSubscriber, notifier checkinNotifier, allowedOrigins []string) *StreamHandler {
	h := &StreamHandler{
		subscriber:     subscriber,
		notifier:       notifier,
		allowedOrigins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		h.allowedOrigins[o] = struct{}{}
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *StreamHandler) SetupRoutes(memberRouter *mux.Router) {
	memberRouter.HandleFunc("/stream", h.HandleStream).Methods("GET").Name("me-stream")
}

// checkOrigin allows non-browser clients (no Origin) and configured origins.
func (h *StreamHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.allowedOrigins[origin]; ok {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.IsMember() {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader already replied with an http error
		log.Debugf("stream upgrade for member %d: %s", session.SubjectID, err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	logger := log.WithFields(log.Fields{"conn": connID, "member": session.SubjectID})
	logger.Debug("stream opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan StreamEvent, streamBuffer)
	push := func(ev StreamEvent) {
		select {
		case out <- ev:
		case <-ctx.Done():
		default:
			logger.Warnf("stream buffer full, dropping %s event", ev.Kind)
		}
	}

	teardowns, err := h.subscribe(ctx, session, push)
	defer func() {
		for _, teardown := range teardowns {
			teardown()
		}
		logger.Debug("stream closed")
	}()
	if err != nil {
		logger.Errorf("stream subscribe: %s", err)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"),
			time.Now().Add(writeTimeout),
		)
		return
	}

	go readPump(conn, cancel)
	writePump(ctx, conn, out, logger)
}

// subscribe opens the message and check-in subscriptions. Teardowns of the
// subscriptions that did open are returned even on error.
func (h *StreamHandler) subscribe(ctx context.Context, session *auth.Session, push func(StreamEvent)) ([]func(), error) {
	var teardowns []func()

	var delivered []Message
	stopMessages, err := h.subscriber.OnInsert(ctx, realtime.MessagesTopic(session.SubjectID), func(event realtime.Event) {
		var m Message
		if err := event.Decode(&m); err != nil {
			log.Warnf("stream, decode message event: %s", err)
			return
		}
		if m.GymID != session.GymID {
			return
		}
		merged := Merge(delivered, []Message{m}, session.SubjectID)
		if len(merged) == len(delivered) {
			return
		}
		if len(merged) > maxDeliveredTracked {
			merged = merged[len(merged)-maxDeliveredTracked:]
		}
		delivered = merged
		push(StreamEvent{Kind: StreamKindMessage, Message: &m})
	})
	if err != nil {
		return teardowns, err
	}
	teardowns = append(teardowns, stopMessages)

	stopCheckins, err := h.subscriber.OnInsert(ctx, realtime.CheckinsTopic(session.SubjectID), func(event realtime.Event) {
		if n, ok := h.notifier.FromEvent(event); ok {
			push(StreamEvent{Kind: StreamKindCheckin, Notification: n})
		}
	})
	if err != nil {
		return teardowns, err
	}
	teardowns = append(teardowns, stopCheckins)

	return teardowns, nil
}

// readPump only watches for the close frame and pongs, members do not send data.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxClientFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, out <-chan StreamEvent, logger *log.Entry) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout),
			)
			return
		case ev := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debugf("stream write: %s", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				logger.Debugf("stream ping: %s", err)
				return
			}
		}
	}
}
