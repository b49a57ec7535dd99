package auth

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"

	TokenHeader     = "X-MEMBERHUB-TOKEN"
	TokenQueryParam = "token"
)

// Session is what a login token resolves to. SubjectID is the member table id
// for members and 0 for the gym admin.
type Session struct {
	Token     string    `json:"-"`
	Role      Role      `json:"role"`
	SubjectID int64     `json:"subject_id"`
	GymID     int64     `json:"gym_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsMember() bool {
	return s != nil && s.Role == RoleMember
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return session, ok && session != nil
}

// TokenFromRequest reads a bearer token, falling back to the custom token header.
// Browsers cannot set headers on websocket upgrades, so those may pass ?token=.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get(TokenQueryParam)
	}
	return ""
}
