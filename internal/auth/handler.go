package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type memberAuthenticator interface {
	// Authenticate resolves email and member id to the member table id and gym.
	Authenticate(ctx context.Context, email, memberID string) (memberTableID, gymID int64, err error)
}

type Handler struct {
	authService *Service
	members     memberAuthenticator
}

func NewHandler(authService *Service, members memberAuthenticator) *Handler {
	return &Handler{
		authService: authService,
		members:     members,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, middlewares ...mux.MiddlewareFunc) {
	authRouter := router.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/member/login", handler.handleMemberLogin).Methods("POST", "OPTIONS").Name("member-login")
	authRouter.HandleFunc("/admin/login", handler.handleAdminLogin).Methods("POST", "OPTIONS").Name("admin-login")
	authRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.Use(middlewares...)
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) handleMemberLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.memberLogin")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq struct {
		Email    string `json:"email"`
		MemberID string `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("member login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	loginReq.Email = strings.TrimSpace(loginReq.Email)
	loginReq.MemberID = strings.TrimSpace(loginReq.MemberID)
	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.MemberID == "" {
		http.Error(w, "error, member id empty", http.StatusBadRequest)
		return
	}

	memberTableID, gymID, err := handler.members.Authenticate(ctx, loginReq.Email, loginReq.MemberID)
	if errors.Is(err, ErrInvalidCredentials) {
		log.Tracef("failed member login attempt for: %s", loginReq.MemberID)
		span.SetStatus(codes.Error, "invalid-credentials")
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("member login, authenticate: %s", err)
		span.RecordError(err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int64("member.id", memberTableID))

	token, err := handler.authService.LoginMember(ctx, memberTableID, gymID, time.Now())
	if err != nil {
		log.Errorf("member login failed, create session: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new member login success: %d", memberTableID)
	pkg.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (handler *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.adminLogin")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var credentials Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Errorf("admin login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("admin login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		credentials = Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if credentials.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if credentials.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.LoginAdmin(ctx, credentials, time.Now())
	if errors.Is(err, ErrWrongUsername) || errors.Is(err, ErrWrongPassword) {
		log.Tracef("failed admin login attempt for user: %s", credentials.Username)
		span.SetStatus(codes.Error, "wrong-credentials")
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("admin login failed, create session: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new admin login success")
	pkg.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := TokenFromRequest(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
