package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/auth"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/dashboard-service/internal/logging"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      users.Account `json:"user"`
}

type sessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *users.Account `json:"user"`
}

// Login verifies credentials, issues a session token and remembers the user.
func (h *Handler) Login(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.verifier == nil || h.sessions == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "authentication not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, nethttp.StatusBadRequest, "email and password are required", h.logger)
		return
	}

	account, ok := h.verifier.Verify(r.Context(), req.Email, req.Password)
	if !ok {
		logging.Warn(logger, "login rejected", slog.String("client_ip", requestutil.ClientIP(r)))
		writeError(w, r, nethttp.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), h.logger)
		return
	}

	token, expires, err := h.sessions.Issue(account)
	if err != nil {
		logging.Error(logger, "session issue failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "could not create session", h.logger)
		return
	}
	if h.prefs != nil {
		if err := h.prefs.SetUser(account); err != nil {
			logging.Warn(logger, "persist session user failed", slog.Any("err", err))
		}
	}

	logging.Info(logger, "login succeeded", slog.String(logging.FieldUser, account.Email))
	writeJSON(w, nethttp.StatusOK, loginResponse{Token: token, ExpiresAt: expires, User: account}, h.logger)
}

// Session resolves the current user from a bearer token, or from the
// remembered session user when no token is sent.
func (h *Handler) Session(w nethttp.ResponseWriter, r *nethttp.Request) {
	if token := requestutil.BearerToken(r); token != "" {
		if h.sessions == nil {
			writeError(w, r, nethttp.StatusServiceUnavailable, "authentication not configured", h.logger)
			return
		}
		account, err := h.sessions.Parse(token)
		if err != nil {
			msg := "invalid session"
			if !errors.Is(err, auth.ErrInvalidSession) {
				msg = err.Error()
			}
			writeError(w, r, nethttp.StatusUnauthorized, msg, h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, sessionResponse{Authenticated: true, User: &account}, h.logger)
		return
	}

	resp := sessionResponse{}
	if h.prefs != nil {
		if u := h.prefs.State().User; u != nil {
			resp = sessionResponse{Authenticated: true, User: u}
		}
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Logout forgets the remembered session user.
func (h *Handler) Logout(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.prefs != nil {
		if err := h.prefs.ClearUser(); err != nil {
			logging.Error(loggerFromContext(r, h.logger), "clear session user failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "could not clear session", h.logger)
			return
		}
	}
	w.WriteHeader(nethttp.StatusNoContent)
}
