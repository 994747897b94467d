// Package authapi exposes the session subsystem over HTTP: registration,
// password login, refresh-token redemption, and the bearer-token gate
// protecting everything user-scoped.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"todo/cmd/internal/auth/session"
)

// Handler serves the credential and session endpoints.
type Handler struct {
	log          *slog.Logger
	sessions     *session.Service
	maxBodyBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(log *slog.Logger, sessions *session.Service, maxBodyBytes int64) *Handler {
	return &Handler{
		log:          log,
		sessions:     sessions,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register wires the session routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /refresh", h.handleRefresh)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.sessions.Register(r.Context(), req.Email, req.Password, time.Now().UTC())
	switch {
	case err == nil:
		h.log.Info("auth.register.ok", slog.String("email", req.Email))
		WriteMessage(w, http.StatusCreated, "user registered successfully")
	case errors.Is(err, session.ErrInvalidInput):
		WriteMessage(w, http.StatusBadRequest, "email and password are required")
	case errors.Is(err, session.ErrAlreadyExists):
		h.log.Info("auth.register.conflict", slog.String("email", req.Email))
		WriteMessage(w, http.StatusBadRequest, "user already exists")
	default:
		h.log.Error("auth.register.fail", slog.String("error", err.Error()))
		WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issued, err := h.sessions.Login(r.Context(), req.Email, req.Password, time.Now().UTC())
	switch {
	case err == nil:
		h.log.Info("auth.login.ok", slog.String("email", req.Email))
		WriteJSON(w, http.StatusOK, loginResponse{
			AccessToken:  issued.AccessToken,
			RefreshToken: issued.RefreshToken,
		})
	case errors.Is(err, session.ErrInvalidInput):
		WriteMessage(w, http.StatusBadRequest, "email and password are required")
	case errors.Is(err, session.ErrInvalidCredentials):
		h.log.Info("auth.login.fail", slog.String("email", req.Email))
		WriteMessage(w, http.StatusUnauthorized, "invalid email or password")
	default:
		h.log.Error("auth.login.fail", slog.String("error", err.Error()))
		WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, _, err := h.sessions.Redeem(r.Context(), req.RefreshToken, time.Now().UTC())
	switch {
	case err == nil:
		h.log.Info("auth.refresh.ok")
		WriteJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
	case errors.Is(err, session.ErrTokenNotFound):
		h.log.Info("auth.refresh.fail")
		WriteMessage(w, http.StatusUnauthorized, "invalid refresh token")
	default:
		h.log.Error("auth.refresh.fail", slog.String("error", err.Error()))
		WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
