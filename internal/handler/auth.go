package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kainan-pos/api/internal/auth"
	"github.com/kainan-pos/api/internal/database"
)

// UserStore defines the database methods needed by auth handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type UserStore interface {
	GetTerminalUserByUsername(ctx context.Context, username string) (database.TerminalUser, error)
}

// AuthHandler handles terminal login.
type AuthHandler struct {
	store     UserStore
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(store UserStore, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret, logger: logger}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Passcode string `json:"passcode"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID         uuid.UUID `json:"id"`
	TerminalID uuid.UUID `json:"terminal_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
}

// Login handles username + passcode authentication for a terminal session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Username == "" || req.Passcode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and passcode are required"})
		return
	}

	user, err := h.store.GetTerminalUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		h.logger.Error("get terminal user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasscodeHash), []byte(req.Passcode)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID, user.TerminalID, user.Role)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token: token,
		User: userResponse{
			ID:         user.ID,
			TerminalID: user.TerminalID,
			Username:   user.Username,
			FullName:   user.FullName,
			Role:       user.Role,
		},
	})
}
