package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"skatelog-backend/internal/middleware"
	"skatelog-backend/internal/models"
	"skatelog-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
	hub         *services.EventHub
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, hub *services.EventHub) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		hub:         hub,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			respondError(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("Failed to sign up")
		respondError(w, "Sign up failed", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User signed up")

	h.hub.Publish(user.ID, services.EventSessionChanged, map[string]interface{}{"signed_in": true})
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			respondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Failed to sign in")
		respondError(w, "Sign in failed", http.StatusInternalServerError)
		return
	}

	h.hub.Publish(user.ID, services.EventSessionChanged, map[string]interface{}{"signed_in": true})
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// SignOut handles POST /api/v1/auth/signout. Tokens are stateless; the
// endpoint exists for the client contract and emits the session event.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	log.Info().Str("user_id", userID).Msg("User signed out")

	h.hub.Publish(userID, services.EventSessionChanged, map[string]interface{}{"signed_in": false})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/v1/auth/session. It reads the bearer token
// itself so the bounded-wait session check owns the whole path.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, "Authorization header required", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, models.ErrSessionTimeout) {
			respondError(w, "Connection timeout. Please try again.", http.StatusGatewayTimeout)
			return
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			respondError(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Failed to check session")
		respondError(w, "Session check failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
