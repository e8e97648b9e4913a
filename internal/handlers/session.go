package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skatelog-backend/internal/middleware"
	"skatelog-backend/internal/models"
	"skatelog-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles skate session HTTP requests
type SessionHandler struct {
	sessionService *services.SessionService
	hub            *services.EventHub
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService, hub *services.EventHub) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		hub:            hub,
	}
}

// List handles GET /api/v1/sessions?q=
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	query := r.URL.Query().Get("q")

	sessions, err := h.sessionService.List(ctx, userID, query)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list sessions")
		respondError(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

type sessionRequest struct {
	PlaceName   string    `json:"place_name"`
	Address     *string   `json:"address"`
	SessionDate time.Time `json:"session_date"`
	Review      *string   `json:"review"`
}

func (req *sessionRequest) input() services.SessionInput {
	return services.SessionInput{
		PlaceName:   req.PlaceName,
		Address:     req.Address,
		SessionDate: req.SessionDate,
		Review:      req.Review,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlaceName == "" {
		respondError(w, "place_name is required", http.StatusBadRequest)
		return
	}
	if req.SessionDate.IsZero() {
		req.SessionDate = time.Now()
	}

	session, err := h.sessionService.Create(ctx, userID, req.input())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create session")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("session_id", session.ID).Msg("Session logged")

	h.hub.Publish(userID, services.EventSessionLogged, map[string]interface{}{"session_id": session.ID})
	respondJSON(w, http.StatusCreated, session)
}

// Update handles PUT /api/v1/sessions/{session_id}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	sessionID := chi.URLParam(r, "session_id")

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlaceName == "" {
		respondError(w, "place_name is required", http.StatusBadRequest)
		return
	}

	if err := h.sessionService.Update(ctx, userID, sessionID, req.input()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "Session not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("session_id", sessionID).Msg("Failed to update session")
		respondError(w, "Failed to update session", http.StatusInternalServerError)
		return
	}

	h.hub.Publish(userID, services.EventSessionLogged, map[string]interface{}{"session_id": sessionID})
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/sessions/{session_id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	sessionID := chi.URLParam(r, "session_id")

	if err := h.sessionService.Delete(ctx, userID, sessionID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "Session not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("session_id", sessionID).Msg("Failed to delete session")
		respondError(w, "Failed to delete session", http.StatusInternalServerError)
		return
	}

	h.hub.Publish(userID, services.EventSessionLogged, map[string]interface{}{"session_id": sessionID})
	w.WriteHeader(http.StatusNoContent)
}
