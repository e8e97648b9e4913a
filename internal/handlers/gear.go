package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"skatelog-backend/internal/middleware"
	"skatelog-backend/internal/models"
	"skatelog-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GearHandler handles gear HTTP requests
type GearHandler struct {
	gearService *services.GearService
	hub         *services.EventHub
}

// NewGearHandler creates a new gear handler
func NewGearHandler(gearService *services.GearService, hub *services.EventHub) *GearHandler {
	return &GearHandler{
		gearService: gearService,
		hub:         hub,
	}
}

// List handles GET /api/v1/gear
func (h *GearHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	buckets, err := h.gearService.FetchAll(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch gear")
		respondError(w, "Failed to fetch gear", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": buckets})
}

type createGearRequest struct {
	Category models.GearCategory `json:"category"`
	Name     string              `json:"name"`
	Specs    string              `json:"specs"`
	Details  json.RawMessage     `json:"details"`
}

// Create handles POST /api/v1/gear
func (h *GearHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req createGearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if !req.Category.Valid() {
		respondError(w, "invalid gear category", http.StatusBadRequest)
		return
	}

	details, err := models.UnmarshalDetail(req.Category, req.Details)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := h.gearService.Create(ctx, userID, services.CreateGearInput{
		Category: req.Category,
		Name:     req.Name,
		Specs:    req.Specs,
		Details:  details,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("category", string(req.Category)).Msg("Failed to create gear")
		respondError(w, "Failed to create gear", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("category", string(req.Category)).Msg("Gear created")

	h.hub.Publish(userID, services.EventGearChanged, nil)
	respondJSON(w, http.StatusCreated, map[string]interface{}{"categories": buckets})
}

type updateGearRequest struct {
	Name    string          `json:"name"`
	Specs   string          `json:"specs"`
	Details json.RawMessage `json:"details"`
}

// Update handles PUT /api/v1/gear/{gear_id}. The category comes from the
// stored record; a category in the payload is ignored.
func (h *GearHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	gearID := chi.URLParam(r, "gear_id")

	var req updateGearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}

	buckets, err := h.gearService.Update(ctx, userID, gearID, services.UpdateGearInput{
		Name:       req.Name,
		Specs:      req.Specs,
		RawDetails: req.Details,
	})
	if err != nil {
		h.respondGearError(w, err, userID, gearID, "Failed to update gear")
		return
	}

	h.hub.Publish(userID, services.EventGearChanged, nil)
	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": buckets})
}

// Delete handles DELETE /api/v1/gear/{gear_id}
func (h *GearHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	gearID := chi.URLParam(r, "gear_id")

	buckets, err := h.gearService.Delete(ctx, userID, gearID)
	if err != nil {
		h.respondGearError(w, err, userID, gearID, "Failed to delete gear")
		return
	}

	log.Info().Str("user_id", userID).Str("gear_id", gearID).Msg("Gear deleted")

	h.hub.Publish(userID, services.EventGearChanged, nil)
	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": buckets})
}

func (h *GearHandler) respondGearError(w http.ResponseWriter, err error, userID, gearID, msg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, "Gear not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		respondError(w, "Gear not found", http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidCategory):
		respondError(w, "invalid gear category", http.StatusBadRequest)
	default:
		log.Error().Err(err).Str("user_id", userID).Str("gear_id", gearID).Msg(msg)
		respondError(w, msg, http.StatusInternalServerError)
	}
}
