package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skatelog-backend/internal/middleware"
	"skatelog-backend/internal/models"
	"skatelog-backend/internal/services"

	"github.com/rs/zerolog/log"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
	hub            *services.EventHub
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, hub *services.EventHub) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		hub:            hub,
	}
}

// profileResponse decorates the stored profile with the derived display
// fields.
type profileResponse struct {
	*models.Profile
	Age             int    `json:"age,omitempty"`
	SkatingDuration string `json:"skating_duration,omitempty"`
}

func newProfileResponse(profile *models.Profile) profileResponse {
	resp := profileResponse{Profile: profile}
	now := time.Now()
	if profile.DateOfBirth != nil {
		resp.Age = services.Age(*profile.DateOfBirth, now)
	}
	if profile.SkatingSince != nil {
		resp.SkatingDuration = services.SkatingDuration(*profile.SkatingSince, now)
	}
	return resp
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.profileService.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, newProfileResponse(profile))
}

type updateProfileRequest struct {
	FullName      *string `json:"full_name"`
	DateOfBirth   *string `json:"date_of_birth"`
	Hometown      *string `json:"hometown"`
	Stance        *string `json:"stance"`
	SkatingSince  *string `json:"skating_since"`
	TotalSessions int     `json:"total_sessions"`
	DecksUsed     int     `json:"decks_used"`
}

// Update handles PUT /api/v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := services.UpdateProfileInput{
		FullName:      req.FullName,
		Hometown:      req.Hometown,
		TotalSessions: req.TotalSessions,
		DecksUsed:     req.DecksUsed,
	}

	if req.Stance != nil && *req.Stance != "" {
		stance := models.Stance(*req.Stance)
		in.Stance = &stance
	}

	var err error
	if in.DateOfBirth, err = parseDate(req.DateOfBirth); err != nil {
		respondError(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if in.SkatingSince, err = parseDate(req.SkatingSince); err != nil {
		respondError(w, "skating_since must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.Update(ctx, userID, in)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.hub.Publish(userID, services.EventProfileUpdated, nil)
	respondJSON(w, http.StatusOK, newProfileResponse(profile))
}

// UploadAvatar handles POST /api/v1/profile/avatar
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, "avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.profileService.UploadAvatar(ctx, userID, header.Filename, contentType, file)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to upload avatar")
		respondError(w, "Failed to upload avatar", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("avatar_url", url).Msg("Avatar uploaded")

	h.hub.Publish(userID, services.EventProfileUpdated, map[string]interface{}{"avatar_url": url})
	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

// parseDate parses an optional YYYY-MM-DD value.
func parseDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
