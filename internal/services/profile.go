package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"skatelog-backend/internal/models"
)

// ProfileService handles profile reads, updates and avatar uploads
type ProfileService struct {
	profiles ProfileStore
	blob     BlobStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore, blob BlobStore) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		blob:     blob,
	}
}

// Get retrieves the profile for a user. The row is provisioned at sign-up;
// a missing row is an error, not a trigger for implicit creation.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, userID)
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	FullName      *string
	DateOfBirth   *time.Time
	Hometown      *string
	Stance        *models.Stance
	SkatingSince  *time.Time
	TotalSessions int
	DecksUsed     int
}

// Update updates the profile's mutable fields
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*models.Profile, error) {
	if in.Stance != nil && !in.Stance.Valid() {
		return nil, fmt.Errorf("invalid stance: %s", *in.Stance)
	}

	profile := &models.Profile{
		ID:            userID,
		FullName:      in.FullName,
		DateOfBirth:   in.DateOfBirth,
		Hometown:      in.Hometown,
		Stance:        in.Stance,
		SkatingSince:  in.SkatingSince,
		TotalSessions: in.TotalSessions,
		DecksUsed:     in.DecksUsed,
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return s.profiles.GetByID(ctx, userID)
}

// UploadAvatar stores an avatar image at a per-user path, overwriting the
// previous one, and records its public URL on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/avatar%s", userID, ext)

	if err := s.blob.Upload(ctx, key, contentType, body); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.blob.PublicURL(key)
	if err := s.profiles.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}

	return url, nil
}

// Age returns whole years between birth and today, decremented when this
// year's birthday has not yet occurred.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// SkatingDuration formats the years and months elapsed since start as
// "Y years, M months", eliding whichever component is zero. Zero elapsed
// time reads "0 months".
func SkatingDuration(start, today time.Time) string {
	years := today.Year() - start.Year()
	months := int(today.Month()) - int(start.Month())
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years == 0:
		return fmt.Sprintf("%d months", months)
	case months == 0:
		return fmt.Sprintf("%d years", years)
	default:
		return fmt.Sprintf("%d years, %d months", years, months)
	}
}
