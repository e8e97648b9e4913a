package repository

import (
	"context"
	"errors"
	"fmt"

	"skatelog-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a profile row for a user. Called once at sign-up;
// profiles are never deleted by the application.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, profile.ID, profile.FullName, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves the profile for a user
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, full_name, avatar_url, date_of_birth, hometown, stance,
		       skating_since, total_sessions, decks_used, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID, &profile.FullName, &profile.AvatarURL, &profile.DateOfBirth,
		&profile.Hometown, &profile.Stance, &profile.SkatingSince,
		&profile.TotalSessions, &profile.DecksUsed, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update updates the mutable profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, date_of_birth = $2, hometown = $3, stance = $4,
		    skating_since = $5, total_sessions = $6, decks_used = $7, updated_at = now()
		WHERE id = $8
	`
	result, err := r.db.Exec(ctx, query,
		profile.FullName, profile.DateOfBirth, profile.Hometown, profile.Stance,
		profile.SkatingSince, profile.TotalSessions, profile.DecksUsed, profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateAvatarURL updates only the avatar reference
func (r *ProfileRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	query := `UPDATE profiles SET avatar_url = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
