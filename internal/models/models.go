package models

import (
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDetailNotFound is returned when a gear item has no detail row.
	// Callers treat it as "use the default detail stub", not as a failure.
	ErrDetailNotFound = errors.New("gear details not found")

	// ErrEmailTaken is returned on sign-up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on sign-in with a bad email/password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionTimeout is returned when the session check does not resolve
	// within the configured deadline. Distinct from a credential failure.
	ErrSessionTimeout = errors.New("session check timed out")

	// ErrForbidden is returned when a user touches another user's entity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCategory is returned for a category outside the closed enum.
	ErrInvalidCategory = errors.New("invalid gear category")
)

// Stance is the skater's stance.
type Stance string

const (
	StanceRegular Stance = "Regular"
	StanceGoofy   Stance = "Goofy"
)

// Valid reports whether s is one of the known stances.
func (s Stance) Valid() bool {
	return s == StanceRegular || s == StanceGoofy
}

// User represents an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile represents a user's skater profile. Exactly one row per user,
// keyed by the user id, provisioned at sign-up and never deleted.
type Profile struct {
	ID            string     `json:"id"`
	FullName      *string    `json:"full_name"`
	AvatarURL     *string    `json:"avatar_url"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Hometown      *string    `json:"hometown"`
	Stance        *Stance    `json:"stance"`
	SkatingSince  *time.Time `json:"skating_since"`
	TotalSessions int        `json:"total_sessions"`
	DecksUsed     int        `json:"decks_used"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Session represents a logged skate outing at a named place.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PlaceName   string    `json:"place_name"`
	Address     *string   `json:"address"`
	SessionDate time.Time `json:"session_date"`
	Review      *string   `json:"review"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
