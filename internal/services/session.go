package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"skatelog-backend/internal/models"

	"github.com/google/uuid"
)

// SessionStore is the persistence surface the session service needs.
// Satisfied by repository.SessionRepository.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, sessionID, userID string) error
}

// SessionService handles skate session logging
type SessionService struct {
	store SessionStore
}

// NewSessionService creates a new session service
func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// List retrieves the user's sessions newest first, narrowed by the search
// query when one is given.
func (s *SessionService) List(ctx context.Context, userID, query string) ([]models.Session, error) {
	sessions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionDate.After(sessions[j].SessionDate)
	})

	return FilterSessions(sessions, query), nil
}

// SessionInput carries the writable session fields.
type SessionInput struct {
	PlaceName   string
	Address     *string
	SessionDate time.Time
	Review      *string
}

// Create logs a new session
func (s *SessionService) Create(ctx context.Context, userID string, in SessionInput) (*models.Session, error) {
	if strings.TrimSpace(in.PlaceName) == "" {
		return nil, fmt.Errorf("place name is required")
	}

	now := time.Now()
	session := &models.Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		PlaceName:   in.PlaceName,
		Address:     in.Address,
		SessionDate: in.SessionDate,
		Review:      in.Review,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Update edits a session owned by the user
func (s *SessionService) Update(ctx context.Context, userID, sessionID string, in SessionInput) error {
	if strings.TrimSpace(in.PlaceName) == "" {
		return fmt.Errorf("place name is required")
	}

	session := &models.Session{
		ID:          sessionID,
		UserID:      userID,
		PlaceName:   in.PlaceName,
		Address:     in.Address,
		SessionDate: in.SessionDate,
		Review:      in.Review,
	}

	return s.store.Update(ctx, session)
}

// Delete removes a session owned by the user
func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) error {
	return s.store.Delete(ctx, sessionID, userID)
}

// FilterSessions returns the sessions whose place name, address or review
// contains the query, case-insensitively. An empty query keeps everything.
func FilterSessions(sessions []models.Session, query string) []models.Session {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return sessions
	}

	filtered := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		if strings.Contains(strings.ToLower(session.PlaceName), q) ||
			(session.Address != nil && strings.Contains(strings.ToLower(*session.Address), q)) ||
			(session.Review != nil && strings.Contains(strings.ToLower(*session.Review), q)) {
			filtered = append(filtered, session)
		}
	}
	return filtered
}
