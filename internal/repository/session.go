package repository

import (
	"context"
	"fmt"

	"skatelog-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for skate sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO skate_sessions (id, user_id, place_name, address, session_date, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		session.ID, session.UserID, session.PlaceName, session.Address,
		session.SessionDate, session.Review, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// ListByUser retrieves all sessions for a user, newest session date first
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	query := `
		SELECT id, user_id, place_name, address, session_date, review, created_at, updated_at
		FROM skate_sessions
		WHERE user_id = $1
		ORDER BY session_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		err := rows.Scan(
			&session.ID, &session.UserID, &session.PlaceName, &session.Address,
			&session.SessionDate, &session.Review, &session.CreatedAt, &session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// Update updates a session owned by the user
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `
		UPDATE skate_sessions
		SET place_name = $1, address = $2, session_date = $3, review = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
	`
	result, err := r.db.Exec(ctx, query,
		session.PlaceName, session.Address, session.SessionDate, session.Review,
		session.ID, session.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete deletes a session owned by the user
func (r *SessionRepository) Delete(ctx context.Context, sessionID, userID string) error {
	query := `DELETE FROM skate_sessions WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
