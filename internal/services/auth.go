package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skatelog-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const jwtExpDays = 365

// UserStore is the persistence surface the auth service needs. Satisfied by
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ProfileStore is the persistence surface for profile rows.
// Satisfied by repository.ProfileRepository.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

// AuthService handles sign-up, sign-in and session checks
type AuthService struct {
	users          UserStore
	profiles       ProfileStore
	jwtSecret      string
	sessionTimeout time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, profiles ProfileStore, jwtSecret string, sessionTimeout time.Duration) *AuthService {
	return &AuthService{
		users:          users,
		profiles:       profiles,
		jwtSecret:      jwtSecret,
		sessionTimeout: sessionTimeout,
	}
}

// SignUp registers a new account and provisions its profile row. The
// profile insert is the second step of a two-step write: if it fails the
// account is kept and the failure logged.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.Profile{
		ID:        user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Profile not provisioned at sign-up")
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// SignIn verifies credentials and returns a signed token. A wrong email and
// a wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetSession validates a token and loads its user under a bounded wait.
// Past the deadline the check is abandoned and models.ErrSessionTimeout
// returned, distinct from a credential failure.
func (s *AuthService) GetSession(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.ValidateJWT(token)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.sessionTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, models.ErrSessionTimeout
		}
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}
