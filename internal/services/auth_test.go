package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skatelog-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type stubUserStore struct {
	createFn      func(ctx context.Context, user *models.User) error
	getByIDFn     func(ctx context.Context, id string) (*models.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*models.User, error)
	emailExistsFn func(ctx context.Context, email string) (bool, error)
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (s *stubUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if s.emailExistsFn != nil {
		return s.emailExistsFn(ctx, email)
	}
	return false, nil
}

type stubProfileStore struct {
	createFn func(ctx context.Context, profile *models.Profile) error
	created  []string
}

func (s *stubProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	s.created = append(s.created, profile.ID)
	if s.createFn != nil {
		return s.createFn(ctx, profile)
	}
	return nil
}

func (s *stubProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return &models.Profile{ID: id}, nil
}

func (s *stubProfileStore) Update(ctx context.Context, profile *models.Profile) error { return nil }

func (s *stubProfileStore) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	return nil
}

func newTestAuthService(users UserStore, profiles ProfileStore) *AuthService {
	return NewAuthService(users, profiles, "test-secret", 5*time.Second)
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestAuthService(&stubUserStore{}, &stubProfileStore{})

	token, err := svc.GenerateJWT("u1")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	userID, err := svc.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if userID != "u1" {
		t.Errorf("ValidateJWT() = %q, want %q", userID, "u1")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	issuer := NewAuthService(&stubUserStore{}, &stubProfileStore{}, "secret-a", time.Second)
	verifier := NewAuthService(&stubUserStore{}, &stubProfileStore{}, "secret-b", time.Second)

	token, err := issuer.GenerateJWT("u1")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := verifier.ValidateJWT(token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestSignUp_EmailTaken(t *testing.T) {
	users := &stubUserStore{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := newTestAuthService(users, &stubProfileStore{})

	_, _, err := svc.SignUp(context.Background(), "taken@example.com", "hunter22")
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Errorf("SignUp() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignUp_ProvisionsProfile(t *testing.T) {
	profiles := &stubProfileStore{}
	svc := newTestAuthService(&stubUserStore{}, profiles)

	user, token, err := svc.SignUp(context.Background(), "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if token == "" {
		t.Error("SignUp() returned an empty token")
	}
	if len(profiles.created) != 1 || profiles.created[0] != user.ID {
		t.Errorf("profile created for %v, want [%s]", profiles.created, user.ID)
	}
}

func TestSignUp_ProfileFailureKeepsAccount(t *testing.T) {
	profiles := &stubProfileStore{
		createFn: func(ctx context.Context, profile *models.Profile) error {
			return errors.New("insert failed")
		},
	}
	svc := newTestAuthService(&stubUserStore{}, profiles)

	user, token, err := svc.SignUp(context.Background(), "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp() error = %v, want account kept on profile failure", err)
	}
	if user == nil || token == "" {
		t.Error("SignUp() should still return the user and token")
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &stubUserStore{
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestAuthService(users, &stubProfileStore{})

	_, _, err = svc.SignIn(context.Background(), "user@example.com", "wrong-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignIn_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc := newTestAuthService(&stubUserStore{}, &stubProfileStore{})

	_, _, err := svc.SignIn(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetSession_Timeout(t *testing.T) {
	users := &stubUserStore{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc := NewAuthService(users, &stubProfileStore{}, "test-secret", 10*time.Millisecond)

	token, err := svc.GenerateJWT("u1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.GetSession(context.Background(), token)
	if !errors.Is(err, models.ErrSessionTimeout) {
		t.Errorf("GetSession() error = %v, want ErrSessionTimeout", err)
	}
}

func TestGetSession_BadToken(t *testing.T) {
	svc := newTestAuthService(&stubUserStore{}, &stubProfileStore{})

	_, err := svc.GetSession(context.Background(), "not-a-token")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("GetSession() error = %v, want ErrInvalidCredentials", err)
	}
}
