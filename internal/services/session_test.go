package services

import (
	"context"
	"testing"
	"time"

	"skatelog-backend/internal/models"
)

type stubSessionStore struct {
	listFn func(ctx context.Context, userID string) ([]models.Session, error)
}

func (s *stubSessionStore) Create(ctx context.Context, session *models.Session) error { return nil }

func (s *stubSessionStore) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubSessionStore) Update(ctx context.Context, session *models.Session) error { return nil }

func (s *stubSessionStore) Delete(ctx context.Context, sessionID, userID string) error { return nil }

func strptr(s string) *string { return &s }

func TestFilterSessions_CaseInsensitiveAcrossFields(t *testing.T) {
	sessions := []models.Session{
		{ID: "s1", PlaceName: "Downtown Plaza"},
		{ID: "s2", PlaceName: "School Yard", Address: strptr("789 Plaza St, Los Angeles")},
		{ID: "s3", PlaceName: "Westside Skatepark", Review: strptr("smooth plaza ledges")},
		{ID: "s4", PlaceName: "Backyard Ramp"},
	}

	for _, query := range []string{"plaza", "PLAZA", "Plaza"} {
		got := FilterSessions(sessions, query)
		if len(got) != 3 {
			t.Fatalf("FilterSessions(%q) matched %d sessions, want 3", query, len(got))
		}
		if got[0].ID != "s1" || got[1].ID != "s2" || got[2].ID != "s3" {
			t.Errorf("FilterSessions(%q) matched the wrong sessions: %v", query, got)
		}
	}
}

func TestFilterSessions_EmptyQueryKeepsAll(t *testing.T) {
	sessions := []models.Session{{ID: "s1"}, {ID: "s2"}}

	if got := FilterSessions(sessions, ""); len(got) != 2 {
		t.Errorf("empty query matched %d sessions, want 2", len(got))
	}
	if got := FilterSessions(sessions, "   "); len(got) != 2 {
		t.Errorf("blank query matched %d sessions, want 2", len(got))
	}
}

func TestFilterSessions_NoMatch(t *testing.T) {
	sessions := []models.Session{{ID: "s1", PlaceName: "Downtown Plaza"}}

	if got := FilterSessions(sessions, "vert ramp"); len(got) != 0 {
		t.Errorf("matched %d sessions, want 0", len(got))
	}
}

func TestSessionService_List_SortedByDateDescending(t *testing.T) {
	store := &stubSessionStore{
		listFn: func(ctx context.Context, userID string) ([]models.Session, error) {
			return []models.Session{
				{ID: "old", SessionDate: date(2024, 1, 10)},
				{ID: "newest", SessionDate: date(2024, 3, 5)},
				{ID: "middle", SessionDate: date(2024, 2, 20)},
			}, nil
		},
	}
	svc := NewSessionService(store)

	sessions, err := svc.List(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	wantOrder := []string{"newest", "middle", "old"}
	for i, id := range wantOrder {
		if sessions[i].ID != id {
			t.Errorf("sessions[%d].ID = %q, want %q", i, sessions[i].ID, id)
		}
	}
}

func TestSessionService_Create_RequiresPlaceName(t *testing.T) {
	svc := NewSessionService(&stubSessionStore{})

	_, err := svc.Create(context.Background(), "u1", SessionInput{
		PlaceName:   "   ",
		SessionDate: time.Now(),
	})
	if err == nil {
		t.Fatal("expected error for a blank place name")
	}
}
