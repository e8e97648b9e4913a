package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skatelog-backend/internal/middleware"
	"skatelog-backend/internal/models"
	"skatelog-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

type fakeGearStore struct {
	gear    []models.Gear
	details map[string]models.Detail
}

func newFakeGearStore() *fakeGearStore {
	return &fakeGearStore{details: make(map[string]models.Detail)}
}

func (s *fakeGearStore) Create(ctx context.Context, gear *models.Gear) error {
	s.gear = append(s.gear, *gear)
	return nil
}

func (s *fakeGearStore) GetByID(ctx context.Context, id string) (*models.Gear, error) {
	for i := range s.gear {
		if s.gear[i].ID == id {
			return &s.gear[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeGearStore) ListByUser(ctx context.Context, userID string) ([]models.Gear, error) {
	var out []models.Gear
	for _, g := range s.gear {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeGearStore) UpdateBase(ctx context.Context, id, name, specs string) error {
	for i := range s.gear {
		if s.gear[i].ID == id {
			s.gear[i].Name = name
			s.gear[i].Specs = specs
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeGearStore) Delete(ctx context.Context, id string) error {
	for i := range s.gear {
		if s.gear[i].ID == id {
			s.gear = append(s.gear[:i], s.gear[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeGearStore) GetDetail(ctx context.Context, category models.GearCategory, gearID string) (models.Detail, error) {
	d, ok := s.details[gearID]
	if !ok {
		return nil, models.ErrDetailNotFound
	}
	return d, nil
}

func (s *fakeGearStore) CreateDetail(ctx context.Context, gearID string, detail models.Detail) error {
	s.details[gearID] = detail
	return nil
}

func (s *fakeGearStore) UpdateDetail(ctx context.Context, gearID string, detail models.Detail) error {
	s.details[gearID] = detail
	return nil
}

func (s *fakeGearStore) DeleteDetail(ctx context.Context, category models.GearCategory, gearID string) error {
	delete(s.details, gearID)
	return nil
}

func withUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
		})
	}
}

func newGearRouter(store *fakeGearStore, userID string) http.Handler {
	h := NewGearHandler(services.NewGearService(store), services.NewEventHub())

	r := chi.NewRouter()
	r.Use(withUser(userID))
	r.Get("/gear", h.List)
	r.Post("/gear", h.Create)
	r.Put("/gear/{gear_id}", h.Update)
	r.Delete("/gear/{gear_id}", h.Delete)
	return r
}

type bucketsResponse struct {
	Categories []struct {
		Category string            `json:"category"`
		Count    int               `json:"count"`
		Items    []json.RawMessage `json:"items"`
	} `json:"categories"`
}

func decodeBuckets(t *testing.T, body *httptest.ResponseRecorder) bucketsResponse {
	t.Helper()
	var resp bucketsResponse
	if err := json.NewDecoder(body.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestGearHandler_List_AlwaysSixBuckets(t *testing.T) {
	store := newFakeGearStore()
	store.gear = []models.Gear{
		{ID: "g1", UserID: "u1", Category: models.CategoryWheel, Name: "Spitfire F4"},
		{ID: "g2", UserID: "u1", Category: models.CategoryWheel, Name: "Bones STF"},
		{ID: "g3", UserID: "u1", Category: models.CategoryDeck, Name: "Baker 8.25"},
	}
	router := newGearRouter(store, "u1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gear", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeBuckets(t, rec)
	if len(resp.Categories) != 6 {
		t.Fatalf("got %d buckets, want 6", len(resp.Categories))
	}

	wantOrder := []string{"deck", "truck", "wheel", "bearing", "griptape", "tool"}
	wantCounts := map[string]int{"deck": 1, "wheel": 2}
	for i, b := range resp.Categories {
		if b.Category != wantOrder[i] {
			t.Errorf("bucket[%d] = %q, want %q", i, b.Category, wantOrder[i])
		}
		if b.Count != wantCounts[b.Category] {
			t.Errorf("bucket %q count = %d, want %d", b.Category, b.Count, wantCounts[b.Category])
		}
		if b.Count != len(b.Items) {
			t.Errorf("bucket %q count = %d but has %d items", b.Category, b.Count, len(b.Items))
		}
	}
}

func TestGearHandler_Create(t *testing.T) {
	store := newFakeGearStore()
	router := newGearRouter(store, "u1")

	body := `{"category":"wheel","name":"Spitfire F4","specs":"54mm","details":{"diameter":54,"durometer":"99a","price":39.99}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gear", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if len(store.gear) != 1 {
		t.Fatalf("store has %d gear rows, want 1", len(store.gear))
	}
	wheel, ok := store.details[store.gear[0].ID].(*models.WheelDetail)
	if !ok {
		t.Fatalf("stored detail is %T, want *models.WheelDetail", store.details[store.gear[0].ID])
	}
	if wheel.Diameter != 54 || wheel.Price != 39.99 {
		t.Errorf("stored detail = %+v", wheel)
	}

	resp := decodeBuckets(t, rec)
	if resp.Categories[2].Count != 1 {
		t.Errorf("wheel bucket count = %d, want 1", resp.Categories[2].Count)
	}
}

func TestGearHandler_Create_Validation(t *testing.T) {
	router := newGearRouter(newFakeGearStore(), "u1")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"category":"wheel"}`},
		{"unknown category", `{"category":"helmet","name":"Pro-Tec"}`},
		{"bad json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gear", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGearHandler_Update_IgnoresCategoryChange(t *testing.T) {
	store := newFakeGearStore()
	store.gear = []models.Gear{{ID: "g1", UserID: "u1", Category: models.CategoryWheel, Name: "Spitfire F4"}}
	router := newGearRouter(store, "u1")

	body := `{"name":"Bones STF","specs":"52mm","details":{"diameter":52}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/gear/g1", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if store.gear[0].Name != "Bones STF" {
		t.Errorf("name = %q, want %q", store.gear[0].Name, "Bones STF")
	}
	if _, ok := store.details["g1"].(*models.WheelDetail); !ok {
		t.Errorf("detail stored as %T, want *models.WheelDetail", store.details["g1"])
	}
}

func TestGearHandler_Update_OtherUsersGearIsNotFound(t *testing.T) {
	store := newFakeGearStore()
	store.gear = []models.Gear{{ID: "g1", UserID: "owner", Category: models.CategoryDeck, Name: "Baker 8.25"}}
	router := newGearRouter(store, "intruder")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/gear/g1", strings.NewReader(`{"name":"Stolen"}`)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if store.gear[0].Name != "Baker 8.25" {
		t.Errorf("gear was modified by a non-owner: %+v", store.gear[0])
	}
}

func TestGearHandler_Delete(t *testing.T) {
	store := newFakeGearStore()
	store.gear = []models.Gear{{ID: "g1", UserID: "u1", Category: models.CategoryDeck, Name: "Baker 8.25"}}
	store.details["g1"] = &models.DeckDetail{}
	router := newGearRouter(store, "u1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/gear/g1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.gear) != 0 {
		t.Errorf("base row not deleted")
	}
	if _, ok := store.details["g1"]; ok {
		t.Errorf("detail row not deleted")
	}

	resp := decodeBuckets(t, rec)
	for _, b := range resp.Categories {
		if b.Count != 0 {
			t.Errorf("bucket %q count = %d after delete, want 0", b.Category, b.Count)
		}
	}
}

func TestGearHandler_Delete_UnknownGear(t *testing.T) {
	router := newGearRouter(newFakeGearStore(), "u1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/gear/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
