package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skatelog-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GearStore is the persistence surface the gear service needs. Satisfied by
// repository.GearRepository.
type GearStore interface {
	Create(ctx context.Context, gear *models.Gear) error
	GetByID(ctx context.Context, id string) (*models.Gear, error)
	ListByUser(ctx context.Context, userID string) ([]models.Gear, error)
	UpdateBase(ctx context.Context, id, name, specs string) error
	Delete(ctx context.Context, id string) error
	GetDetail(ctx context.Context, category models.GearCategory, gearID string) (models.Detail, error)
	CreateDetail(ctx context.Context, gearID string, detail models.Detail) error
	UpdateDetail(ctx context.Context, gearID string, detail models.Detail) error
	DeleteDetail(ctx context.Context, category models.GearCategory, gearID string) error
}

// GearService maintains the gear-with-details view: it assembles the
// read-time join of base gear rows with their category-specific detail rows
// and coordinates the two-step writes that keep the pair consistent enough.
type GearService struct {
	store GearStore
}

// NewGearService creates a new gear service
func NewGearService(store GearStore) *GearService {
	return &GearService{store: store}
}

// FetchAll retrieves all gear for a user grouped into the six fixed category
// buckets. Buckets are always present, in fixed order, with Count equal to
// the item count. A gear item whose detail row is missing or unreadable gets
// the default detail stub; one bad detail never aborts the whole fetch.
func (s *GearService) FetchAll(ctx context.Context, userID string) ([]models.CategoryBucket, error) {
	gear, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gear: %w", err)
	}

	order := models.Categories()
	index := make(map[models.GearCategory]int, len(order))
	buckets := make([]models.CategoryBucket, len(order))
	for i, c := range order {
		index[c] = i
		buckets[i] = models.CategoryBucket{
			Category: c,
			Items:    make([]models.GearWithDetails, 0),
		}
	}

	for _, g := range gear {
		i, ok := index[g.Category]
		if !ok {
			log.Warn().Str("gear_id", g.ID).Str("category", string(g.Category)).Msg("Skipping gear with unknown category")
			continue
		}

		detail, err := s.store.GetDetail(ctx, g.Category, g.ID)
		if err != nil {
			if !errors.Is(err, models.ErrDetailNotFound) {
				log.Warn().Err(err).Str("gear_id", g.ID).Msg("Failed to fetch gear details, using stub")
			}
			detail, _ = models.NewDetail(g.Category)
		}

		buckets[i].Items = append(buckets[i].Items, models.GearWithDetails{
			Gear:    g,
			Details: detail,
		})
	}

	for i := range buckets {
		buckets[i].Count = len(buckets[i].Items)
	}

	return buckets, nil
}

// CreateGearInput carries a new gear item and its detail payload.
type CreateGearInput struct {
	Category models.GearCategory
	Name     string
	Specs    string
	Details  models.Detail
}

// Create inserts the base gear row and then its detail row. The base insert
// must succeed before the detail insert is attempted; a detail insert
// failure after that is logged and accepted — the base row stays and the
// next fetch substitutes the default stub. Returns a full re-fetch so the
// view is always store-derived.
func (s *GearService) Create(ctx context.Context, userID string, in CreateGearInput) ([]models.CategoryBucket, error) {
	if !in.Category.Valid() {
		return nil, models.ErrInvalidCategory
	}

	detail := in.Details
	if detail == nil {
		detail, _ = models.NewDetail(in.Category)
	}
	if detail.GearCategory() != in.Category {
		return nil, models.ErrInvalidCategory
	}

	now := time.Now()
	gear := &models.Gear{
		ID:        uuid.New().String(),
		UserID:    userID,
		Category:  in.Category,
		Name:      in.Name,
		Specs:     in.Specs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, gear); err != nil {
		return nil, fmt.Errorf("failed to create gear: %w", err)
	}

	if err := s.store.CreateDetail(ctx, gear.ID, detail); err != nil {
		log.Warn().Err(err).Str("gear_id", gear.ID).Msg("Gear details not saved, base record kept")
	}

	return s.FetchAll(ctx, userID)
}

// UpdateGearInput carries the mutable fields of a gear item. Category is
// not part of the input: it is read from the stored row and cannot change.
type UpdateGearInput struct {
	Name       string
	Specs      string
	RawDetails []byte
}

// Update updates the base fields and the detail row independently; either
// side may succeed while the other fails, matching the accepted partial
// failure policy of Create. Detail writes are routed through the stored
// row's category. Returns a full re-fetch.
func (s *GearService) Update(ctx context.Context, userID, gearID string, in UpdateGearInput) ([]models.CategoryBucket, error) {
	gear, err := s.store.GetByID(ctx, gearID)
	if err != nil {
		return nil, err
	}
	if gear.UserID != userID {
		return nil, models.ErrForbidden
	}

	if err := s.store.UpdateBase(ctx, gearID, in.Name, in.Specs); err != nil {
		log.Warn().Err(err).Str("gear_id", gearID).Msg("Failed to update gear base record")
	}

	if len(in.RawDetails) > 0 {
		detail, err := models.UnmarshalDetail(gear.Category, in.RawDetails)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdateDetail(ctx, gearID, detail); err != nil {
			log.Warn().Err(err).Str("gear_id", gearID).Msg("Failed to update gear details")
		}
	}

	return s.FetchAll(ctx, userID)
}

// Delete removes a gear item: the detail row first, then the base row, so a
// failed base delete can still be retried without an orphaned detail. A
// detail delete failure is logged and the base delete proceeds. Returns a
// full re-fetch.
func (s *GearService) Delete(ctx context.Context, userID, gearID string) ([]models.CategoryBucket, error) {
	gear, err := s.store.GetByID(ctx, gearID)
	if err != nil {
		return nil, err
	}
	if gear.UserID != userID {
		return nil, models.ErrForbidden
	}

	if err := s.store.DeleteDetail(ctx, gear.Category, gearID); err != nil {
		log.Warn().Err(err).Str("gear_id", gearID).Msg("Failed to delete gear details")
	}

	if err := s.store.Delete(ctx, gearID); err != nil {
		return nil, fmt.Errorf("failed to delete gear: %w", err)
	}

	return s.FetchAll(ctx, userID)
}
