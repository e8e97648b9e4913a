package repository

import (
	"context"
	"errors"
	"fmt"

	"skatelog-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GearRepository handles database operations for gear and its per-category
// detail tables. Detail tables are addressed through the closed mapping on
// models.GearCategory, never by string formatting.
type GearRepository struct {
	db *pgxpool.Pool
}

// NewGearRepository creates a new gear repository
func NewGearRepository(db *pgxpool.Pool) *GearRepository {
	return &GearRepository{db: db}
}

// Create creates a new base gear row
func (r *GearRepository) Create(ctx context.Context, gear *models.Gear) error {
	query := `
		INSERT INTO skate_gear (id, user_id, category, name, specs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		gear.ID, gear.UserID, gear.Category, gear.Name, gear.Specs,
		gear.CreatedAt, gear.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gear: %w", err)
	}
	return nil
}

// GetByID retrieves a gear item by ID
func (r *GearRepository) GetByID(ctx context.Context, id string) (*models.Gear, error) {
	query := `
		SELECT id, user_id, category, name, specs, created_at, updated_at
		FROM skate_gear
		WHERE id = $1
	`
	var gear models.Gear
	err := r.db.QueryRow(ctx, query, id).Scan(
		&gear.ID, &gear.UserID, &gear.Category, &gear.Name, &gear.Specs,
		&gear.CreatedAt, &gear.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gear: %w", err)
	}
	return &gear, nil
}

// ListByUser retrieves all base gear rows for a user
func (r *GearRepository) ListByUser(ctx context.Context, userID string) ([]models.Gear, error) {
	query := `
		SELECT id, user_id, category, name, specs, created_at, updated_at
		FROM skate_gear
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gear: %w", err)
	}
	defer rows.Close()

	gear := make([]models.Gear, 0)
	for rows.Next() {
		var g models.Gear
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Category, &g.Name, &g.Specs,
			&g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gear: %w", err)
		}
		gear = append(gear, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gear: %w", err)
	}

	return gear, nil
}

// UpdateBase updates the mutable base fields of a gear row. Category is
// write-once and has no update path.
func (r *GearRepository) UpdateBase(ctx context.Context, id, name, specs string) error {
	query := `UPDATE skate_gear SET name = $1, specs = $2, updated_at = now() WHERE id = $3`
	result, err := r.db.Exec(ctx, query, name, specs, id)
	if err != nil {
		return fmt.Errorf("failed to update gear: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete deletes a base gear row
func (r *GearRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM skate_gear WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete gear: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetDetail retrieves the single detail row for a gear item from the table
// mapped from its category. A missing row yields models.ErrDetailNotFound,
// which callers treat as "use the default stub", not as a failure.
func (r *GearRepository) GetDetail(ctx context.Context, category models.GearCategory, gearID string) (models.Detail, error) {
	var (
		detail models.Detail
		err    error
	)

	switch category {
	case models.CategoryDeck:
		d := &models.DeckDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, currently_using, model, size, purchase_date
			FROM deck_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.CurrentlyUsing, &d.Model, &d.Size, &d.PurchaseDate)
		detail = d
	case models.CategoryTruck:
		d := &models.TruckDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, currently_using, width, height, color, axle_type, weight
			FROM truck_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.CurrentlyUsing, &d.Width, &d.Height, &d.Color, &d.AxleType, &d.Weight)
		detail = d
	case models.CategoryWheel:
		d := &models.WheelDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, currently_using, diameter, durometer, contact_patch, color
			FROM wheel_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.CurrentlyUsing, &d.Diameter, &d.Durometer, &d.ContactPatch, &d.Color)
		detail = d
	case models.CategoryBearing:
		d := &models.BearingDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, currently_using, abec_rating, material, shields_type
			FROM bearing_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.CurrentlyUsing, &d.ABECRating, &d.Material, &d.ShieldsType)
		detail = d
	case models.CategoryGriptape:
		d := &models.GriptapeDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, currently_using, width, length, grit, color
			FROM griptape_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.CurrentlyUsing, &d.Width, &d.Length, &d.Grit, &d.Color)
		detail = d
	case models.CategoryTool:
		d := &models.ToolDetail{}
		err = r.db.QueryRow(ctx, `
			SELECT image_url, price, condition, tool_type, material, included_tools, color
			FROM tool_details WHERE gear_id = $1
		`, gearID).Scan(&d.ImageURL, &d.Price, &d.Condition, &d.ToolType, &d.Material, &d.IncludedTools, &d.Color)
		detail = d
	default:
		return nil, models.ErrInvalidCategory
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDetailNotFound
		}
		return nil, fmt.Errorf("failed to get %s details: %w", category, err)
	}
	return detail, nil
}

// CreateDetail inserts the detail row for a gear item into the table mapped
// from the detail's own category.
func (r *GearRepository) CreateDetail(ctx context.Context, gearID string, detail models.Detail) error {
	var err error

	switch d := detail.(type) {
	case *models.DeckDetail:
		_, err = r.db.Exec(ctx, `
			INSERT INTO deck_details (gear_id, image_url, price, condition, currently_using, model, size, purchase_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Model, d.Size, d.PurchaseDate)
	case *models.TruckDetail:
		_, err = r.db.Exec(ctx, `
			INSERT INTO truck_details (gear_id, image_url, price, condition, currently_using, width, height, color, axle_type, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Width, d.Height, d.Color, d.AxleType, d.Weight)
	case *models.WheelDetail:
		_, err = r.db.Exec(ctx, `
			INSERT INTO wheel_details (gear_id, image_url, price, condition, currently_using, diameter, durometer, contact_patch, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Diameter, d.Durometer, d.ContactPatch, d.Color)
	case *models.BearingDetail:
		_, err = r.db.Exec(ctx, `
			INSERT INTO bearing_details (gear_id, image_url, price, condition, currently_using, abec_rating, material, shields_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.ABECRating, d.Material, d.ShieldsType)
	case *models.GriptapeDetail:
		_, err = r.db.Exec(ctx, `
			INSERT INTO griptape_details (gear_id, image_url, price, condition, currently_using, width, length, grit, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Width, d.Length, d.Grit, d.Color)
	case *models.ToolDetail:
		included := d.IncludedTools
		if included == nil {
			included = []string{}
		}
		_, err = r.db.Exec(ctx, `
			INSERT INTO tool_details (gear_id, image_url, price, condition, tool_type, material, included_tools, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, gearID, d.ImageURL, d.Price, defaultCondition(d.Condition), d.ToolType, d.Material, included, d.Color)
	default:
		return models.ErrInvalidCategory
	}

	if err != nil {
		return fmt.Errorf("failed to create %s details: %w", detail.GearCategory(), err)
	}
	return nil
}

// UpdateDetail updates the detail row addressed by gear id in the table
// mapped from the detail's own category.
func (r *GearRepository) UpdateDetail(ctx context.Context, gearID string, detail models.Detail) error {
	var err error

	switch d := detail.(type) {
	case *models.DeckDetail:
		_, err = r.db.Exec(ctx, `
			UPDATE deck_details
			SET image_url = $1, price = $2, condition = $3, currently_using = $4, model = $5, size = $6, purchase_date = $7
			WHERE gear_id = $8
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Model, d.Size, d.PurchaseDate, gearID)
	case *models.TruckDetail:
		_, err = r.db.Exec(ctx, `
			UPDATE truck_details
			SET image_url = $1, price = $2, condition = $3, currently_using = $4, width = $5, height = $6, color = $7, axle_type = $8, weight = $9
			WHERE gear_id = $10
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Width, d.Height, d.Color, d.AxleType, d.Weight, gearID)
	case *models.WheelDetail:
		_, err = r.db.Exec(ctx, `
			UPDATE wheel_details
			SET image_url = $1, price = $2, condition = $3, currently_using = $4, diameter = $5, durometer = $6, contact_patch = $7, color = $8
			WHERE gear_id = $9
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Diameter, d.Durometer, d.ContactPatch, d.Color, gearID)
	case *models.BearingDetail:
		_, err = r.db.Exec(ctx, `
			UPDATE bearing_details
			SET image_url = $1, price = $2, condition = $3, currently_using = $4, abec_rating = $5, material = $6, shields_type = $7
			WHERE gear_id = $8
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.ABECRating, d.Material, d.ShieldsType, gearID)
	case *models.GriptapeDetail:
		_, err = r.db.Exec(ctx, `
			UPDATE griptape_details
			SET image_url = $1, price = $2, condition = $3, currently_using = $4, width = $5, length = $6, grit = $7, color = $8
			WHERE gear_id = $9
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), defaultUsage(d.CurrentlyUsing), d.Width, d.Length, d.Grit, d.Color, gearID)
	case *models.ToolDetail:
		included := d.IncludedTools
		if included == nil {
			included = []string{}
		}
		_, err = r.db.Exec(ctx, `
			UPDATE tool_details
			SET image_url = $1, price = $2, condition = $3, tool_type = $4, material = $5, included_tools = $6, color = $7
			WHERE gear_id = $8
		`, d.ImageURL, d.Price, defaultCondition(d.Condition), d.ToolType, d.Material, included, d.Color, gearID)
	default:
		return models.ErrInvalidCategory
	}

	if err != nil {
		return fmt.Errorf("failed to update %s details: %w", detail.GearCategory(), err)
	}
	return nil
}

// DeleteDetail deletes the detail row for a gear item. A row that was never
// created is not an error.
func (r *GearRepository) DeleteDetail(ctx context.Context, category models.GearCategory, gearID string) error {
	table, ok := category.DetailTable()
	if !ok {
		return models.ErrInvalidCategory
	}
	// table comes from the closed mapping, not from input
	query := fmt.Sprintf(`DELETE FROM %s WHERE gear_id = $1`, table)
	if _, err := r.db.Exec(ctx, query, gearID); err != nil {
		return fmt.Errorf("failed to delete %s details: %w", category, err)
	}
	return nil
}

// defaultCondition keeps the schema's enum check satisfied when the client
// omits the field.
func defaultCondition(c models.Condition) models.Condition {
	if c == "" {
		return models.ConditionNew
	}
	return c
}

func defaultUsage(u models.UsageStatus) models.UsageStatus {
	if u == "" {
		return models.UsageNo
	}
	return u
}
