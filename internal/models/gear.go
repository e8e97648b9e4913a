package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// GearCategory is the closed set of gear categories. It is fixed at creation
// and never changes for the lifetime of a gear item.
type GearCategory string

const (
	CategoryDeck     GearCategory = "deck"
	CategoryTruck    GearCategory = "truck"
	CategoryWheel    GearCategory = "wheel"
	CategoryBearing  GearCategory = "bearing"
	CategoryGriptape GearCategory = "griptape"
	CategoryTool     GearCategory = "tool"
)

// Categories returns all gear categories in display order.
func Categories() []GearCategory {
	return []GearCategory{
		CategoryDeck,
		CategoryTruck,
		CategoryWheel,
		CategoryBearing,
		CategoryGriptape,
		CategoryTool,
	}
}

// detailTables maps each category to its detail table. An explicit closed
// mapping instead of string concatenation, so an unknown category fails at
// the boundary rather than producing a bogus table name.
var detailTables = map[GearCategory]string{
	CategoryDeck:     "deck_details",
	CategoryTruck:    "truck_details",
	CategoryWheel:    "wheel_details",
	CategoryBearing:  "bearing_details",
	CategoryGriptape: "griptape_details",
	CategoryTool:     "tool_details",
}

// DetailTable returns the detail table for the category.
func (c GearCategory) DetailTable() (string, bool) {
	t, ok := detailTables[c]
	return t, ok
}

// Valid reports whether c is one of the six known categories.
func (c GearCategory) Valid() bool {
	_, ok := detailTables[c]
	return ok
}

// UsageStatus tells whether a gear item is currently in use.
type UsageStatus string

const (
	UsageYes   UsageStatus = "Yes"
	UsageNo    UsageStatus = "No"
	UsageStock UsageStatus = "Stock"
)

// Condition is the physical condition of a gear item.
type Condition string

const (
	ConditionNew    Condition = "New"
	ConditionPoor   Condition = "Poor"
	ConditionBroken Condition = "Broken"
)

// Gear is the base record shared by all categories.
type Gear struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Category  GearCategory `json:"category"`
	Name      string       `json:"name"`
	Specs     string       `json:"specs"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// DetailCommon holds the fields every detail record carries.
type DetailCommon struct {
	ImageURL  string    `json:"image_url"`
	Price     float64   `json:"price"`
	Condition Condition `json:"condition,omitempty"`
}

// Detail is the category-specific attribute set attached 1:1 to a gear
// record. Exactly one concrete type per category; the category tag selects
// which one.
type Detail interface {
	GearCategory() GearCategory
	Common() *DetailCommon
}

// DeckDetail holds deck-specific attributes.
type DeckDetail struct {
	DetailCommon
	CurrentlyUsing UsageStatus `json:"currently_using,omitempty"`
	Model          string      `json:"model,omitempty"`
	Size           string      `json:"size,omitempty"`
	PurchaseDate   string      `json:"purchase_date,omitempty"`
}

func (d *DeckDetail) GearCategory() GearCategory { return CategoryDeck }
func (d *DeckDetail) Common() *DetailCommon      { return &d.DetailCommon }

// TruckDetail holds truck-specific attributes.
type TruckDetail struct {
	DetailCommon
	CurrentlyUsing UsageStatus `json:"currently_using,omitempty"`
	Width          string      `json:"width,omitempty"`
	Height         string      `json:"height,omitempty"`
	Color          string      `json:"color,omitempty"`
	AxleType       string      `json:"axle_type,omitempty"`
	Weight         float64     `json:"weight,omitempty"`
}

func (d *TruckDetail) GearCategory() GearCategory { return CategoryTruck }
func (d *TruckDetail) Common() *DetailCommon      { return &d.DetailCommon }

// WheelDetail holds wheel-specific attributes.
type WheelDetail struct {
	DetailCommon
	CurrentlyUsing UsageStatus `json:"currently_using,omitempty"`
	Diameter       float64     `json:"diameter,omitempty"`
	Durometer      string      `json:"durometer,omitempty"`
	ContactPatch   float64     `json:"contact_patch,omitempty"`
	Color          string      `json:"color,omitempty"`
}

func (d *WheelDetail) GearCategory() GearCategory { return CategoryWheel }
func (d *WheelDetail) Common() *DetailCommon      { return &d.DetailCommon }

// BearingDetail holds bearing-specific attributes.
type BearingDetail struct {
	DetailCommon
	CurrentlyUsing UsageStatus `json:"currently_using,omitempty"`
	ABECRating     string      `json:"abec_rating,omitempty"`
	Material       string      `json:"material,omitempty"`
	ShieldsType    string      `json:"shields_type,omitempty"`
}

func (d *BearingDetail) GearCategory() GearCategory { return CategoryBearing }
func (d *BearingDetail) Common() *DetailCommon      { return &d.DetailCommon }

// GriptapeDetail holds griptape-specific attributes.
type GriptapeDetail struct {
	DetailCommon
	CurrentlyUsing UsageStatus `json:"currently_using,omitempty"`
	Width          string      `json:"width,omitempty"`
	Length         string      `json:"length,omitempty"`
	Grit           string      `json:"grit,omitempty"`
	Color          string      `json:"color,omitempty"`
}

func (d *GriptapeDetail) GearCategory() GearCategory { return CategoryGriptape }
func (d *GriptapeDetail) Common() *DetailCommon      { return &d.DetailCommon }

// ToolDetail holds tool-specific attributes. Tools carry no usage status.
type ToolDetail struct {
	DetailCommon
	ToolType      string   `json:"tool_type,omitempty"`
	Material      string   `json:"material,omitempty"`
	IncludedTools []string `json:"included_tools,omitempty"`
	Color         string   `json:"color,omitempty"`
}

func (d *ToolDetail) GearCategory() GearCategory { return CategoryTool }
func (d *ToolDetail) Common() *DetailCommon      { return &d.DetailCommon }

// NewDetail returns the zero detail record for the category. It doubles as
// the default stub used when a gear item has no detail row: image_url empty,
// price zero, so display code never branches on absence.
func NewDetail(c GearCategory) (Detail, bool) {
	switch c {
	case CategoryDeck:
		return &DeckDetail{}, true
	case CategoryTruck:
		return &TruckDetail{}, true
	case CategoryWheel:
		return &WheelDetail{}, true
	case CategoryBearing:
		return &BearingDetail{}, true
	case CategoryGriptape:
		return &GriptapeDetail{}, true
	case CategoryTool:
		return &ToolDetail{}, true
	}
	return nil, false
}

// UnmarshalDetail decodes a detail payload into the concrete type selected
// by the category tag.
func UnmarshalDetail(c GearCategory, data []byte) (Detail, error) {
	d, ok := NewDetail(c)
	if !ok {
		return nil, ErrInvalidCategory
	}
	if len(data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse %s details: %w", c, err)
	}
	return d, nil
}

// GearWithDetails is the non-persisted view entity: a gear record joined
// with its single detail record (or the default stub) at read time.
type GearWithDetails struct {
	Gear
	Details Detail `json:"details"`
}

// CategoryBucket groups view entities by category for display. All six
// buckets are always present, in fixed order, even when empty.
type CategoryBucket struct {
	Category GearCategory      `json:"category"`
	Count    int               `json:"count"`
	Items    []GearWithDetails `json:"items"`
}
