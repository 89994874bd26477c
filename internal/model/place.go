package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Place categories used by the itinerary views.
const (
	PlaceCategoryRestaurant = "restaurant"
	PlaceCategoryAttraction = "tourist_attraction"
	PlaceCategoryHotel      = "hotel"
	PlaceCategoryFlight     = "flight"
	PlaceCategoryTransport  = "transport"
	PlaceCategoryShopping   = "shopping"
	PlaceCategoryCafe       = "cafe"
)

const (
	DefaultPlaceCategory = PlaceCategoryRestaurant
	DefaultPlaceDuration = "1시간"
)

// Place is one stop of the itinerary. Order is 1-based and dense within (TripID, Day).
type Place struct {
	BaseModel
	TripID          string         `gorm:"type:uuid;not null;index:idx_places_trip_day_order,priority:1" json:"tripId"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Address         string         `gorm:"type:text;not null;default:''" json:"address"`
	TimeRange       string         `gorm:"column:time_range;type:varchar(64);not null;default:''" json:"time"`
	Duration        string         `gorm:"type:varchar(64);not null;default:''" json:"duration"`
	Day             int            `gorm:"not null;index:idx_places_trip_day_order,priority:2" json:"day"`
	Order           int            `gorm:"column:order_index;not null;index:idx_places_trip_day_order,priority:3" json:"order"`
	Category        string         `gorm:"type:varchar(32);not null;default:'restaurant'" json:"category"`
	ExternalPlaceID *string        `gorm:"column:external_place_id;type:varchar(255)" json:"placeId,omitempty"`
	OperatingHours  OperatingHours `gorm:"type:text" json:"operatingHours,omitempty"`
	Notes           *string        `gorm:"type:text" json:"notes,omitempty"`
}

func (Place) TableName() string {
	return "places"
}

// OperatingHours maps a weekday label to an hours string, e.g. {"월": "09:00-18:00"}.
// It is persisted as JSON text.
type OperatingHours map[string]string

func (h OperatingHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to encode operating hours: %w", err)
	}
	return string(b), nil
}

func (h *OperatingHours) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into OperatingHours", src)
	}
	if len(raw) == 0 {
		*h = nil
		return nil
	}

	decoded := OperatingHours{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("failed to decode operating hours: %w", err)
	}
	*h = decoded
	return nil
}
