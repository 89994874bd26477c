package dto

import "TripPlanner/internal/model"

// ========== Place DTOs ==========

// CreatePlaceRequest creates a place. Order 0 appends to the end of the day.
type CreatePlaceRequest struct {
	TripID         string               `json:"tripId" validate:"required"`
	Name           string               `json:"name" validate:"required,max=255"`
	Address        string               `json:"address"`
	Time           string               `json:"time"`
	Duration       string               `json:"duration"`
	Day            int                  `json:"day" validate:"required,min=1"`
	Order          int                  `json:"order" validate:"min=0"`
	Category       string               `json:"category"`
	PlaceID        *string              `json:"placeId"`
	OperatingHours model.OperatingHours `json:"operatingHours"`
	Notes          *string              `json:"notes"`
}

// UpdatePlaceRequest carries the fields to change; nil leaves a field untouched.
type UpdatePlaceRequest struct {
	Name           *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Address        *string              `json:"address"`
	Time           *string              `json:"time"`
	Duration       *string              `json:"duration"`
	Day            *int                 `json:"day" validate:"omitempty,min=1"`
	Order          *int                 `json:"order" validate:"omitempty,min=1"`
	Category       *string              `json:"category"`
	PlaceID        *string              `json:"placeId"`
	OperatingHours model.OperatingHours `json:"operatingHours"`
	Notes          *string              `json:"notes"`
}

// PlacePosition is one {id, day, order} triple of a bulk update.
type PlacePosition struct {
	ID    string `json:"id" validate:"required"`
	Day   int    `json:"day" validate:"min=1"`
	Order int    `json:"order" validate:"min=1"`
}

// BulkUpdatePlacesRequest accepts both {"places": [...]} and {"updates": [...]}.
type BulkUpdatePlacesRequest struct {
	Places  []PlacePosition `json:"places" validate:"dive"`
	Updates []PlacePosition `json:"updates" validate:"dive"`
}

func (r BulkUpdatePlacesRequest) Positions() []PlacePosition {
	if len(r.Places) > 0 {
		return r.Places
	}
	return r.Updates
}

// MovePlaceRequest names the drop target of a drag: a day container or another place.
type MovePlaceRequest struct {
	TargetDay     *int    `json:"targetDay" validate:"omitempty,min=1"`
	TargetPlaceID *string `json:"targetPlaceId"`
}

// MovePlaceResponse returns the trip's places after a move.
type MovePlaceResponse struct {
	Moved   bool          `json:"moved"`
	Changed int           `json:"changed"`
	Places  []model.Place `json:"places"`
}
