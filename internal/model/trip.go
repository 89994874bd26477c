package model

import "github.com/shopspring/decimal"

// Trip owns the places and expenses of one journey.
type Trip struct {
	BaseModel
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Description string           `gorm:"type:text;not null;default:''" json:"description"`
	StartDate   Date             `gorm:"not null" json:"startDate"`
	EndDate     Date             `gorm:"not null" json:"endDate"`
	Budget      *decimal.Decimal `gorm:"type:numeric(14,2)" json:"budget,omitempty"`
}

func (Trip) TableName() string {
	return "trips"
}

// TotalDays counts both the start and the end date.
func (t Trip) TotalDays() int {
	return t.EndDate.DaysSince(t.StartDate) + 1
}

// ValidDay reports whether day falls inside the trip.
func (t Trip) ValidDay(day int) bool {
	return day >= 1 && day <= t.TotalDays()
}

// DateOfDay maps a 1-based trip day to its calendar date.
func (t Trip) DateOfDay(day int) Date {
	return t.StartDate.AddDays(day - 1)
}
