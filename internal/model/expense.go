package model

import "github.com/shopspring/decimal"

// Expense categories.
const (
	ExpenseCategoryFlight        = "flight"
	ExpenseCategoryAccommodation = "accommodation"
	ExpenseCategoryFood          = "food"
	ExpenseCategoryTransport     = "transport"
	ExpenseCategoryShopping      = "shopping"
	ExpenseCategoryActivity      = "activity"
	ExpenseCategoryEntrance      = "entrance"
)

var ExpenseCategories = []string{
	ExpenseCategoryFlight,
	ExpenseCategoryAccommodation,
	ExpenseCategoryFood,
	ExpenseCategoryTransport,
	ExpenseCategoryShopping,
	ExpenseCategoryActivity,
	ExpenseCategoryEntrance,
}

const (
	CurrencyKRW = "KRW"
	CurrencyTHB = "THB"
)

// Expense amounts are always KRW once stored. PlaceID nil marks a miscellaneous cost.
type Expense struct {
	BaseModel
	TripID      string          `gorm:"type:uuid;not null;index" json:"tripId"`
	PlaceID     *string         `gorm:"type:uuid;index" json:"placeId"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"type:varchar(32);not null" json:"category"`
	Date        Date            `gorm:"not null" json:"date"`
	Currency    string          `gorm:"type:varchar(8);not null;default:'KRW'" json:"currency"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ExpenseWithPlace is an expense joined with its place's name and day.
type ExpenseWithPlace struct {
	Expense
	PlaceName *string `gorm:"column:place_name;->" json:"placeName"`
	PlaceDay  *int    `gorm:"column:place_day;->" json:"placeDay"`
}

// ExpenseCategoryForPlace picks the expense category used when a cost is entered on a place.
func ExpenseCategoryForPlace(placeCategory string) string {
	switch placeCategory {
	case PlaceCategoryRestaurant:
		return ExpenseCategoryFood
	case PlaceCategoryAttraction:
		return ExpenseCategoryEntrance
	case PlaceCategoryHotel:
		return ExpenseCategoryAccommodation
	case PlaceCategoryFlight:
		return ExpenseCategoryFlight
	case PlaceCategoryTransport:
		return ExpenseCategoryTransport
	default:
		return ExpenseCategoryActivity
	}
}
