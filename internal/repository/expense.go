package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
)

const expenseWithPlaceColumns = "expenses.*, places.name AS place_name, places.day AS place_day"

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) withPlace(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select(expenseWithPlaceColumns).
		Joins("LEFT JOIN places ON places.id = expenses.place_id")
}

// ListByTrip returns the trip's expenses by date, joined with their place's name and day.
func (r *ExpenseRepository) ListByTrip(ctx context.Context, tripID string) ([]model.ExpenseWithPlace, error) {
	var expenses []model.ExpenseWithPlace
	err := r.withPlace(ctx).
		Where("expenses.trip_id = ?", tripID).
		Order("expenses.date ASC, expenses.created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) ListByPlace(ctx context.Context, placeID string) ([]model.ExpenseWithPlace, error) {
	var expenses []model.ExpenseWithPlace
	err := r.withPlace(ctx).
		Where("expenses.place_id = ?", placeID).
		Order("expenses.created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list place expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Get(ctx context.Context, id string) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.Expense{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Expense{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CategoryStats sums amounts and counts expenses per category, largest total first.
func (r *ExpenseRepository) CategoryStats(ctx context.Context, tripID string) ([]dto.CategoryStat, error) {
	var stats []dto.CategoryStat
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Where("trip_id = ?", tripID).
		Group("category").
		Order("total_amount DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	return stats, nil
}
