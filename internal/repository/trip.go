package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"TripPlanner/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).Order("start_date ASC, created_at ASC").Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

// Get returns gorm.ErrRecordNotFound when the trip does not exist.
func (r *TripRepository) Get(ctx context.Context, id string) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// FindByTitleKeyword returns the oldest trip whose title contains keyword.
func (r *TripRepository) FindByTitleKeyword(ctx context.Context, keyword string) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).
		Where("title LIKE ?", "%"+escapeLike(keyword)+"%").
		Order("created_at ASC").
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}
