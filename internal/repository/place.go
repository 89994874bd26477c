package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"TripPlanner/internal/model"
	"TripPlanner/internal/reorder"
	pkgdb "TripPlanner/pkg/database"
)

type PlaceRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// ListByTrip returns the trip's places ordered by (day, order).
func (r *PlaceRepository) ListByTrip(ctx context.Context, tripID string) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day ASC, order_index ASC").
		Find(&places).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

func (r *PlaceRepository) Get(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&place).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// Create inserts place and applies the position shifts of its siblings in the same transaction.
func (r *PlaceRepository) Create(ctx context.Context, place *model.Place, shifts []reorder.Item) error {
	return r.transaction(ctx, "place.create", func(tx *gorm.DB) error {
		if err := updatePositions(tx, shifts); err != nil {
			return err
		}
		if err := tx.Create(place).Error; err != nil {
			return fmt.Errorf("failed to create place: %w", err)
		}
		return nil
	})
}

// Update writes fields to the place and the sibling positions together.
// A missing row rolls everything back with gorm.ErrRecordNotFound.
func (r *PlaceRepository) Update(ctx context.Context, id string, fields map[string]interface{}, shifts []reorder.Item) error {
	return r.transaction(ctx, "place.update", func(tx *gorm.DB) error {
		if err := updatePositions(tx, shifts); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		fields["updated_at"] = time.Now()
		res := tx.Model(&model.Place{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return fmt.Errorf("failed to update place: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes the place and closes the gap in its day. Expenses that
// reference the place are kept.
func (r *PlaceRepository) Delete(ctx context.Context, id string, shifts []reorder.Item) error {
	return r.transaction(ctx, "place.delete", func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Place{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete place: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return updatePositions(tx, shifts)
	})
}

// UpdatePositions writes every {id, day, order} in one transaction.
// Any failure or unknown id rolls the whole batch back.
func (r *PlaceRepository) UpdatePositions(ctx context.Context, positions []reorder.Item) error {
	if len(positions) == 0 {
		return nil
	}
	return r.transaction(ctx, "place.positions", func(tx *gorm.DB) error {
		return updatePositions(tx, positions)
	})
}

func updatePositions(tx *gorm.DB, positions []reorder.Item) error {
	now := time.Now()
	for _, p := range positions {
		res := tx.Model(&model.Place{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"day":         p.Day,
				"order_index": p.Order,
				"updated_at":  now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update position of place %s: %w", p.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("place %s: %w", p.ID, gorm.ErrRecordNotFound)
		}
	}
	return nil
}

func (r *PlaceRepository) transaction(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(fn)
	pkgdb.RecordTransaction(ctx, name, err)
	return err
}
