package vaccines

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
)

// Repository provides persistence for vaccine lots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns every lot ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.VaccineLot, error) {
	var lots []models.VaccineLot
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByID loads a single lot.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.VaccineLot, error) {
	var lot models.VaccineLot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

// Create inserts a lot; the database assigns the id.
func (r *Repository) Create(ctx context.Context, lot *models.VaccineLot) (*models.VaccineLot, error) {
	if err := r.db.WithContext(ctx).Create(lot).Error; err != nil {
		return nil, err
	}
	return lot, nil
}

// Save persists every field of the lot.
func (r *Repository) Save(ctx context.Context, lot *models.VaccineLot) (*models.VaccineLot, error) {
	if err := r.db.WithContext(ctx).Save(lot).Error; err != nil {
		return nil, err
	}
	return lot, nil
}

// Delete removes a lot. Returns gorm.ErrRecordNotFound when the id does not
// exist so callers can map it to a 404.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.VaccineLot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementQuantity subtracts count doses only if enough are on hand, in a
// single conditional UPDATE. The returned flag reports whether the row was
// updated; false means the guard rejected the decrement (or the id is gone),
// and the caller decides which.
func (r *Repository) DecrementQuantity(ctx context.Context, id uint, count int, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.VaccineLot{}).
		Where("id = ? AND quantity_on_hand >= ?", id, count).
		Updates(map[string]interface{}{
			"quantity_on_hand": gorm.Expr("quantity_on_hand - ?", count),
			"last_updated":     now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ApplyAdjustment adds a signed amount to the on-hand quantity, clamping at
// zero inside the statement so concurrent adjustments can never drive the
// stored value negative.
func (r *Repository) ApplyAdjustment(ctx context.Context, id uint, amount int, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.VaccineLot{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity_on_hand": gorm.Expr(
				"CASE WHEN quantity_on_hand + ? < 0 THEN 0 ELSE quantity_on_hand + ? END",
				amount, amount,
			),
			"last_updated": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Count returns the number of stored lots.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.VaccineLot{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
