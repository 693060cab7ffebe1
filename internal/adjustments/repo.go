package adjustments

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
)

// Repository provides persistence for the adjustment ledger.
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

// Create appends a ledger entry.
func (r *Repository) Create(ctx context.Context, rec *models.AdjustmentRecord) (*models.AdjustmentRecord, error) {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordTx appends a ledger entry inside the caller's transaction. This is
// how quantity mutations keep their audit entry atomic with the stock
// change.
func (r *Repository) RecordTx(ctx context.Context, tx *gorm.DB, rec *models.AdjustmentRecord) error {
	return tx.WithContext(ctx).Create(rec).Error
}

// List returns ledger entries newest first, optionally scoped to one
// vaccine and a date range.
func (r *Repository) List(ctx context.Context, input ListAdjustmentsInput) ([]models.AdjustmentRecord, error) {
	q := r.db.WithContext(ctx).Model(&models.AdjustmentRecord{})
	if input.VaccineID != 0 {
		q = q.Where("vaccine_id = ?", input.VaccineID)
	}
	if !input.From.IsZero() {
		q = q.Where("date >= ?", input.From)
	}
	if !input.To.IsZero() {
		q = q.Where("date <= ?", input.To)
	}

	var recs []models.AdjustmentRecord
	if err := q.Order("date DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByID loads a single ledger entry.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.AdjustmentRecord, error) {
	var rec models.AdjustmentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save persists every field of the entry.
func (r *Repository) Save(ctx context.Context, rec *models.AdjustmentRecord) (*models.AdjustmentRecord, error) {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a ledger entry.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.AdjustmentRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountSince reports entries recorded at or after the cutoff. The cron
// worker uses this for its activity summary.
func (r *Repository) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AdjustmentRecord{}).
		Where("date >= ?", cutoff).Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
