package shipments

import (
	"context"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
)

// Repository provides persistence for the shipment receiving log.
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

// List returns the full receiving log, most recent first.
func (r *Repository) List(ctx context.Context) ([]models.ShipmentRecord, error) {
	var recs []models.ShipmentRecord
	if err := r.db.WithContext(ctx).Order("received_date DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Recent returns the most recent entries up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.ShipmentRecord, error) {
	var recs []models.ShipmentRecord
	q := r.db.WithContext(ctx).Order("received_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByID loads a single entry.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.ShipmentRecord, error) {
	var rec models.ShipmentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts an entry; the database assigns the id.
func (r *Repository) Create(ctx context.Context, rec *models.ShipmentRecord) (*models.ShipmentRecord, error) {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Save persists every field of the entry.
func (r *Repository) Save(ctx context.Context, rec *models.ShipmentRecord) (*models.ShipmentRecord, error) {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes an entry.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ShipmentRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
