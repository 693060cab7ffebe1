package adjustments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

// Service exposes the adjustment ledger.
type Service interface {
	ListAdjustments(ctx context.Context, input ListAdjustmentsInput) ([]AdjustmentDTO, error)
	GetAdjustment(ctx context.Context, id uint) (*AdjustmentDTO, error)
	CreateAdjustment(ctx context.Context, input CreateAdjustmentInput) (*AdjustmentDTO, error)
	UpdateAdjustment(ctx context.Context, id uint, input UpdateAdjustmentInput) (*AdjustmentDTO, error)
	DeleteAdjustment(ctx context.Context, id uint) error
}

// lotChecker verifies a vaccine id refers to a stored lot. Satisfied by the
// vaccines repository.
type lotChecker interface {
	FindByID(ctx context.Context, id uint) (*models.VaccineLot, error)
}

type service struct {
	repo *Repository
	lots lotChecker
	now  func() time.Time
}

// NewService constructs an adjustment ledger service.
func NewService(repo *Repository, lots lotChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("adjustment repository required")
	}
	if lots == nil {
		return nil, fmt.Errorf("lot checker required")
	}
	return &service{repo: repo, lots: lots, now: time.Now}, nil
}

func (s *service) ListAdjustments(ctx context.Context, input ListAdjustmentsInput) ([]AdjustmentDTO, error) {
	recs, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list adjustments")
	}
	return toDTOs(recs), nil
}

func (s *service) GetAdjustment(ctx context.Context, id uint) (*AdjustmentDTO, error) {
	rec, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*rec)
	return &dto, nil
}

// CreateAdjustment appends a standalone entry. The referenced lot must
// exist at write time; the entry survives if the lot is later deleted.
func (s *service) CreateAdjustment(ctx context.Context, input CreateAdjustmentInput) (*AdjustmentDTO, error) {
	if input.AdjustmentAmount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment amount must be non-zero")
	}
	if input.Reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment reason required")
	}
	if _, err := s.lots.FindByID(ctx, input.VaccineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("vaccine lot %d not found", input.VaccineID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vaccine lot")
	}

	rec := &models.AdjustmentRecord{
		VaccineID:        input.VaccineID,
		AdjustmentAmount: input.AdjustmentAmount,
		Reason:           input.Reason,
		Date:             input.Date,
		PerformedBy:      input.PerformedBy,
	}
	if rec.Date.IsZero() {
		rec.Date = s.now()
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert adjustment")
	}
	dto := toDTO(*created)
	return &dto, nil
}

func (s *service) UpdateAdjustment(ctx context.Context, id uint, input UpdateAdjustmentInput) (*AdjustmentDTO, error) {
	rec, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AdjustmentAmount != nil {
		if *input.AdjustmentAmount == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment amount must be non-zero")
		}
		rec.AdjustmentAmount = *input.AdjustmentAmount
	}
	if input.Reason != nil {
		rec.Reason = *input.Reason
	}
	if input.Date != nil {
		rec.Date = *input.Date
	}
	if input.PerformedBy != nil {
		rec.PerformedBy = *input.PerformedBy
	}

	saved, err := s.repo.Save(ctx, rec)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update adjustment")
	}
	dto := toDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteAdjustment(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("adjustment %d not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete adjustment")
	}
	return nil
}

func (s *service) findRecord(ctx context.Context, id uint) (*models.AdjustmentRecord, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("adjustment %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load adjustment")
	}
	return rec, nil
}
