package vaccines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

// Service exposes vaccine lot management operations.
type Service interface {
	ListVaccines(ctx context.Context, input ListVaccinesInput) ([]VaccineDTO, error)
	GetVaccine(ctx context.Context, id uint) (*VaccineDTO, error)
	CreateVaccine(ctx context.Context, input CreateVaccineInput) (*VaccineDTO, error)
	UpdateVaccine(ctx context.Context, id uint, input UpdateVaccineInput) (*VaccineDTO, error)
	DeleteVaccine(ctx context.Context, id uint) error
	AdministerDoses(ctx context.Context, id uint, count int) (*VaccineDTO, error)
	AdjustQuantity(ctx context.Context, id uint, input AdjustQuantityInput) (*VaccineDTO, error)
}

// adjustmentRecorder appends one ledger entry inside the caller's
// transaction. Satisfied by the adjustments repository.
type adjustmentRecorder interface {
	RecordTx(ctx context.Context, tx *gorm.DB, rec *models.AdjustmentRecord) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	ledger   adjustmentRecorder
	opts     inventory.Options
	now      func() time.Time
}

// NewService constructs a vaccine service instance.
func NewService(repo *Repository, dbClient *db.Client, ledger adjustmentRecorder, opts inventory.Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vaccine repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("adjustment recorder required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		ledger:   ledger,
		opts:     opts,
		now:      time.Now,
	}, nil
}

// ListVaccines returns the filtered, sorted inventory view.
func (s *service) ListVaccines(ctx context.Context, input ListVaccinesInput) ([]VaccineDTO, error) {
	lots, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vaccine lots")
	}
	today := s.now()

	lots = inventory.Search(lots, input.Search)
	lots = inventory.FilterByStatus(lots, input.Status, today, s.opts)
	lots = inventory.SortLots(lots, input.SortKey, input.SortOrder)

	return toDTOs(lots, today, s.opts), nil
}

// GetVaccine loads one lot.
func (s *service) GetVaccine(ctx context.Context, id uint) (*VaccineDTO, error) {
	lot, err := s.findLot(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*lot, s.now(), s.opts)
	return &dto, nil
}

// CreateVaccine registers a new lot; the database assigns its id.
func (s *service) CreateVaccine(ctx context.Context, input CreateVaccineInput) (*VaccineDTO, error) {
	if input.QuantityOnHand < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_on_hand cannot be negative")
	}

	now := s.now()
	lot := &models.VaccineLot{
		CommercialName: input.CommercialName,
		GenericName:    input.GenericName,
		LotNumber:      input.LotNumber,
		ExpirationDate: input.ExpirationDate,
		QuantityOnHand: input.QuantityOnHand,
		ReceivedDate:   input.ReceivedDate,
		LastUpdated:    now,
	}
	if lot.ReceivedDate.IsZero() {
		lot.ReceivedDate = now
	}

	created, err := s.repo.Create(ctx, lot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert vaccine lot")
	}
	dto := toDTO(*created, now, s.opts)
	return &dto, nil
}

// UpdateVaccine applies the provided descriptive fields. Quantity is out of
// scope here; see AdministerDoses and AdjustQuantity.
func (s *service) UpdateVaccine(ctx context.Context, id uint, input UpdateVaccineInput) (*VaccineDTO, error) {
	var dto VaccineDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		lot, err := s.findLot(ctx, txRepo, id)
		if err != nil {
			return err
		}

		if input.CommercialName != nil {
			lot.CommercialName = *input.CommercialName
		}
		if input.GenericName != nil {
			lot.GenericName = *input.GenericName
		}
		if input.LotNumber != nil {
			lot.LotNumber = *input.LotNumber
		}
		if input.ExpirationDate != nil {
			lot.ExpirationDate = *input.ExpirationDate
		}
		if input.ReceivedDate != nil {
			lot.ReceivedDate = *input.ReceivedDate
		}
		lot.LastUpdated = s.now()

		saved, err := txRepo.Save(ctx, lot)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update vaccine lot")
		}
		dto = toDTO(*saved, s.now(), s.opts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// DeleteVaccine removes a lot. Ledger entries referencing it are kept; the
// audit trail outlives the record it describes.
func (s *service) DeleteVaccine(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete vaccine lot")
	}
	return nil
}

// AdministerDoses subtracts count doses from the lot. The decrement is a
// single guarded UPDATE, so two concurrent administrations can never drive
// the quantity negative: the loser of the race gets an insufficient-quantity
// error and the stored value is untouched.
func (s *service) AdministerDoses(ctx context.Context, id uint, count int) (*VaccineDTO, error) {
	if count <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "administered count must be a positive integer")
	}

	var dto VaccineDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		ok, err := txRepo.DecrementQuantity(ctx, id, count, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: administer doses")
		}
		if !ok {
			lot, err := txRepo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound(id)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vaccine lot")
			}
			return pkgerrors.New(pkgerrors.CodeInsufficient,
				fmt.Sprintf("cannot administer %d doses: only %d on hand", count, lot.QuantityOnHand)).
				WithDetails(map[string]interface{}{
					"requested": count,
					"available": lot.QuantityOnHand,
				})
		}

		lot, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload vaccine lot")
		}
		dto = toDTO(*lot, s.now(), s.opts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// AdjustQuantity applies a signed correction and appends a ledger entry in
// the same transaction. The stored quantity clamps at zero; the ledger keeps
// the amount as requested so the audit trail reflects intent.
func (s *service) AdjustQuantity(ctx context.Context, id uint, input AdjustQuantityInput) (*VaccineDTO, error) {
	if input.Amount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment amount must be non-zero")
	}
	if input.Reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment reason required")
	}

	var dto VaccineDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		now := s.now()
		ok, err := txRepo.ApplyAdjustment(ctx, id, input.Amount, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust quantity")
		}
		if !ok {
			return notFound(id)
		}

		rec := &models.AdjustmentRecord{
			VaccineID:        id,
			AdjustmentAmount: input.Amount,
			Reason:           input.Reason,
			Date:             now,
			PerformedBy:      input.PerformedBy,
		}
		if err := s.ledger.RecordTx(ctx, tx, rec); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: record adjustment")
		}

		lot, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload vaccine lot")
		}
		dto = toDTO(*lot, now, s.opts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) findLot(ctx context.Context, repo *Repository, id uint) (*models.VaccineLot, error) {
	lot, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vaccine lot")
	}
	return lot, nil
}

func notFound(id uint) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vaccine lot %d not found", id))
}
