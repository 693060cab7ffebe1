package shipments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

// DefaultRecentLimit caps the dashboard's recent-shipments panel.
const DefaultRecentLimit = 10

// Service exposes the shipment receiving log.
type Service interface {
	ListShipments(ctx context.Context) ([]ShipmentDTO, error)
	RecentShipments(ctx context.Context, limit int) ([]ShipmentDTO, error)
	GetShipment(ctx context.Context, id uint) (*ShipmentDTO, error)
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentDTO, error)
	UpdateShipment(ctx context.Context, id uint, input UpdateShipmentInput) (*ShipmentDTO, error)
	DeleteShipment(ctx context.Context, id uint) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a shipment log service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipment repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

func (s *service) ListShipments(ctx context.Context) ([]ShipmentDTO, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list shipments")
	}
	return toDTOs(recs), nil
}

func (s *service) RecentShipments(ctx context.Context, limit int) ([]ShipmentDTO, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	recs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent shipments")
	}
	return toDTOs(recs), nil
}

func (s *service) GetShipment(ctx context.Context, id uint) (*ShipmentDTO, error) {
	rec, err := s.findRecord(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*rec)
	return &dto, nil
}

// CreateShipment records a received shipment. With ReceiveIntoInventory
// set, the passed-inspection doses become a new vaccine lot atomically with
// the log entry.
func (s *service) CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentDTO, error) {
	if err := validateCounts(input.QuantitySent, input.QuantityReceived, input.PassedInspection, input.FailedInspection, input.DiscrepancyReason); err != nil {
		return nil, err
	}

	now := s.now()
	rec := &models.ShipmentRecord{
		CommercialName:    input.CommercialName,
		GenericName:       input.GenericName,
		LotNumber:         input.LotNumber,
		ExpirationDate:    input.ExpirationDate,
		QuantitySent:      input.QuantitySent,
		QuantityReceived:  input.QuantityReceived,
		PassedInspection:  input.PassedInspection,
		FailedInspection:  input.FailedInspection,
		DiscrepancyReason: input.DiscrepancyReason,
		ReceivedDate:      input.ReceivedDate,
	}
	if rec.ReceivedDate.IsZero() {
		rec.ReceivedDate = now
	}

	var dto ShipmentDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.Create(ctx, rec)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert shipment")
		}

		if input.ReceiveIntoInventory && input.PassedInspection > 0 {
			lot := &models.VaccineLot{
				CommercialName: input.CommercialName,
				GenericName:    input.GenericName,
				LotNumber:      input.LotNumber,
				ExpirationDate: input.ExpirationDate,
				QuantityOnHand: input.PassedInspection,
				ReceivedDate:   created.ReceivedDate,
				LastUpdated:    now,
			}
			if err := tx.WithContext(ctx).Create(lot).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: receive shipment into inventory")
			}
		}

		dto = toDTO(*created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) UpdateShipment(ctx context.Context, id uint, input UpdateShipmentInput) (*ShipmentDTO, error) {
	rec, err := s.findRecord(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if input.CommercialName != nil {
		rec.CommercialName = *input.CommercialName
	}
	if input.GenericName != nil {
		rec.GenericName = *input.GenericName
	}
	if input.LotNumber != nil {
		rec.LotNumber = *input.LotNumber
	}
	if input.ExpirationDate != nil {
		rec.ExpirationDate = *input.ExpirationDate
	}
	if input.QuantitySent != nil {
		rec.QuantitySent = *input.QuantitySent
	}
	if input.QuantityReceived != nil {
		rec.QuantityReceived = *input.QuantityReceived
	}
	if input.PassedInspection != nil {
		rec.PassedInspection = *input.PassedInspection
	}
	if input.FailedInspection != nil {
		rec.FailedInspection = *input.FailedInspection
	}
	if input.DiscrepancyReason != nil {
		rec.DiscrepancyReason = input.DiscrepancyReason
	}
	if input.ReceivedDate != nil {
		rec.ReceivedDate = *input.ReceivedDate
	}

	if err := validateCounts(rec.QuantitySent, rec.QuantityReceived, rec.PassedInspection, rec.FailedInspection, rec.DiscrepancyReason); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, rec)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update shipment")
	}
	dto := toDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteShipment(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("shipment %d not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete shipment")
	}
	return nil
}

func validateCounts(sent, received, passed, failed int, discrepancy *string) error {
	if sent < 0 || received < 0 || passed < 0 || failed < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipment counts cannot be negative")
	}
	if passed+failed != received {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"passed_inspection and failed_inspection must sum to quantity_received")
	}
	if failed > 0 && (discrepancy == nil || *discrepancy == "") {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"discrepancy_reason required when doses fail inspection")
	}
	return nil
}

func (s *service) findRecord(ctx context.Context, repo *Repository, id uint) (*models.ShipmentRecord, error) {
	rec, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("shipment %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load shipment")
	}
	return rec, nil
}
