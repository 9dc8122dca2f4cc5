package returnrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// GormReturnRepository implements ports.ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnRepository creates a new GORM return request repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return request to the database.
// A collision on the randomly generated RMA number surfaces as a
// ConflictError; the creation flow regenerates and retries.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *rma.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return errs.NewConflictErrorWithCause("rmaNumber", aggregate.Number().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing return request with the same conditional-write
// discipline as the order repository: the row is only touched when its status
// still equals the status the aggregate was loaded with.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *rma.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ReturnRequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.LoadedStatus().String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&ReturnRequestDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("return", aggregate.ID().String())
		}
		return errs.NewConflictError("return", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return request by ID.
func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*rma.ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a return request by its RMA number.
func (r *GormReturnRepository) GetByNumber(ctx context.Context, number rma.Number) (*rma.ReturnRequest, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves the return requests linked to an order.
func (r *GormReturnRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*rma.ReturnRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnRequestDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllAwaitingShipmentBefore retrieves returns sitting in awaiting_shipment
// since before the cutoff with no reminder sent yet.
func (r *GormReturnRepository) GetAllAwaitingShipmentBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*rma.ReturnRequest, error) {
	var dtos []ReturnRequestDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ? AND reminder_sent_at IS NULL",
			rma.AwaitingShipment.String(), cutoff).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ReturnRequestDTO) ([]*rma.ReturnRequest, error) {
	returns := make([]*rma.ReturnRequest, 0, len(dtos))
	for _, dto := range dtos {
		rr, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		returns = append(returns, rr)
	}
	return returns, nil
}
