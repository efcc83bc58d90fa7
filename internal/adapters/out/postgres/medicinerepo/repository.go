package medicinerepo

import (
	"context"
	"errors"

	"pharmacy/internal/adapters/out/postgres/pgerrors"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMedicineRepository implements MedicineRepository using GORM.
type GormMedicineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMedicineRepository creates a new GORM medicine repository.
func NewGormMedicineRepository(db *gorm.DB, tracker aggregateTracker) *GormMedicineRepository {
	return &GormMedicineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new medicine to the database.
func (r *GormMedicineRepository) Add(ctx context.Context, aggregate *medicine.Medicine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Wrap("medicine", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing medicine to the database.
// Stock must not be written through Update; it only moves via Reserve and Release.
func (r *GormMedicineRepository) Update(ctx context.Context, aggregate *medicine.Medicine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MedicineDTO{}).
		Where("id = ?", dto.ID).
		Omit("stock_quantity").
		Updates(&dto)
	if result.Error != nil {
		return pgerrors.Wrap("medicine", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("medicine", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a medicine by ID.
func (r *GormMedicineRepository) Get(ctx context.Context, id kernel.UUID) (*medicine.Medicine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MedicineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("medicine", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByIDs retrieves the medicines with the given identifiers.
// Missing identifiers are absent from the result.
func (r *GormMedicineRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*medicine.Medicine, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MedicineDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	medicines := make([]*medicine.Medicine, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}

	return medicines, nil
}

// Reserve atomically decrements the stock of a medicine.
//
// The decrement and the sufficiency check are a single conditional UPDATE, so
// two transactions competing for the last units are serialized by the row
// lock: the second one sees the decremented count and fails cleanly instead
// of driving the stock negative.
func (r *GormMedicineRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := r.db.WithContext(ctx).Model(&MedicineDTO{}).
		Where("id = ? AND stock_quantity >= ?", id.Bytes(), quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return pgerrors.Wrap("medicine", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the row does not exist or the stock is short; tell them apart.
		var dto MedicineDTO
		if err := r.db.WithContext(ctx).Select("stock_quantity").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("medicine", id.String())
			}
			return err
		}
		return &medicine.InsufficientStockError{
			MedicineID: id,
			Requested:  quantity,
			Available:  dto.StockQuantity,
		}
	}

	return nil
}

// Release atomically increments the stock of a medicine, returning units that
// were reserved by an order that is now cancelled.
func (r *GormMedicineRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := r.db.WithContext(ctx).Model(&MedicineDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return pgerrors.Wrap("medicine", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("medicine", id.String())
	}

	return nil
}
