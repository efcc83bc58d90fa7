package prescriptionrepo

import (
	"context"
	"errors"

	"pharmacy/internal/adapters/out/postgres/pgerrors"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPrescriptionRepository implements PrescriptionRepository using GORM.
type GormPrescriptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPrescriptionRepository creates a new GORM prescription repository.
func NewGormPrescriptionRepository(db *gorm.DB, tracker aggregateTracker) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new prescription to the database.
func (r *GormPrescriptionRepository) Add(ctx context.Context, aggregate *prescription.Prescription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Wrap("prescription", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing prescription to the database.
func (r *GormPrescriptionRepository) Update(ctx context.Context, aggregate *prescription.Prescription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PrescriptionDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "VerifierID", "VerifiedAt", "RejectionReason").
		Updates(&dto)
	if result.Error != nil {
		return pgerrors.Wrap("prescription", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("prescription", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a prescription by ID.
func (r *GormPrescriptionRepository) Get(ctx context.Context, id kernel.UUID) (*prescription.Prescription, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrescriptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("prescription", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
