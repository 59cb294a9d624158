package codesrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCodeRepository implements VerificationCodeRepository using GORM.
type GormCodeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCodeRepository creates a new GORM verification code repository.
func NewGormCodeRepository(db *gorm.DB, tracker aggregateTracker) *GormCodeRepository {
	return &GormCodeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new verification code to the database.
func (r *GormCodeRepository) Add(ctx context.Context, aggregate *verification.Code) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing verification code to the database. Writes that
// mark the code consumed or revoked are conditional on the stored row
// still being active, so two racing submitters cannot both consume the
// same code: the loser's update matches nothing and fails with
// verification.ErrCodeConsumed.
func (r *GormCodeRepository) Update(ctx context.Context, aggregate *verification.Code) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx).Model(&CodeDTO{}).Where("id = ?", dto.ID)

	closing := dto.ConsumedAt != nil || dto.RevokedAt != nil
	if closing {
		tx = tx.Where("consumed_at IS NULL AND revoked_at IS NULL")
	}

	result := tx.Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if closing {
			return verification.ErrCodeConsumed
		}
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetActiveByDeliveryAndStep retrieves the unconsumed, unrevoked code for
// a delivery step. At most one exists at a time; issuing a replacement
// revokes the previous one in the same transaction.
func (r *GormCodeRepository) GetActiveByDeliveryAndStep(
	ctx context.Context,
	deliveryID kernel.UUID,
	step verification.Step,
) (*verification.Code, error) {
	if err := errors.Join(deliveryID.Validate(), step.Validate()); err != nil {
		return nil, err
	}

	var dto CodeDTO
	err := r.db.WithContext(ctx).
		First(&dto, "delivery_id = ? AND step = ? AND consumed_at IS NULL AND revoked_at IS NULL",
			deliveryID.Bytes(), string(step)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("verification code", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
