package payoutrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPayoutRepository implements PayoutRepository using GORM.
type GormPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPayoutRepository creates a new GORM payout repository.
func NewGormPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormPayoutRepository {
	return &GormPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payout to the database. The entry batch itself is
// persisted through the earnings repository when entries are linked.
func (r *GormPayoutRepository) Add(ctx context.Context, aggregate *earnings.Payout) error {
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

// Update saves an existing payout to the database.
func (r *GormPayoutRepository) Update(ctx context.Context, aggregate *earnings.Payout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PayoutDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payout by ID.
func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*earnings.Payout, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PayoutDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payout", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetOpenByPayee retrieves the payee's non-terminal payout, if any. The
// single-open-payout rule means at most one row can match.
func (r *GormPayoutRepository) GetOpenByPayee(
	ctx context.Context,
	payeeID kernel.UUID,
) (*earnings.Payout, error) {
	if err := payeeID.Validate(); err != nil {
		return nil, err
	}

	var dto PayoutDTO
	err := r.db.WithContext(ctx).
		First(&dto, "payee_id = ? AND status IN ?", payeeID.Bytes(), []string{
			string(earnings.PayoutPending),
			string(earnings.PayoutApproved),
			string(earnings.PayoutProcessing),
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("open payout for payee", payeeID.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// restore loads the payout's entry batch from the earnings_entries
// payout_id references and reconstructs the aggregate.
func (r *GormPayoutRepository) restore(ctx context.Context, dto PayoutDTO) (*earnings.Payout, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("earnings_entries").
		Where("payout_id = ?", dto.ID).
		Order("available_date").
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	entryIDs := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		entryID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		entryIDs = append(entryIDs, entryID)
	}

	return toDomain(dto, entryIDs)
}
