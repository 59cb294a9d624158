package earningsrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEarningsRepository implements EarningsRepository using GORM.
type GormEarningsRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEarningsRepository creates a new GORM earnings repository.
func NewGormEarningsRepository(db *gorm.DB, tracker aggregateTracker) *GormEarningsRepository {
	return &GormEarningsRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new earnings entry to the database.
func (r *GormEarningsRepository) Add(ctx context.Context, aggregate *earnings.Entry) error {
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

// Update saves an existing earnings entry to the database. All columns
// are written so unlinking an entry from a rejected payout persists the
// NULL payout reference.
func (r *GormEarningsRepository) Update(ctx context.Context, aggregate *earnings.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
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

// TryLink persists the entry's payout link with a conditional update
// that only touches the row while it is still available and unlinked. A
// concurrent payout request that already froze the entry makes the
// update match nothing, which surfaces as earnings.ErrPayoutConflict.
func (r *GormEarningsRepository) TryLink(ctx context.Context, aggregate *earnings.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ? AND payout_id IS NULL AND status = ?", dto.ID, earnings.EntryAvailable).
		Updates(map[string]any{"payout_id": dto.PayoutID})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return earnings.ErrPayoutConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an earnings entry by ID.
func (r *GormEarningsRepository) Get(ctx context.Context, id kernel.UUID) (*earnings.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("earnings entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllReleasable retrieves pending entries whose holding window has
// passed at the given time.
func (r *GormEarningsRepository) GetAllReleasable(
	ctx context.Context,
	now time.Time,
) ([]*earnings.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND available_date <= ?", earnings.EntryPending, now).
		Order("available_date").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAvailableByPayee retrieves the payee's available entries that are
// not yet frozen into a payout.
func (r *GormEarningsRepository) GetAllAvailableByPayee(
	ctx context.Context,
	payeeID kernel.UUID,
) ([]*earnings.Entry, error) {
	if err := payeeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("payee_id = ? AND status = ? AND payout_id IS NULL",
			payeeID.Bytes(), earnings.EntryAvailable).
		Order("available_date").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByPayout retrieves the entries linked to a payout.
func (r *GormEarningsRepository) GetAllByPayout(
	ctx context.Context,
	payoutID kernel.UUID,
) ([]*earnings.Entry, error) {
	if err := payoutID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("payout_id = ?", payoutID.Bytes()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []EntryDTO) ([]*earnings.Entry, error) {
	entries := make([]*earnings.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
