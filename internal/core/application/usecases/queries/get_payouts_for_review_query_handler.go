package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPayoutsForReviewQueryHandler reads the payout review queue.
type GetPayoutsForReviewQueryHandler struct {
	db *gorm.DB
}

// NewGetPayoutsForReviewQueryHandler creates a handler for review queue queries.
func NewGetPayoutsForReviewQueryHandler(db *gorm.DB) GetPayoutsForReviewQueryHandler {
	return GetPayoutsForReviewQueryHandler{db: db}
}

// Handle executes the review queue query.
func (h GetPayoutsForReviewQueryHandler) Handle(
	ctx context.Context,
	query GetPayoutsForReviewQuery,
) ([]GetPayoutsForReviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPayoutsForReviewQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			payee_id,
			beneficiary,
			amount,
			destination,
			requested_at
		FROM payouts
		WHERE status = ?
		ORDER BY requested_at
	`, earnings.PayoutPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, payeeID uuid.UUID
			beneficiary string
			amount      kernel.Money
			destination string
			requestedAt time.Time
		)

		if err = rows.Scan(&id, &payeeID, &beneficiary, &amount, &destination, &requestedAt); err != nil {
			return nil, err
		}

		payoutID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		payee, idErr := kernel.UUIDFromBytes(payeeID[:])
		if idErr != nil {
			return nil, idErr
		}

		kind := earnings.Beneficiary(beneficiary)
		if err = kind.Validate(); err != nil {
			return nil, err
		}

		pending = append(pending, GetPayoutsForReviewQueryResponse{
			PayoutID:    payoutID,
			PayeeID:     payee,
			Beneficiary: kind,
			Amount:      amount,
			Destination: destination,
			RequestedAt: requestedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
