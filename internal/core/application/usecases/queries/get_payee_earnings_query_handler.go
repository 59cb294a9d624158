package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPayeeEarningsQueryHandler reads a payee's ledger entries and
// accumulates per-state totals. On-hold entries count into the pending
// total: the money exists, it is just not withdrawable yet.
type GetPayeeEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetPayeeEarningsQueryHandler creates a handler for ledger queries.
func NewGetPayeeEarningsQueryHandler(db *gorm.DB) GetPayeeEarningsQueryHandler {
	return GetPayeeEarningsQueryHandler{db: db}
}

// Handle executes the ledger query.
func (h GetPayeeEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetPayeeEarningsQuery,
) (GetPayeeEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPayeeEarningsQueryResponse{}, err
	}

	response := GetPayeeEarningsQueryResponse{
		Entries:        make([]PayeeEarningsItem, 0),
		PendingTotal:   kernel.ZeroMoney(),
		AvailableTotal: kernel.ZeroMoney(),
		WithdrawnTotal: kernel.ZeroMoney(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			net_amount,
			status,
			available_date
		FROM earnings_entries
		WHERE payee_id = ?
		ORDER BY available_date DESC
	`, query.PayeeID().Bytes()).Rows()
	if err != nil {
		return GetPayeeEarningsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID   uuid.UUID
			netAmount     kernel.Money
			status        string
			availableDate time.Time
		)

		if err = rows.Scan(&id, &orderID, &netAmount, &status, &availableDate); err != nil {
			return GetPayeeEarningsQueryResponse{}, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetPayeeEarningsQueryResponse{}, idErr
		}
		sourceOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return GetPayeeEarningsQueryResponse{}, idErr
		}

		entryStatus := earnings.EntryStatus(status)
		if err = entryStatus.Validate(); err != nil {
			return GetPayeeEarningsQueryResponse{}, err
		}

		response.Entries = append(response.Entries, PayeeEarningsItem{
			EntryID:       entryID,
			OrderID:       sourceOrderID,
			NetAmount:     netAmount,
			Status:        entryStatus,
			AvailableDate: availableDate,
		})

		switch entryStatus {
		case earnings.EntryPending, earnings.EntryOnHold:
			response.PendingTotal = response.PendingTotal.Add(netAmount)
		case earnings.EntryAvailable:
			response.AvailableTotal = response.AvailableTotal.Add(netAmount)
		case earnings.EntryWithdrawn:
			response.WithdrawnTotal = response.WithdrawnTotal.Add(netAmount)
		}
	}

	if err = rows.Err(); err != nil {
		return GetPayeeEarningsQueryResponse{}, err
	}

	return response, nil
}
