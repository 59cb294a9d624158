package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDispatchBacklogQueryHandler reads the dispatch queue from the
// database: approved platform-delivery orders without a courier,
// oldest approval first.
type GetDispatchBacklogQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchBacklogQueryHandler creates a handler for backlog queries.
func NewGetDispatchBacklogQueryHandler(db *gorm.DB) GetDispatchBacklogQueryHandler {
	return GetDispatchBacklogQueryHandler{db: db}
}

// Handle executes the backlog query.
func (h GetDispatchBacklogQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchBacklogQuery,
) ([]GetDispatchBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	backlog := make([]GetDispatchBacklogQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_lat,
			seller_lng,
			total_amount,
			approved_at
		FROM orders
		WHERE status = ?
		  AND delivery_type = ?
		  AND courier_id IS NULL
		ORDER BY approved_at
	`, order.Approved, order.DeliveryTypePlatform).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			lat, lng    float64
			totalAmount kernel.Money
			approvedAt  time.Time
		)

		if err = rows.Scan(&id, &lat, &lng, &totalAmount, &approvedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}

		backlog = append(backlog, GetDispatchBacklogQueryResponse{
			OrderID:        orderID,
			SellerLocation: location,
			TotalAmount:    totalAmount,
			ApprovedAt:     approvedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return backlog, nil
}
