// Package queries contains read-only operations in the CQRS
// architecture. Query handlers bypass the aggregates and read
// projection rows straight from the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDispatchBacklogQueryIsNotConstructed = errors.New(
	"GetDispatchBacklogQuery must be created via NewGetDispatchBacklogQuery constructor",
)

// GetDispatchBacklogQuery retrieves the orders currently waiting for a
// courier, oldest first. Operations use it to watch queue depth and
// spot orders the matcher cannot place.
//
// Example:
//
//	query := NewGetDispatchBacklogQuery()
//	backlog, err := handler.Handle(ctx, query)
//	for _, item := range backlog {
//	    fmt.Printf("order %s waiting since %s\n", item.OrderID, item.ApprovedAt)
//	}
type GetDispatchBacklogQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchBacklogQuery creates a query for the dispatch backlog.
func NewGetDispatchBacklogQuery() GetDispatchBacklogQuery {
	return GetDispatchBacklogQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchBacklogQueryIsNotConstructed)
}

// GetDispatchBacklogQueryResponse is one order awaiting dispatch.
type GetDispatchBacklogQueryResponse struct {
	OrderID        kernel.UUID
	SellerLocation kernel.GeoPoint
	TotalAmount    kernel.Money
	ApprovedAt     time.Time
}
