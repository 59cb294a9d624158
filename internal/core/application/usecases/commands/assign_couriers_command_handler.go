package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AssignCouriersCommandHandler orchestrates the dispatch sweep.
//
// For each order awaiting dispatch (oldest approval first) it asks the
// matcher for the best available courier, performs a conditional
// assignment, creates the delivery record, and takes a job slot on the
// courier. All changes of one sweep commit in a single transaction.
//
// Races are benign: the assignment is persisted with a conditional
// update, so if a concurrent dispatcher already took the order, this
// sweep skips it and moves on. Orders that wait longer than the
// configured threshold are escalated to the operations team, and stay
// in the queue.
type AssignCouriersCommandHandler struct {
	uowFactory DispatchUoWFactory
	matcher    services.CourierMatcher
	notifier   ports.Notifier
	maxWait    time.Duration
}

// NewAssignCouriersCommandHandler creates a handler for dispatch sweeps.
//
// Parameters:
//   - uowFactory: Transaction factory spanning orders, couriers, and deliveries
//   - matcher: Geo-constrained courier selection service
//   - notifier: Best-effort event notifications
//   - maxWait: Queue age beyond which an unmatched order is escalated
func NewAssignCouriersCommandHandler(
	uowFactory DispatchUoWFactory,
	matcher services.CourierMatcher,
	notifier ports.Notifier,
	maxWait time.Duration,
) AssignCouriersCommandHandler {
	return AssignCouriersCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		maxWait:    maxWait,
	}
}

// assignment records one successful match for post-commit notification.
type assignment struct {
	orderID   kernel.UUID
	courierID kernel.UUID
}

// Handle processes one dispatch sweep.
// An empty queue or an all-unmatchable queue is not an error; the sweep
// simply leaves the orders for the next tick. Notifications go out only
// after the transaction commits.
func (h AssignCouriersCommandHandler) Handle(ctx context.Context, cmd AssignCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	awaiting, err := uow.OrderRepository().GetAllAwaitingDispatch(ctx)
	if err != nil {
		return err
	}
	if len(awaiting) == 0 {
		return nil
	}

	candidates, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var (
		assigned []assignment
		stalled  []*order.Order
	)

	for _, ord := range awaiting {
		best, err := h.matcher.Match(ord, candidates)
		if errors.Is(err, services.ErrNoEligibleCourier) {
			if h.isStalled(ord, now) {
				stalled = append(stalled, ord)
			}
			continue
		}
		if err != nil {
			return err
		}

		err = h.assign(ctx, uow, ord, best)
		if errors.Is(err, order.ErrAlreadyAssigned) {
			// a concurrent dispatcher won this order
			continue
		}
		if err != nil {
			return err
		}

		assigned = append(assigned, assignment{orderID: ord.ID(), courierID: best.ID()})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, a := range assigned {
		h.notifier.CourierAssigned(ctx, a.orderID, a.courierID)
	}
	for _, ord := range stalled {
		h.notifier.DispatchStalled(ctx, ord.ID(), *ord.ApprovedAt())
	}

	return nil
}

// assign executes one matched pair: conditional order assignment,
// courier slot booking, and delivery record creation.
func (h AssignCouriersCommandHandler) assign(
	ctx context.Context,
	uow DispatchUoW,
	ord *order.Order,
	best *courier.Courier,
) error {
	if err := ord.Assign(best.ID()); err != nil {
		return err
	}

	if err := uow.OrderRepository().TryAssign(ctx, ord); err != nil {
		return err
	}

	if err := best.TakeJob(); err != nil {
		return err
	}

	if err := uow.CourierRepository().Update(ctx, best); err != nil {
		return err
	}

	distance, err := ord.SellerLocation().DistanceKm(ord.BuyerLocation())
	if err != nil {
		return err
	}

	record, err := delivery.NewDelivery(
		kernel.NewUUID(), ord.ID(), best.ID(), delivery.MethodQR, distance,
	)
	if err != nil {
		return err
	}

	return uow.DeliveryRepository().Add(ctx, record)
}

// isStalled reports whether an unmatched order has waited beyond the
// escalation threshold since approval.
func (h AssignCouriersCommandHandler) isStalled(ord *order.Order, now time.Time) bool {
	approvedAt := ord.ApprovedAt()
	return approvedAt != nil && now.Sub(*approvedAt) > h.maxWait
}
