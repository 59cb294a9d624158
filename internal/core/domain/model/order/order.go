package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentNotConfirmed is returned when approving an order whose
	// payment has not been confirmed by the payment collaborator.
	ErrPaymentNotConfirmed = errors.New("order payment is not confirmed")
)

// Order represents a purchase moving through the delivery lifecycle.
// It is the aggregate root that owns all status transitions from placement
// through dispatch to confirmed delivery or cancellation.
//
// Order maintains these invariants:
//   - Must have valid identifiers for itself, the seller, and the buyer
//   - courierID is non-nil iff status is Assigned, InTransit, or Delivered
//   - All transitions are total: an unmet precondition returns a typed
//     failure (ErrInvalidTransition, ErrAlreadyAssigned,
//     ErrPaymentNotConfirmed) and leaves the order unchanged
//   - Can only be created through NewOrder or RestoreOrder
//
// Transition methods mutate a single Order and are safe to call
// concurrently for different orders; concurrent calls for the same order
// are serialized by the repository's conditional update.
type Order struct {
	id            kernel.UUID
	orderType     Type
	deliveryType  DeliveryType
	status        Status
	paymentStatus PaymentStatus

	// courierID is the assigned courier (nil while unassigned)
	courierID *kernel.UUID

	sellerID kernel.UUID
	buyerID  kernel.UUID

	// sellerLocation is the pickup point, buyerLocation the drop-off point
	sellerLocation kernel.GeoPoint
	buyerLocation  kernel.GeoPoint

	totalAmount kernel.Money

	approvedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Placed status with unconfirmed payment.
// This is the only way to create a fresh order; all parameters are
// validated and construction fails with the joined validation errors.
//
// Parameters:
//   - id: Unique order identifier
//   - orderType: regular or qercha purchase flow
//   - deliveryType: platform, seller, or pickup fulfillment
//   - sellerID, buyerID: Parties to the purchase
//   - sellerLocation, buyerLocation: Pickup and drop-off coordinates
//   - totalAmount: Gross order amount (must be positive)
func NewOrder(
	id kernel.UUID,
	orderType Type,
	deliveryType DeliveryType,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	sellerLocation kernel.GeoPoint,
	buyerLocation kernel.GeoPoint,
	totalAmount kernel.Money,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		paymentStatus: PaymentUnpaid,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setKinds(orderType, deliveryType),
		o.setParties(sellerID, buyerID),
		o.setLocations(sellerLocation, buyerLocation),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its status, payment state, courier assignment, and timestamps.
// The restored order behaves identically to one created through normal
// domain operations.
func RestoreOrder(
	id kernel.UUID,
	orderType Type,
	deliveryType DeliveryType,
	status Status,
	paymentStatus PaymentStatus,
	courierID *kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	sellerLocation kernel.GeoPoint,
	buyerLocation kernel.GeoPoint,
	totalAmount kernel.Money,
	approvedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setKinds(orderType, deliveryType),
		o.setParties(sellerID, buyerID),
		o.setLocations(sellerLocation, buyerLocation),
		o.setTotalAmount(totalAmount),
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.courierID = courierID
	o.approvedAt = approvedAt
	o.pickedUpAt = pickedUpAt
	o.deliveredAt = deliveredAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Call when reconstructing orders from persistence to ensure integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderType returns the purchase flow kind.
func (o *Order) OrderType() Type {
	return o.orderType
}

// DeliveryType returns the fulfillment kind.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment confirmation state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// SellerID returns the selling party's identifier.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// BuyerID returns the buying party's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SellerLocation returns the pickup coordinates.
func (o *Order) SellerLocation() kernel.GeoPoint {
	return o.sellerLocation
}

// BuyerLocation returns the drop-off coordinates.
func (o *Order) BuyerLocation() kernel.GeoPoint {
	return o.buyerLocation
}

// TotalAmount returns the gross order amount.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ApprovedAt returns when the order became eligible for dispatch, or nil.
func (o *Order) ApprovedAt() *time.Time {
	return o.approvedAt
}

// PickedUpAt returns when pickup was confirmed, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when delivery was confirmed, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// ConfirmPayment records the payment collaborator's confirmation and
// moves the order from Placed to Paid.
//
// Returns ErrInvalidTransition if the order is not in Placed status.
func (o *Order) ConfirmPayment() error {
	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentStatus = PaymentPaid
	return nil
}

// Approve marks the order eligible for dispatch.
//
// Preconditions:
//   - status is Placed or Paid
//   - payment has been confirmed
//
// On success the status becomes Approved and approvedAt is recorded; the
// dispatch sweep will pick the order up if its delivery type requires
// platform dispatch. Returns ErrPaymentNotConfirmed or
// ErrInvalidTransition on unmet preconditions, leaving the order unchanged.
func (o *Order) Approve(now time.Time) error {
	if o.paymentStatus != PaymentPaid {
		return ErrPaymentNotConfirmed
	}

	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.approvedAt = &now
	return nil
}

// Assign assigns the order to a courier.
//
// Preconditions:
//   - status is Approved
//   - no courier is currently assigned
//
// Returns ErrAlreadyAssigned when the order already holds an assignment
// (a benign race: another matcher pass won), ErrInvalidTransition for any
// other unmet precondition. On success status becomes Assigned and the
// courier is recorded.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrAlreadyAssigned
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// StartTransit records a verified pickup and moves the order to InTransit.
// Proof verification happens before this call; StartTransit only enforces
// the status precondition.
//
// Returns ErrInvalidTransition if the order is not Assigned.
func (o *Order) StartTransit(now time.Time) error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &now
	return nil
}

// CompleteDelivery records a verified handoff and moves the order to
// Delivered, the terminal success state that triggers earnings creation.
//
// Returns ErrInvalidTransition if the order is not InTransit.
func (o *Order) CompleteDelivery(now time.Time) error {
	newStatus, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// Cancel cancels the order from any non-terminal state. The previously
// assigned courier, if any, is released: the assignment is cleared so the
// courier's capacity slot frees up.
//
// Returns ErrInvalidTransition if the order is already Delivered or Cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = nil
	return nil
}

// CheckCourierInvariant verifies that courier assignment is consistent
// with the current status: non-nil iff Assigned, InTransit, or Delivered.
// Cancelled orders must have had their assignment released.
func (o *Order) CheckCourierInvariant() error {
	return o.status.ValidateCanHaveCourier(o.courierID != nil)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setKinds(orderType Type, deliveryType DeliveryType) error {
	if err := errors.Join(orderType.Validate(), deliveryType.Validate()); err != nil {
		return err
	}
	o.orderType = orderType
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setParties(sellerID, buyerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), buyerID.Validate()); err != nil {
		return err
	}
	o.sellerID = sellerID
	o.buyerID = buyerID
	return nil
}

func (o *Order) setLocations(sellerLocation, buyerLocation kernel.GeoPoint) error {
	if err := errors.Join(sellerLocation.Validate(), buyerLocation.Validate()); err != nil {
		return err
	}
	o.sellerLocation = sellerLocation
	o.buyerLocation = buyerLocation
	return nil
}

func (o *Order) setTotalAmount(totalAmount kernel.Money) error {
	if totalAmount.IsZero() {
		return errs.NewValueIsRequiredError("total amount")
	}
	o.totalAmount = totalAmount
	return nil
}
