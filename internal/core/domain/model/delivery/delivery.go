package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery constructors.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// VerificationMethod is the proof-of-possession encoding used for this
// delivery's pickup and handoff confirmation.
type VerificationMethod string

const (
	// MethodQR verifies via an opaque token scanned from a QR code.
	MethodQR VerificationMethod = "qr"
	// MethodOTP verifies via a short numeric code told to the counter-party.
	MethodOTP VerificationMethod = "otp"
)

// Validate checks that the verification method is one of the known values.
func (m VerificationMethod) Validate() error {
	switch m {
	case MethodQR, MethodOTP:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("verification method",
			fmt.Errorf("%q is not a valid verification method", string(m)))
	}
}

// Delivery is the one-to-one auditable shadow of a dispatched Order.
// It is created when a courier is assigned to a platform-delivery order
// and never exists for seller-fulfilled or self-collected orders.
//
// The delivery record carries the proof trail (pickup/delivery
// confirmation timestamps, verification method, free-form notes) and the
// computed distance used for the courier's fee.
type Delivery struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID

	status             Status
	verificationMethod VerificationMethod
	distanceKm         float64

	pickupConfirmedAt   *time.Time
	deliveryConfirmedAt *time.Time
	notes               string

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery record for an order that was just
// assigned to a courier. The record starts in Assigned status.
//
// Parameters:
//   - id: Unique delivery identifier
//   - orderID: The owning order
//   - courierID: The assigned courier
//   - method: qr or otp proof encoding
//   - distanceKm: Great-circle pickup-to-drop-off distance (must be >= 0)
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	method VerificationMethod,
	distanceKm float64,
) (*Delivery, error) {
	d := &Delivery{
		status: Assigned,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setIDs(id, orderID, courierID),
		d.setMethod(method),
		d.setDistanceKm(distanceKm),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	status Status,
	method VerificationMethod,
	distanceKm float64,
	pickupConfirmedAt *time.Time,
	deliveryConfirmedAt *time.Time,
	notes string,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setIDs(id, orderID, courierID),
		d.setMethod(method),
		d.setDistanceKm(distanceKm),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	d.status = status
	d.pickupConfirmedAt = pickupConfirmedAt
	d.deliveryConfirmedAt = deliveryConfirmedAt
	d.notes = notes

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the owning order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// CourierID returns the assigned courier's identifier.
func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

// Status returns the delivery's auditable status.
func (d *Delivery) Status() Status {
	return d.status
}

// VerificationMethod returns the proof encoding for this delivery.
func (d *Delivery) VerificationMethod() VerificationMethod {
	return d.verificationMethod
}

// DistanceKm returns the pickup-to-drop-off distance in kilometers.
func (d *Delivery) DistanceKm() float64 {
	return d.distanceKm
}

// PickupConfirmedAt returns when pickup proof was validated, or nil.
func (d *Delivery) PickupConfirmedAt() *time.Time {
	return d.pickupConfirmedAt
}

// DeliveryConfirmedAt returns when handoff proof was validated, or nil.
func (d *Delivery) DeliveryConfirmedAt() *time.Time {
	return d.deliveryConfirmedAt
}

// Notes returns the free-form audit notes.
func (d *Delivery) Notes() string {
	return d.notes
}

// ChangeVerificationMethod records the proof encoding the handoffs will
// actually use, set when a code is issued in a different encoding than
// the delivery was created with. Only an active delivery can change it.
func (d *Delivery) ChangeVerificationMethod(method VerificationMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return errs.NewValueIsInvalidError("delivery is already closed")
	}

	d.verificationMethod = method
	return nil
}

// ConfirmPickup records a validated pickup proof and moves the delivery
// to InTransit. Returns ErrInvalidTransition if the delivery is not Assigned.
func (d *Delivery) ConfirmPickup(now time.Time) error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.pickupConfirmedAt = &now
	return nil
}

// ConfirmDelivery records a validated handoff proof and moves the delivery
// to Delivered. Returns ErrInvalidTransition if the delivery is not InTransit.
func (d *Delivery) ConfirmDelivery(now time.Time) error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.deliveryConfirmedAt = &now
	return nil
}

// Fail marks the delivery as Failed with an explanatory note.
func (d *Delivery) Fail(notes string) error {
	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.notes = notes
	return nil
}

// Cancel marks the delivery as Cancelled, typically when the owning order
// is cancelled before completion.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

func (d *Delivery) setIDs(id, orderID, courierID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return err
	}
	d.id = id
	d.orderID = orderID
	d.courierID = courierID
	return nil
}

func (d *Delivery) setMethod(method VerificationMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	d.verificationMethod = method
	return nil
}

func (d *Delivery) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distance must not be negative")
	}
	d.distanceKm = distanceKm
	return nil
}
