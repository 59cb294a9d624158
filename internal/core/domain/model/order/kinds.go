package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type distinguishes the two purchase flows that produce orders.
type Type string

const (
	// TypeRegular is a standard marketplace purchase.
	TypeRegular Type = "regular"
	// TypeQercha is a shared-carcass purchase split across buyers.
	TypeQercha Type = "qercha"
)

// Validate checks that the order type is one of the known values.
func (t Type) Validate() error {
	switch t {
	case TypeRegular, TypeQercha:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%q is not a valid order type", string(t)))
	}
}

// DeliveryType determines who fulfills the physical delivery.
// Only platform deliveries go through the dispatch matcher.
type DeliveryType string

const (
	// DeliveryTypePlatform means a platform courier delivers the order.
	DeliveryTypePlatform DeliveryType = "platform"
	// DeliveryTypeSeller means the seller delivers with their own means.
	DeliveryTypeSeller DeliveryType = "seller"
	// DeliveryTypePickup means the buyer collects the order themselves.
	DeliveryTypePickup DeliveryType = "pickup"
)

// Validate checks that the delivery type is one of the known values.
func (d DeliveryType) Validate() error {
	switch d {
	case DeliveryTypePlatform, DeliveryTypeSeller, DeliveryTypePickup:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%q is not a valid delivery type", string(d)))
	}
}

// RequiresDispatch reports whether orders with this delivery type go
// through courier matching. Seller-delivered and self-collected orders
// never enter the dispatch queue and never get a Delivery record.
func (d DeliveryType) RequiresDispatch() bool {
	return d == DeliveryTypePlatform
}

// PaymentStatus tracks the payment collaborator's confirmation for an order.
type PaymentStatus string

const (
	// PaymentUnpaid means no payment confirmation has arrived.
	PaymentUnpaid PaymentStatus = "unpaid"
	// PaymentPaid means the payment collaborator confirmed payment.
	PaymentPaid PaymentStatus = "paid"
)

// Validate checks that the payment status is one of the known values.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentUnpaid, PaymentPaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", string(p)))
	}
}
