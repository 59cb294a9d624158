package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a request to record a new order entering
// the delivery pipeline. The order starts in Placed status with
// unconfirmed payment.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(
//	    order.TypeRegular, order.DeliveryTypePlatform,
//	    sellerID, buyerID, pickup, dropoff, amount,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Printf("Placed order %s", cmd.OrderID())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	orderType      order.Type
	deliveryType   order.DeliveryType
	sellerID       kernel.UUID
	buyerID        kernel.UUID
	sellerLocation kernel.GeoPoint
	buyerLocation  kernel.GeoPoint
	totalAmount    kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to record a new order.
// Automatically generates a unique ID for the order and validates every
// field; construction fails with the joined validation errors.
func NewPlaceOrderCommand(
	orderType order.Type,
	deliveryType order.DeliveryType,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	sellerLocation kernel.GeoPoint,
	buyerLocation kernel.GeoPoint,
	totalAmount kernel.Money,
) (PlaceOrderCommand, error) {
	if err := errors.Join(
		orderType.Validate(),
		deliveryType.Validate(),
		sellerID.Validate(),
		buyerID.Validate(),
		sellerLocation.Validate(),
		buyerLocation.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:        kernel.NewUUID(),
		orderType:      orderType,
		deliveryType:   deliveryType,
		sellerID:       sellerID,
		buyerID:        buyerID,
		sellerLocation: sellerLocation,
		buyerLocation:  buyerLocation,
		totalAmount:    totalAmount,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the generated order identifier.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns the purchase flow kind.
func (c PlaceOrderCommand) OrderType() order.Type {
	return c.orderType
}

// DeliveryType returns the fulfillment kind.
func (c PlaceOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// SellerID returns the selling party.
func (c PlaceOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// BuyerID returns the buying party.
func (c PlaceOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerLocation returns the pickup point.
func (c PlaceOrderCommand) SellerLocation() kernel.GeoPoint {
	return c.sellerLocation
}

// BuyerLocation returns the drop-off point.
func (c PlaceOrderCommand) BuyerLocation() kernel.GeoPoint {
	return c.buyerLocation
}

// TotalAmount returns the gross order amount.
func (c PlaceOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}
