package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired  = errors.New("name is required")
	ErrRadiusIsInvalid = errors.New("delivery radius must be greater than 0")
)

// CreateCourierCommand represents a request to register a new courier.
// The courier starts offline at the given location and becomes
// dispatchable once a heartbeat marks them online.
//
// Example:
//
//	home, _ := kernel.NewGeoPoint(9.0108, 38.7613)
//	cmd, err := NewCreateCourierCommand("Abel T.", home, 12)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register courier: %w", err)
//	}
//	fmt.Printf("Registered courier %s", cmd.CourierID())
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID           kernel.UUID
	name                string
	location            kernel.GeoPoint
	maxDeliveryRadiusKm float64

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Automatically generates a unique ID. Validates that the name is not
// empty, the location is valid, and the radius is positive.
func NewCreateCourierCommand(
	name string, location kernel.GeoPoint, maxDeliveryRadiusKm float64,
) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
		command.setLocation(location),
		command.setMaxDeliveryRadiusKm(maxDeliveryRadiusKm),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the generated courier identifier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Location returns the courier's starting location.
func (c CreateCourierCommand) Location() kernel.GeoPoint {
	return c.location
}

// MaxDeliveryRadiusKm returns the courier's service radius.
func (c CreateCourierCommand) MaxDeliveryRadiusKm() float64 {
	return c.maxDeliveryRadiusKm
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateCourierCommand) setMaxDeliveryRadiusKm(radius float64) error {
	if radius <= 0 {
		return ErrRadiusIsInvalid
	}

	c.maxDeliveryRadiusKm = radius
	return nil
}
