package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a delivery status transition
// precondition is unmet. The delivery record is left unchanged.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

// Status represents the auditable state of a delivery record.
// It mirrors the owning order's dispatch-phase states but is tracked
// independently so a delivery audit trail survives order-level changes.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//	   │            │            ├──> Failed
//	   └────────────┴────────────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is a delivery record awaiting courier assignment.
	Pending

	// Assigned means a courier has accepted the delivery.
	Assigned

	// InTransit means pickup was confirmed and the goods are moving.
	InTransit

	// Delivered means the handoff was confirmed. Terminal.
	Delivered

	// Failed means the delivery could not be completed. Terminal.
	Failed

	// Cancelled means the owning order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// IsActive reports whether the delivery occupies a courier capacity slot.
// Assigned and InTransit deliveries count against the courier's
// single-active-job policy.
func (s Status) IsActive() bool {
	return s == Assigned || s == InTransit
}

// StartTransit transitions Assigned -> InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != Assigned {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, InTransit)
	}
	return InTransit, nil
}

// Complete transitions InTransit -> Delivered.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Delivered)
	}
	return Delivered, nil
}

// Fail transitions any active state -> Failed.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Failed)
	}
	return Failed, nil
}

// Cancel transitions any non-terminal state -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Cancelled)
	}
	return Cancelled, nil
}
