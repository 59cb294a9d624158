package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Transition failures raised by the order state machine. Both are benign
// control-flow outcomes for callers: ErrInvalidTransition means a
// precondition is unmet and the caller must not retry blindly;
// ErrAlreadyAssigned signals an assignment race the caller resolves by
// re-evaluating the current eligibility set.
var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrAlreadyAssigned   = errors.New("order is already assigned to a courier")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the correct business workflow.
//
// State transitions:
//
//	Placed ──> Paid ──> Approved ──> Assigned ──> InTransit ──> Delivered
//	   │         │          │            │             │
//	   └─────────┴──────────┴────────────┴─────────────┴──> Cancelled
//
// Transitions are one-directional; Cancelled is reachable from any
// non-terminal state via operator-initiated cancellation. Delivered and
// Cancelled are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is first created.
	Placed

	// Paid indicates the payment collaborator confirmed payment.
	Paid

	// Approved indicates the order is eligible for dispatch.
	Approved

	// Assigned indicates a courier has been matched to the order.
	Assigned

	// InTransit indicates pickup was confirmed and the courier is en route.
	InTransit

	// Delivered indicates the handoff to the buyer was confirmed.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Placed:    "Placed",
		Paid:      "Paid",
		Approved:  "Approved",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "Placed",
		Paid:      "Paid",
		Approved:  "Approved",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// MarkPaid transitions the status to Paid.
//
// Valid transitions:
//   - Placed -> Paid
//
// Returns (0, ErrInvalidTransition) for any other current status.
func (s Status) MarkPaid() (Status, error) {
	if s != Placed {
		return 0, invalidTransition(s, Paid)
	}
	return Paid, nil
}

// Approve transitions the status to Approved, making the order eligible
// for dispatch.
//
// Valid transitions:
//   - Placed -> Approved (payment confirmed out-of-band in the same event)
//   - Paid -> Approved
//
// Returns (0, ErrInvalidTransition) for any other current status.
func (s Status) Approve() (Status, error) {
	if s != Placed && s != Paid {
		return 0, invalidTransition(s, Approved)
	}
	return Approved, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Approved -> Assigned
//
// Returns (0, ErrAlreadyAssigned) when the order is already Assigned or
// further along, so racing matchers can distinguish a lost race from a
// broken precondition. All other statuses fail with ErrInvalidTransition.
func (s Status) Assign() (Status, error) {
	switch s {
	case Approved:
		return Assigned, nil
	case Assigned, InTransit, Delivered:
		return 0, ErrAlreadyAssigned
	default:
		return 0, invalidTransition(s, Assigned)
	}
}

// StartTransit transitions the status to InTransit after pickup confirmation.
//
// Valid transitions:
//   - Assigned -> InTransit
//
// Returns (0, ErrInvalidTransition) for any other current status.
func (s Status) StartTransit() (Status, error) {
	if s != Assigned {
		return 0, invalidTransition(s, InTransit)
	}
	return InTransit, nil
}

// CompleteDelivery transitions the status to Delivered after delivery
// confirmation.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Returns (0, ErrInvalidTransition) for any other current status.
func (s Status) CompleteDelivery() (Status, error) {
	if s != InTransit {
		return 0, invalidTransition(s, Delivered)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Allowed from any valid non-terminal state; Delivered and Cancelled
// orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, invalidTransition(s, Cancelled)
	}
	return Cancelled, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment: a courier must be present iff the order is in
// Assigned, InTransit, or Delivered status.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	requiresCourier := s == Assigned || s == InTransit || s == Delivered

	if hasCourier && !requiresCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !hasCourier && requiresCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}

func invalidTransition(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from.String(), to.String())
}
