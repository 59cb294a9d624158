// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest UoW that covers the
// aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// EarningsRepoFactory provides access to the earnings repository within a transaction.
	EarningsRepoFactory interface {
		EarningsRepository() ports.EarningsRepository
	}

	// PayoutRepoFactory provides access to the payout repository within a transaction.
	PayoutRepoFactory interface {
		PayoutRepository() ports.PayoutRepository
	}

	// CodeRepoFactory provides access to the verification code repository within a transaction.
	CodeRepoFactory interface {
		VerificationCodeRepository() ports.VerificationCodeRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// DispatchUoW coordinates order, courier, delivery, and code changes
	// for assignment and cancellation flows.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		DeliveryRepoFactory
		CodeRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// CodeUoW manages transactions for verification code issuance.
	CodeUoW interface {
		TxManager
		DeliveryRepoFactory
		CodeRepoFactory
	}

	// CodeUoWFactory creates new code unit of work instances.
	CodeUoWFactory interface {
		Create() CodeUoW
	}

	// HandoffUoW coordinates the full pickup/delivery confirmation flow:
	// code consumption, delivery and order transitions, courier slots,
	// and ledger writes.
	HandoffUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		DeliveryRepoFactory
		CodeRepoFactory
		EarningsRepoFactory
	}

	// HandoffUoWFactory creates new handoff unit of work instances.
	HandoffUoWFactory interface {
		Create() HandoffUoW
	}

	// LedgerUoW manages transactions for earnings-only operations.
	LedgerUoW interface {
		TxManager
		EarningsRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// PayoutUoW coordinates payout and earnings changes for payout
	// request and resolution flows.
	PayoutUoW interface {
		TxManager
		EarningsRepoFactory
		PayoutRepoFactory
	}

	// PayoutUoWFactory creates new payout unit of work instances.
	PayoutUoWFactory interface {
		Create() PayoutUoW
	}
)
