package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case
// handlers together. Handlers are created per request so each gets a
// fresh unit of work factory binding.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	notifier *notify.SlogNotifier
	matcher  services.CourierMatcher
	fees     services.FeeCalculator

	holdPeriod      time.Duration
	qrTTL           time.Duration
	otpTTL          time.Duration
	dispatchMaxWait time.Duration
}

// NewCompositionRoot builds the object graph from configuration.
// Fails fast on malformed fee settings rather than letting a bad rate
// reach the settlement path.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	commissionRate, err := decimal.NewFromString(config.CommissionRate)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid commission rate %q: %w", config.CommissionRate, err)
	}

	baseFee, err := kernel.NewMoneyFromString(config.CourierBaseFee)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid courier base fee %q: %w", config.CourierBaseFee, err)
	}

	perKmFee, err := kernel.NewMoneyFromString(config.CourierPerKmFee)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid courier per-km fee %q: %w", config.CourierPerKmFee, err)
	}

	fees, err := services.NewFeeCalculator(commissionRate, baseFee, perKmFee)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:        notify.NewSlogNotifier(logger),
		matcher:         services.NewCourierMatcher(),
		fees:            fees,
		holdPeriod:      time.Duration(config.EarningsHoldHours) * time.Hour,
		qrTTL:           time.Duration(config.QrTTLMinutes) * time.Minute,
		otpTTL:          time.Duration(config.OtpTTLMinutes) * time.Minute,
		dispatchMaxWait: time.Duration(config.DispatchMaxWaitMinutes) * time.Minute,
	}, nil
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordHeartbeatCommandHandler() commands.RecordHeartbeatCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordHeartbeatCommandHandler(f)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCouriersCommandHandler() commands.AssignCouriersCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCouriersCommandHandler(f, c.matcher, c.notifier, c.dispatchMaxWait)
}

func (c *CompositionRoot) CreateIssueVerificationCodeCommandHandler() commands.IssueVerificationCodeCommandHandler {
	var f commands.CodeUoWFactory = FuncCodeUoWFactory(func() commands.CodeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueVerificationCodeCommandHandler(f, c.qrTTL, c.otpTTL)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	var f commands.HandoffUoWFactory = FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPickupCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.HandoffUoWFactory = FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.fees, c.notifier, c.holdPeriod)
}

func (c *CompositionRoot) CreateReleaseEarningsCommandHandler() commands.ReleaseEarningsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseEarningsCommandHandler(f)
}

func (c *CompositionRoot) CreateRequestPayoutCommandHandler() commands.RequestPayoutCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestPayoutCommandHandler(f)
}

func (c *CompositionRoot) CreateResolvePayoutCommandHandler() commands.ResolvePayoutCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolvePayoutCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetDispatchBacklogQueryHandler() queries.GetDispatchBacklogQueryHandler {
	return queries.NewGetDispatchBacklogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPayeeEarningsQueryHandler() queries.GetPayeeEarningsQueryHandler {
	return queries.NewGetPayeeEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPayoutsForReviewQueryHandler() queries.GetPayoutsForReviewQueryHandler {
	return queries.NewGetPayoutsForReviewQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs with their handlers.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignCouriersCommandHandler(),
		c.CreateReleaseEarningsCommandHandler(),
		logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncCodeUoWFactory func() commands.CodeUoW

func (f FuncCodeUoWFactory) Create() commands.CodeUoW {
	return f()
}

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncPayoutUoWFactory func() commands.PayoutUoW

func (f FuncPayoutUoWFactory) Create() commands.PayoutUoW {
	return f()
}
