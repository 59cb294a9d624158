package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// FeeCalculator is a domain service that computes the money split of a
// completed delivery: the platform's commission on the seller side and
// the courier's delivery fee.
//
// The courier fee is a flat base plus a per-kilometre component, rounded
// to two decimal places. The seller commission is the order amount times
// the platform rate; the fee calculator holds the rate so every entry in
// one deployment is split the same way.
type FeeCalculator struct {
	commissionRate decimal.Decimal
	courierBaseFee kernel.Money
	perKmFee       kernel.Money
}

// NewFeeCalculator creates a FeeCalculator with the platform's fee
// schedule.
//
// Parameters:
//   - commissionRate: Fraction of the order amount taken as commission (0..1)
//   - courierBaseFee: Flat fee paid per completed delivery
//   - perKmFee: Additional fee per kilometre of delivery distance
func NewFeeCalculator(
	commissionRate decimal.Decimal,
	courierBaseFee kernel.Money,
	perKmFee kernel.Money,
) (FeeCalculator, error) {
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return FeeCalculator{}, errs.NewValueIsOutOfRangeError(
			"commission rate", commissionRate.String(), "0", "1")
	}

	return FeeCalculator{
		commissionRate: commissionRate,
		courierBaseFee: courierBaseFee,
		perKmFee:       perKmFee,
	}, nil
}

// CommissionRate returns the platform's commission rate.
func (f FeeCalculator) CommissionRate() decimal.Decimal {
	return f.commissionRate
}

// CourierFee computes the courier's fee for a delivery of the given
// distance: base + perKm x distance.
func (f FeeCalculator) CourierFee(distanceKm float64) (kernel.Money, error) {
	if distanceKm < 0 {
		return kernel.Money{}, errs.NewValueIsInvalidError("distance must not be negative")
	}

	variable := f.perKmFee.MulRate(decimal.NewFromFloat(distanceKm))
	return f.courierBaseFee.Add(variable), nil
}
