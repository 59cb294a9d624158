package services

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoEligibleCourier is returned when no courier can take the order:
// either no couriers were provided, or every candidate is offline, at
// capacity, or too far from the pickup point. The order stays assignable
// and the dispatch sweep retries it on the next tick.
var ErrNoEligibleCourier = errors.New("no eligible courier")

// CourierMatcher is a domain service that selects the best courier for an
// order awaiting dispatch.
//
// Eligibility (all must hold):
//   - courier is online
//   - courier has a free job slot
//   - pickup point is within the courier's delivery radius
//
// Ranking among eligible couriers, in order:
//  1. shortest distance to the pickup point
//  2. fewest active jobs
//  3. highest rating
//  4. freshest location update
//
// The matcher only selects; it does not mutate the order or the courier.
// The caller performs the assignment inside a transaction so that a
// courier picked from a stale snapshot cannot be double-booked.
//
// Example usage:
//
//	matcher := services.NewCourierMatcher()
//	best, err := matcher.Match(ord, candidates)
//	if errors.Is(err, services.ErrNoEligibleCourier) {
//	    // leave the order for the next sweep
//	    return
//	}
type CourierMatcher struct{}

// NewCourierMatcher creates a new CourierMatcher instance.
func NewCourierMatcher() CourierMatcher {
	return CourierMatcher{}
}

// Match evaluates the candidates against the order's pickup point and
// returns the best eligible courier.
//
// Parameters:
//   - ord: The order awaiting dispatch (must be valid and require dispatch)
//   - candidates: Snapshot of couriers to consider
//
// Returns:
//   - *courier.Courier: The winning candidate
//   - error: ErrNoEligibleCourier if nobody qualifies, or validation errors
func (m CourierMatcher) Match(ord *order.Order, candidates []*courier.Courier) (*courier.Courier, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	pickup := ord.SellerLocation()

	var best *courier.Courier
	var bestDistance float64

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		eligible, err := c.CanServe(pickup)
		if err != nil {
			return nil, err
		}
		if !eligible {
			continue
		}

		distance, err := c.Location().DistanceKm(pickup)
		if err != nil {
			return nil, err
		}

		if best == nil || m.outranks(c, distance, best, bestDistance) {
			best = c
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, ErrNoEligibleCourier
	}

	return best, nil
}

// outranks reports whether candidate beats the current best under the
// documented ranking: distance, then load, then rating, then telemetry
// freshness. A candidate that ties on every criterion does not outrank,
// so earlier candidates win final ties.
func (m CourierMatcher) outranks(
	candidate *courier.Courier, candidateDistance float64,
	best *courier.Courier, bestDistance float64,
) bool {
	if candidateDistance != bestDistance {
		return candidateDistance < bestDistance
	}
	if candidate.ActiveJobs() != best.ActiveJobs() {
		return candidate.ActiveJobs() < best.ActiveJobs()
	}
	if candidate.Rating() != best.Rating() {
		return candidate.Rating() > best.Rating()
	}
	return candidate.LastLocationUpdate().After(best.LastLocationUpdate())
}
