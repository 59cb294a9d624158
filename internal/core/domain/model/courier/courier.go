package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// defaultMaxActiveJobs enforces the single-active-job policy:
	// a courier holds at most one Assigned/InTransit delivery unless
	// multi-job capacity is explicitly configured for them.
	defaultMaxActiveJobs = 1

	// ratingMin and ratingMax bound the rolling courier rating.
	ratingMin = 0.0
	ratingMax = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierAtCapacity is returned when taking a job would exceed the
	// courier's active-job capacity.
	ErrCourierAtCapacity = errors.New("courier has no free delivery slot")
	// ErrNoActiveJob is returned when releasing or completing a job on a
	// courier with no active deliveries.
	ErrNoActiveJob = errors.New("courier has no active delivery")
)

// Courier represents a delivery courier available for dispatch.
// It is an aggregate root that owns the courier's telemetry (location,
// online flag, last update time), dispatch constraints (delivery radius,
// active-job capacity), and rolling history (completed count, rating).
//
// Concurrency model: the courier's own heartbeat mutates only location
// and online state, last-write-wins; job slots are mutated by the matcher
// and the state machine under the transaction that assigns or releases
// the order, never by the heartbeat.
type Courier struct {
	id   kernel.UUID
	name string

	// telemetry, updated by heartbeats
	location           kernel.GeoPoint
	isOnline           bool
	lastLocationUpdate time.Time

	// dispatch constraints
	maxDeliveryRadiusKm float64
	activeJobs          int
	maxActiveJobs       int

	// rolling history
	completedDeliveries int
	rating              float64

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// The courier starts offline with no active jobs and the default
// single-active-job capacity; it becomes dispatchable only after its
// first heartbeat reports it online.
//
// Parameters:
//   - id: Unique identifier for the courier
//   - name: Human-readable name (must be non-empty)
//   - location: Initial position (must be a valid geo point)
//   - maxDeliveryRadiusKm: Maximum pickup distance the courier accepts (must be positive)
func NewCourier(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	maxDeliveryRadiusKm float64,
) (*Courier, error) {
	c := &Courier{
		maxActiveJobs: defaultMaxActiveJobs,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
		c.setMaxDeliveryRadiusKm(maxDeliveryRadiusKm),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving telemetry, job slots, and rolling history.
func RestoreCourier(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	isOnline bool,
	lastLocationUpdate time.Time,
	maxDeliveryRadiusKm float64,
	activeJobs int,
	maxActiveJobs int,
	completedDeliveries int,
	rating float64,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
		c.setMaxDeliveryRadiusKm(maxDeliveryRadiusKm),
		c.setCapacity(activeJobs, maxActiveJobs),
		c.setHistory(completedDeliveries, rating),
	); err != nil {
		return nil, err
	}

	c.isOnline = isOnline
	c.lastLocationUpdate = lastLocationUpdate

	return c, nil
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the courier's last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// IsOnline reports whether the courier's last heartbeat declared them available.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// LastLocationUpdate returns the time of the most recent heartbeat.
func (c *Courier) LastLocationUpdate() time.Time {
	return c.lastLocationUpdate
}

// MaxDeliveryRadiusKm returns the courier's maximum pickup distance.
func (c *Courier) MaxDeliveryRadiusKm() float64 {
	return c.maxDeliveryRadiusKm
}

// ActiveJobs returns the number of deliveries currently occupying slots.
func (c *Courier) ActiveJobs() int {
	return c.activeJobs
}

// MaxActiveJobs returns the courier's configured capacity.
func (c *Courier) MaxActiveJobs() int {
	return c.maxActiveJobs
}

// CompletedDeliveries returns the rolling count of finished deliveries.
func (c *Courier) CompletedDeliveries() int {
	return c.completedDeliveries
}

// Rating returns the courier's rolling rating in [0, 5].
func (c *Courier) Rating() float64 {
	return c.rating
}

// RecordHeartbeat applies a courier telemetry update: current position and
// online flag, stamped with the heartbeat time. Heartbeats are
// last-write-wins and touch nothing but telemetry, so they never contend
// with dispatch decisions for job slots.
func (c *Courier) RecordHeartbeat(location kernel.GeoPoint, isOnline bool, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	c.isOnline = isOnline
	c.lastLocationUpdate = now
	return nil
}

// HasCapacity reports whether the courier can accept another delivery
// under their active-job capacity.
func (c *Courier) HasCapacity() bool {
	return c.activeJobs < c.maxActiveJobs
}

// CanServe reports whether the courier is eligible to pick up from the
// given point: online, within their delivery radius, and holding a free
// job slot.
func (c *Courier) CanServe(pickup kernel.GeoPoint) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	if !c.isOnline || !c.HasCapacity() {
		return false, nil
	}

	distance, err := c.location.DistanceKm(pickup)
	if err != nil {
		return false, err
	}

	return distance <= c.maxDeliveryRadiusKm, nil
}

// TakeJob occupies one delivery slot.
// Returns ErrCourierAtCapacity when no slot is free.
func (c *Courier) TakeJob() error {
	if !c.HasCapacity() {
		return ErrCourierAtCapacity
	}
	c.activeJobs++
	return nil
}

// ReleaseJob frees one delivery slot without counting a completion,
// used when an assigned order is cancelled.
// Returns ErrNoActiveJob when no slot is occupied.
func (c *Courier) ReleaseJob() error {
	if c.activeJobs == 0 {
		return ErrNoActiveJob
	}
	c.activeJobs--
	return nil
}

// CompleteJob frees one delivery slot and increments the rolling
// completed-deliveries count.
// Returns ErrNoActiveJob when no slot is occupied.
func (c *Courier) CompleteJob() error {
	if c.activeJobs == 0 {
		return ErrNoActiveJob
	}
	c.activeJobs--
	c.completedDeliveries++
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setMaxDeliveryRadiusKm(radius float64) error {
	if radius <= 0 {
		return errs.NewValueIsInvalidError("max delivery radius must be positive")
	}
	c.maxDeliveryRadiusKm = radius
	return nil
}

func (c *Courier) setCapacity(activeJobs, maxActiveJobs int) error {
	if maxActiveJobs < 1 {
		return errs.NewValueIsInvalidError("max active jobs must be at least 1")
	}
	if activeJobs < 0 || activeJobs > maxActiveJobs {
		return errs.NewValueIsOutOfRangeError("active jobs", activeJobs, 0, maxActiveJobs)
	}
	c.activeJobs = activeJobs
	c.maxActiveJobs = maxActiveJobs
	return nil
}

func (c *Courier) setHistory(completedDeliveries int, rating float64) error {
	if completedDeliveries < 0 {
		return errs.NewValueIsInvalidError("completed deliveries must not be negative")
	}
	if rating < ratingMin || rating > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, ratingMin, ratingMax)
	}
	c.completedDeliveries = completedDeliveries
	c.rating = rating
	return nil
}
