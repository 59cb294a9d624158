// Package guard provides the constructor guard pattern used by domain
// entities and value objects. A guard distinguishes instances created
// through a constructor from zero values, so aggregates can reject
// improperly initialized state at the boundary.
package guard

import "errors"

// ErrNotConstructed is the default error returned when validating a
// zero-value guard and no custom error is supplied.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through a constructor.
// The zero value is invalid; obtain one via NewConstructorGuard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns notConstructedErr, or ErrNotConstructed when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrNotConstructed
	}
	return notConstructedErr
}
