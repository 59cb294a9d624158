// Package delivery contains the Delivery aggregate: the one-to-one
// auditable shadow of a dispatched order, carrying the proof-of-possession
// trail and the distance the courier fee is computed from.
package delivery
