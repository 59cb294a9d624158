// Package kernel contains shared value objects used across the dispatch
// domain model: UUID identifiers, geographic points with great-circle
// distance, and exact-decimal monetary amounts.
//
// All kernel types are immutable value objects constructed through factory
// functions that enforce their invariants; zero values fail validation.
package kernel
