// Package courier contains the Courier aggregate: the independently
// lockable per-courier record holding telemetry (location, online flag),
// dispatch constraints (radius, job capacity), and rolling history.
//
// Heartbeats mutate telemetry only, last-write-wins; job slots are mutated
// exclusively by assignment and release transitions.
package courier
