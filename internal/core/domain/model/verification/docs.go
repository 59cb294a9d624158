// Package verification contains the Code aggregate: single-use
// proof-of-possession secrets (QR tokens or numeric OTPs) bound to a
// delivery and a handoff step, with expiry and constant-time validation.
//
// Only the SHA-256 hash of a secret is ever stored; the plaintext is
// emitted once at issuance and is not recoverable afterwards.
package verification
