// Package otp implements the one-time passcode challenge lifecycle: issuing
// codes scoped to a (user, purpose) pair, delivering them out-of-band, and
// verifying them exactly once.
//
// The package enforces a single invariant above all others: at most one live
// challenge exists per (user, purpose) pair. Issuing a new code atomically
// supersedes any prior one, and a successful verification consumes the
// challenge so a replayed code never succeeds twice.
//
// Delivery is fire-and-forget. A challenge is valid once persisted; a failed
// email leaves it intact and the failure is only logged.
package otp
