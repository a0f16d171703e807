// Package session issues and verifies short-lived, stateless bearer tokens.
// A token encodes the user id as the JWT subject and carries nothing else;
// expiry is the only invalidation path, there is no server-side record and
// no revocation.
package session
