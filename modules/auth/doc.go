// Package auth implements the authentication flows: registration with
// email verification, password login gated by a one-time code, password
// reset, and bearer-token session issuance. It exposes a chi router
// with a JSON API and a Service usable directly from other packages.
package auth
