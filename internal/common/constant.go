// Package common contains shared constants and sentinel errors used across
// the contacts client.
package common

const (
	// AuthorizationHeaderName carries the bearer token on authenticated calls.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries the per-call correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// BearerPrefix is prepended to the session token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
)
