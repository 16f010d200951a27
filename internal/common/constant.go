// Package common holds names shared across client layers: storage keys and
// HTTP header names.
package common

const (
	// TokenStorageKey is the durable key holding the raw bearer token.
	TokenStorageKey = "authToken"

	// RedirectStorageKey is the transient key holding the path to resume
	// after a forced login.
	RedirectStorageKey = "redirectPath"

	// AuthorizationHeaderName carries "Bearer <token>" on outbound calls.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags each outbound call for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// Client routes the session core navigates to on its own.
const (
	HomePath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"
)
