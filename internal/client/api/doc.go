// Package api is the single gateway between the client and the midpoint
// REST API.
//
// # Overview
//
// Client wraps net/http with the API's base URL and JSON content type and
// exposes one typed method per endpoint (users, groups, waitlist). Every
// request:
//
//   - validates its body (models.Validate) before sending;
//   - reads the bearer token from the TokenSource right before the call, so
//     a login or logout is visible to the very next request; the default
//     token set with SetAuthToken is used when the source has none;
//   - carries a fresh X-Request-ID.
//
// # Error Handling
//
// Failures come back as *Error, which unwraps to one of the sentinels
// ErrUnauthorized, ErrNotFound, ErrUnavailable, ErrRequestFailed or
// models.ErrValidation. Each typed method hands the failure to the Reporter
// (the UI error channel) through an explicit c.fail call before returning it,
// so callers may branch on the error but never have to display it.
package api
