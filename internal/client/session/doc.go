// Package session owns the client's authoritative session: who is logged in,
// with which token, whether an auth action is running and the last auth
// error.
//
// States
//
//	Anonymous       no user; a rehydrated token alone still counts as anonymous
//	Authenticating  login or register in flight
//	Authenticated   user and token both present
//	AuthFailed      last attempt failed; user and token cleared, error kept
//
// Only one login/register runs at a time. A second call made while one is
// pending returns ErrAuthInProgress and leaves the session untouched.
//
// Rehydrate restores the persisted token into memory and into the API
// client's default header but does not fetch the profile, so the session
// stays unauthenticated until the next login or registration.
package session
