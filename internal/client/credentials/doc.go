// Package credentials persists the two pieces of session state that must
// outlive the process: the bearer token and the path to resume after a
// forced login.
//
// The token has no expiry on the client side; it stays valid until the API
// rejects it or the user logs out. Both stores sit on top of storage.Store.
package credentials
