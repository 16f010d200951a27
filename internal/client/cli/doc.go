// Package cli provides the interactive midpoint command-line client.
//
// NewApp wires configuration, local storage, the API client, the session
// manager and the router; App.Run starts the REPL and blocks until the user
// exits. Every navigation goes through the router's guard, so protected
// pages ask for a login first and return to the requested page afterwards.
//
// API errors are published on the error channel and printed as toasts
// ("! message") after the command that caused them.
package cli
