package session

import (
	"errors"

	"github.com/midpointplace/midpoint/internal/client/api"
)

var (
	ErrAuthInProgress     = errors.New("another login or registration is in progress")
	ErrIncompleteResponse = errors.New("no token or user id received")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

const (
	fallbackLoginError    = "an unknown error occurred during login"
	fallbackRegisterError = "an unknown error occurred during registration"
)

// errorMessage picks the text shown for a failed auth action: the server's
// message, else the error text, else fallback.
func errorMessage(err error, fallback string) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
