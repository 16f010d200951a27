package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/midpointplace/midpoint/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, an optional email and a password, then
// creates the account. The session manager navigates home on success.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	req := &models.CreateUserRequest{Username: username, Email: email, Password: string(password)}
	if err := a.session.Register(ctx, req); err != nil {
		a.authFailed("Registration", err)
		return err
	}

	a.printf("Welcome, %s!\n", a.session.Snapshot().User.DisplayName())
	a.printLocation()
	return nil
}

// Login prompts for a username or email and a password. Input containing
// "@" is sent as an email.
func (a *App) Login(ctx context.Context) error {
	identity, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	req := &models.LoginUserRequest{Password: string(password)}
	if strings.Contains(identity, "@") {
		req.Email = identity
	} else {
		req.Username = identity
	}

	if err := a.session.Login(ctx, req); err != nil {
		a.authFailed("Login", err)
		return err
	}

	a.printf("Logged in as %s\n", a.session.Snapshot().User.DisplayName())
	a.printLocation()
	return nil
}

func (a *App) authFailed(action string, err error) {
	if errors.Is(err, session.ErrAuthInProgress) {
		a.println(err.Error())
		return
	}
	msg := a.session.Snapshot().LastError
	if msg == "" {
		msg = err.Error()
	}
	a.printf("%s failed: %s\n", action, msg)
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Logged out")
	a.printLocation()
	return nil
}

// Whoami prints the session state and, when known, the user.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Snapshot()
	if s.User == nil {
		if s.Token != "" {
			a.printf("%s (token restored, log in to load your profile)\n", s.State)
		} else {
			a.println(s.State.String())
		}
		if s.LastError != "" {
			a.printf("last error: %s\n", s.LastError)
		}
		return nil
	}

	a.printf("%s #%d", s.User.DisplayName(), s.User.ID)
	if s.User.Email != "" && s.User.Email != s.User.DisplayName() {
		a.printf(" <%s>", s.User.Email)
	}
	if loc := s.User.Location; loc != nil {
		a.printf(" at %.5f,%.5f", loc.Latitude, loc.Longitude)
	}
	a.println()
	return nil
}

// SetLocation stores the user's location: location <lat> <lon>.
func (a *App) SetLocation(ctx context.Context, args []string) error {
	loc, err := parseLocation(args)
	if err != nil {
		a.println("Usage: location <lat> <lon>")
		return err
	}
	if err := a.session.SaveUserLocation(ctx, loc); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			a.println("Please log in first")
		}
		return err
	}
	a.println("Location saved")
	return nil
}

// Waitlist signs an email up for launch news: waitlist <email>.
func (a *App) Waitlist(ctx context.Context, email string) error {
	if email == "" {
		a.println("Usage: waitlist <email>")
		return errUsage
	}
	resp, err := a.api.AddToWaitlist(ctx, &models.WaitlistSignupRequest{Email: email})
	if err != nil {
		return err
	}
	if resp.Message != "" {
		a.println(resp.Message)
	} else {
		a.println("You are on the waitlist")
	}
	return nil
}

// ShowError prints the notice currently on the error channel.
func (a *App) ShowError(ctx context.Context) error {
	n := a.errs.Notice()
	if !n.Visible {
		a.println("No errors")
		return nil
	}
	a.println(n.Message)
	return nil
}

func (a *App) DismissError(ctx context.Context) error {
	a.errs.ClearError()
	// The clear is published too; drop it so it is not shown as a toast.
	a.toasts()
	return nil
}
