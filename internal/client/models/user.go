// Package models mirrors the request and response bodies of the midpoint
// API. Request types carry validation tags checked by Validate before they
// go on the wire.
package models

// Location is a point on the map.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUserRequest exchanges credentials for a token.
type LoginUserRequest struct {
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is returned by register, login and user update. Token is
// only set by register and login.
type UserResponse struct {
	ID       int64     `json:"id"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
	Location *Location `json:"location,omitempty"`
	Token    string    `json:"token,omitempty"`
}

// User is the identity kept in the session: a UserResponse without the
// token. Treat values as immutable snapshots.
type User struct {
	ID       int64
	Username string
	Email    string
	Location *Location
}

// UserFromResponse strips the token from r.
func UserFromResponse(r *UserResponse) *User {
	if r == nil {
		return nil
	}
	u := &User{ID: r.ID, Username: r.Username, Email: r.Email}
	if r.Location != nil {
		loc := *r.Location
		u.Location = &loc
	}
	return u
}

// WithLocation returns a copy of u carrying loc.
func (u *User) WithLocation(loc Location) *User {
	cp := *u
	cp.Location = &loc
	return &cp
}

// DisplayName is the username, falling back to the email.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// UserUpdateRequest changes the stored location of a user.
type UserUpdateRequest struct {
	Location *Location `json:"location,omitempty"`
}

// WaitlistSignupRequest adds an email to the launch waitlist.
type WaitlistSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type WaitlistSignupResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
