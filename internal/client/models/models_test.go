package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantErr string
	}{
		{name: "register with email", in: &CreateUserRequest{Email: "a@b.com", Password: "x"}},
		{name: "register with username", in: &CreateUserRequest{Username: "ana", Password: "x"}},
		{name: "register without identity", in: &CreateUserRequest{Password: "x"}, wantErr: "username is required"},
		{name: "login without password", in: &LoginUserRequest{Username: "ana"}, wantErr: "password is required"},
		{name: "bad email", in: &LoginUserRequest{Email: "nope", Password: "x"}, wantErr: "email is not a valid email"},
		{name: "waitlist ok", in: &WaitlistSignupRequest{Email: "a@b.com"}},
		{name: "waitlist empty", in: &WaitlistSignupRequest{}, wantErr: "email is required"},
		{name: "group ok", in: &CreateGroupRequest{Name: "Friday drinks", Type: GroupPrivate}},
		{name: "group bad type", in: &CreateGroupRequest{Name: "x", Type: "secret"}, wantErr: "type is not one of public protected private"},
		{name: "group negative radius", in: &UpdateGroupRequest{Radius: -1}, wantErr: "radius is out of range"},
		{name: "join out of range", in: &GroupUserJoinRequest{Latitude: 91}, wantErr: "latitude is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUserFromResponse_DropsTokenAndCopiesLocation(t *testing.T) {
	loc := &Location{Latitude: 1, Longitude: 2}
	resp := &UserResponse{ID: 7, Username: "ana", Token: "tok", Location: loc}

	u := UserFromResponse(resp)

	want := &User{ID: 7, Username: "ana", Location: &Location{Latitude: 1, Longitude: 2}}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}
	loc.Latitude = 50
	assert.Equal(t, 1.0, u.Location.Latitude, "location must not alias the response")

	assert.Nil(t, UserFromResponse(nil))
}

func TestUser_WithLocationReturnsNewSnapshot(t *testing.T) {
	u := &User{ID: 1, Email: "a@b.com"}
	moved := u.WithLocation(Location{Latitude: 52.5, Longitude: 13.4})

	assert.NotSame(t, u, moved)
	assert.Nil(t, u.Location)
	require.NotNil(t, moved.Location)
	assert.Equal(t, 52.5, moved.Location.Latitude)
	assert.Equal(t, "a@b.com", moved.DisplayName())
}
