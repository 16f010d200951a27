package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/midpointplace/midpoint/internal/client/models"
)

// RegisterUser creates an account. POST /users
func (c *Client) RegisterUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := c.do(ctx, "register_user", http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// LoginUser exchanges credentials for a token. POST /users/login
func (c *Client) LoginUser(ctx context.Context, req *models.LoginUserRequest) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := c.do(ctx, "login_user", http.MethodPost, "/users/login", nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// UpdateUser changes the user's stored location. POST /users/{id}
func (c *Client) UpdateUser(ctx context.Context, id int64, req *models.UserUpdateRequest) (*models.UserResponse, error) {
	var out models.UserResponse
	path := "/users/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, "update_user", http.MethodPost, path, nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// AddToWaitlist signs an email up for launch news. POST /waitlist/signup
func (c *Client) AddToWaitlist(ctx context.Context, req *models.WaitlistSignupRequest) (*models.WaitlistSignupResponse, error) {
	var out models.WaitlistSignupResponse
	if err := c.do(ctx, "waitlist_signup", http.MethodPost, "/waitlist/signup", nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}
