package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/midpointplace/midpoint/internal/client/models"
)

// GroupInclude selects the optional parts of a GetGroup response. Nil fields
// are left off the query string and the server default applies.
type GroupInclude struct {
	Users  *bool
	Places *bool
}

// Bool returns a pointer to v, for GroupInclude literals.
func Bool(v bool) *bool { return &v }

func groupPath(idOrCode string) string {
	return "/groups/" + url.PathEscape(idOrCode)
}

// ListGroups lists public groups, or the caller's own when self is set.
// GET /groups?self=creator|member
func (c *Client) ListGroups(ctx context.Context, self models.SelfFilter) ([]models.GroupResponse, error) {
	var q url.Values
	if self != models.SelfAny {
		q = url.Values{"self": {string(self)}}
	}

	var out []models.GroupResponse
	if err := c.do(ctx, "list_groups", http.MethodGet, "/groups", q, nil, &out); err != nil {
		return nil, c.fail(err)
	}
	return out, nil
}

// CreateGroup creates a group owned by the caller. POST /groups
func (c *Client) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.GroupResponse, error) {
	var out models.GroupResponse
	if err := c.do(ctx, "create_group", http.MethodPost, "/groups", nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// GetGroup fetches a group by id or short code.
// GET /groups/{idOrCode}?includeUsers&includePlaces
func (c *Client) GetGroup(ctx context.Context, idOrCode string, include GroupInclude) (*models.GroupResponse, error) {
	q := url.Values{}
	if include.Users != nil {
		q.Set("includeUsers", strconv.FormatBool(*include.Users))
	}
	if include.Places != nil {
		q.Set("includePlaces", strconv.FormatBool(*include.Places))
	}

	var out models.GroupResponse
	if err := c.do(ctx, "get_group", http.MethodGet, groupPath(idOrCode), q, nil, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// UpdateGroup patches a group. PATCH /groups/{idOrCode}
func (c *Client) UpdateGroup(ctx context.Context, idOrCode string, req *models.UpdateGroupRequest) (*models.GroupResponse, error) {
	var out models.GroupResponse
	if err := c.do(ctx, "update_group", http.MethodPatch, groupPath(idOrCode), nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// JoinGroup adds the caller at the given position. PUT /groups/{idOrCode}/join
func (c *Client) JoinGroup(ctx context.Context, idOrCode string, req *models.GroupUserJoinRequest) (*models.GroupUserResponse, error) {
	var out models.GroupUserResponse
	if err := c.do(ctx, "join_group", http.MethodPut, groupPath(idOrCode)+"/join", nil, req, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}

// LeaveGroup removes the caller. DELETE /groups/{idOrCode}/join
func (c *Client) LeaveGroup(ctx context.Context, idOrCode string) (*models.GroupUserResponse, error) {
	var out models.GroupUserResponse
	if err := c.do(ctx, "leave_group", http.MethodDelete, groupPath(idOrCode)+"/join", nil, nil, &out); err != nil {
		return nil, c.fail(err)
	}
	return &out, nil
}
