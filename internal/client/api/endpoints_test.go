package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints_RouteAndBody(t *testing.T) {
	group := models.GroupResponse{ID: "g1", Code: "abc123", Name: "Friday", Type: models.GroupPrivate}
	member := models.GroupUserResponse{GroupID: "g1", UserID: 1, Role: models.RoleMember}
	user := models.UserResponse{ID: 1, Username: "ana", Token: "tok1"}

	srv, seen := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users" || r.URL.Path == "/users/login" || r.URL.Path == "/users/1":
			writeJSON(w, http.StatusOK, user)
		case r.URL.Path == "/groups" && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, []models.GroupResponse{group})
		case r.URL.Path == "/groups/abc123/join":
			writeJSON(w, http.StatusOK, member)
		case r.URL.Path == "/waitlist/signup":
			writeJSON(w, http.StatusOK, models.WaitlistSignupResponse{Message: "see you soon"})
		default:
			writeJSON(w, http.StatusOK, group)
		}
	})
	c := New(srv.URL, nil, nil)
	ctx := context.Background()

	_, err := c.RegisterUser(ctx, &models.CreateUserRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	u, err := c.LoginUser(ctx, &models.LoginUserRequest{Username: "ana", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok1", u.Token)
	_, err = c.UpdateUser(ctx, 1, &models.UserUpdateRequest{Location: &models.Location{Latitude: 1, Longitude: 2}})
	require.NoError(t, err)
	gs, err := c.ListGroups(ctx, models.SelfCreator)
	require.NoError(t, err)
	assert.Len(t, gs, 1)
	_, err = c.CreateGroup(ctx, &models.CreateGroupRequest{Name: "Friday", Type: models.GroupPrivate})
	require.NoError(t, err)
	g, err := c.GetGroup(ctx, "abc123", GroupInclude{Users: Bool(true), Places: Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, "abc123", g.Code)
	_, err = c.UpdateGroup(ctx, "abc123", &models.UpdateGroupRequest{Name: "Saturday"})
	require.NoError(t, err)
	m, err := c.JoinGroup(ctx, "abc123", &models.GroupUserJoinRequest{Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, m.Role)
	_, err = c.LeaveGroup(ctx, "abc123")
	require.NoError(t, err)
	w, err := c.AddToWaitlist(ctx, &models.WaitlistSignupRequest{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "see you soon", w.Message)

	want := []struct{ method, path, query string }{
		{http.MethodPost, "/users", ""},
		{http.MethodPost, "/users/login", ""},
		{http.MethodPost, "/users/1", ""},
		{http.MethodGet, "/groups", "self=creator"},
		{http.MethodPost, "/groups", ""},
		{http.MethodGet, "/groups/abc123", "includePlaces=false&includeUsers=true"},
		{http.MethodPatch, "/groups/abc123", ""},
		{http.MethodPut, "/groups/abc123/join", ""},
		{http.MethodDelete, "/groups/abc123/join", ""},
		{http.MethodPost, "/waitlist/signup", ""},
	}
	require.Len(t, *seen, len(want))
	for i, w := range want {
		got := (*seen)[i]
		assert.Equal(t, w.method, got.Method, "call %d", i)
		assert.Equal(t, w.path, got.Path, "call %d", i)
		assert.Equal(t, w.query, got.Query, "call %d", i)
	}

	var reg map[string]any
	require.NoError(t, json.Unmarshal((*seen)[0].Body, &reg))
	assert.Equal(t, map[string]any{"email": "a@b.com", "password": "x"}, reg)

	var join map[string]any
	require.NoError(t, json.Unmarshal((*seen)[7].Body, &join))
	assert.Equal(t, map[string]any{"latitude": 1.0, "longitude": 2.0}, join)

	assert.Empty(t, (*seen)[8].Body, "DELETE carries no body")
}

func TestListGroups_NoFilterOmitsQuery(t *testing.T) {
	srv, seen := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.GroupResponse{})
	})
	c := New(srv.URL, nil, nil)

	_, err := c.ListGroups(context.Background(), models.SelfAny)
	require.NoError(t, err)
	assert.Empty(t, (*seen)[0].Query)
}

func TestGetGroup_EscapesCode(t *testing.T) {
	srv, seen := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.GroupResponse{})
	})
	c := New(srv.URL, nil, nil)

	_, err := c.GetGroup(context.Background(), "a/b", GroupInclude{})
	require.NoError(t, err)
	assert.Equal(t, "/groups/a%2Fb", (*seen)[0].Raw)
	assert.Empty(t, (*seen)[0].Query)
}
