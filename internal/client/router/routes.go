package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/midpointplace/midpoint/internal/common"
)

const (
	RouteHome        = "home"
	RouteLogin       = "login"
	RouteRegister    = "register"
	RouteCreateGroup = "create_group"
	RouteGroupView   = "group-view"
)

var ErrInvalidPath = errors.New("invalid path")

// Location is a resolved navigation target. Name is empty for paths outside
// the route table.
type Location struct {
	Name     string
	Path     string
	FullPath string
	Params   map[string]string
}

// Public reports whether the location can be visited without a session.
func (l Location) Public() bool {
	return l.Path == common.LoginPath || l.Path == common.RegisterPath
}

func (l Location) String() string {
	if l.Name == "" {
		return l.FullPath
	}
	return fmt.Sprintf("%s (%s)", l.FullPath, l.Name)
}

func newRoutes() *mux.Router {
	m := mux.NewRouter()
	m.Path(common.HomePath).Name(RouteHome)
	m.Path(common.LoginPath).Name(RouteLogin)
	m.Path(common.RegisterPath).Name(RouteRegister)
	m.Path("/create_group").Name(RouteCreateGroup)
	m.Path("/groups/{groupcode}").Name(RouteGroupView)
	return m
}

// resolve parses raw and matches it against the route table.
func resolve(routes *mux.Router, raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = common.HomePath
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return Location{}, fmt.Errorf("%w: %q must be an absolute path", ErrInvalidPath, raw)
	}

	full := u.RequestURI()
	if u.Fragment != "" {
		full += "#" + u.EscapedFragment()
	}
	loc := Location{Path: u.Path, FullPath: full}

	var match mux.RouteMatch
	req := &http.Request{Method: http.MethodGet, URL: u}
	if routes.Match(req, &match) && match.Route != nil {
		loc.Name = match.Route.GetName()
		if len(match.Vars) > 0 {
			loc.Params = match.Vars
		}
	}
	return loc, nil
}
