package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/mux"
	"github.com/midpointplace/midpoint/internal/common"
	"github.com/midpointplace/midpoint/internal/logging"
)

const (
	EventPageView  = "$pageview"
	EventPageLeave = "$pageleave"
	PropCurrentURL = "$current_url"
)

// Session is what the guard needs to know about the current session.
type Session interface {
	IsAuthenticated() bool
	Rehydrate(ctx context.Context) error
}

type Redirects interface {
	Remember(ctx context.Context, path string) error
}

type Capturer interface {
	Capture(ctx context.Context, event string, props map[string]any)
}

type Recorder interface {
	ObserveNavigation(route, outcome string)
}

// Router tracks the current location and applies the guard on every Push.
type Router struct {
	routes    *mux.Router
	session   Session
	redirects Redirects
	capture   Capturer
	metrics   Recorder
	log       logging.Logger

	mu      sync.Mutex
	current Location
}

func New(session Session, redirects Redirects, capture Capturer, metrics Recorder, log logging.Logger) *Router {
	return &Router{
		routes:    newRoutes(),
		session:   session,
		redirects: redirects,
		capture:   capture,
		metrics:   metrics,
		log:       log.With("component", "router"),
		current:   Location{Path: common.HomePath, FullPath: common.HomePath},
	}
}

// Current returns the location of the last completed transition.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve matches path against the route table without navigating.
func (r *Router) Resolve(path string) (Location, error) {
	return resolve(r.routes, path)
}

// URL builds the path of a named route.
func (r *Router) URL(name string, pairs ...string) (string, error) {
	route := r.routes.Get(name)
	if route == nil {
		return "", fmt.Errorf("unknown route %q", name)
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// Push navigates to path.
func (r *Router) Push(ctx context.Context, path string) error {
	_, err := r.Navigate(ctx, path)
	return err
}

// Navigate is Push returning where the navigation ended up. The guard may
// substitute the login page for the location asked for.
func (r *Router) Navigate(ctx context.Context, path string) (Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	to, err := resolve(r.routes, path)
	if err != nil {
		return Location{}, err
	}

	// The guard only ever redirects to the public login page, so one hop
	// settles the navigation.
	next, redirected, err := r.guard(ctx, to)
	if err != nil {
		return Location{}, err
	}
	if redirected {
		r.observe(to, "redirected")
		r.log.Info(ctx, "navigation redirected", "from", to.FullPath, "to", next.FullPath)
		to = next
	}

	from := r.current
	if to.Path != from.Path {
		r.emit(ctx, EventPageLeave, from)
	}
	r.current = to
	r.observe(to, "allowed")
	r.emit(ctx, EventPageView, to)
	return to, nil
}

// guard decides whether to may be entered. A true second result means the
// navigation has to continue at the returned location instead.
func (r *Router) guard(ctx context.Context, to Location) (Location, bool, error) {
	if !r.session.IsAuthenticated() {
		if err := r.session.Rehydrate(ctx); err != nil {
			r.log.Warn(ctx, "rehydrate session", "error", err)
		}
	}

	if to.Public() || r.session.IsAuthenticated() {
		return to, false, nil
	}

	if to.Name != RouteLogin && to.Name != RouteRegister {
		if err := r.redirects.Remember(ctx, to.FullPath); err != nil {
			r.log.Error(ctx, "remember redirect", "path", to.FullPath, "error", err)
		}
	}

	login, err := resolve(r.routes, common.LoginPath)
	if err != nil {
		return Location{}, false, err
	}
	return login, true, nil
}

func (r *Router) emit(ctx context.Context, event string, loc Location) {
	if r.capture == nil {
		return
	}
	r.capture.Capture(ctx, event, map[string]any{PropCurrentURL: loc.FullPath})
}

func (r *Router) observe(loc Location, outcome string) {
	if r.metrics == nil {
		return
	}
	name := loc.Name
	if name == "" {
		name = "unknown"
	}
	r.metrics.ObserveNavigation(name, outcome)
}
