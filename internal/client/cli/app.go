package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/midpointplace/midpoint/internal/client/analytics"
	"github.com/midpointplace/midpoint/internal/client/api"
	"github.com/midpointplace/midpoint/internal/client/config"
	"github.com/midpointplace/midpoint/internal/client/credentials"
	"github.com/midpointplace/midpoint/internal/client/metrics"
	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/midpointplace/midpoint/internal/client/notify"
	"github.com/midpointplace/midpoint/internal/client/router"
	"github.com/midpointplace/midpoint/internal/client/session"
	"github.com/midpointplace/midpoint/internal/client/storage"
	"github.com/midpointplace/midpoint/internal/logging"
)

type sessionManager interface {
	Login(ctx context.Context, req *models.LoginUserRequest) error
	Register(ctx context.Context, req *models.CreateUserRequest) error
	Logout(ctx context.Context)
	SaveUserLocation(ctx context.Context, loc models.Location) error
	Snapshot() session.Session
	IsAuthenticated() bool
}

type navigator interface {
	Navigate(ctx context.Context, path string) (router.Location, error)
	Current() router.Location
	URL(name string, pairs ...string) (string, error)
}

type groupsAPI interface {
	ListGroups(ctx context.Context, self models.SelfFilter) ([]models.GroupResponse, error)
	CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.GroupResponse, error)
	GetGroup(ctx context.Context, idOrCode string, include api.GroupInclude) (*models.GroupResponse, error)
	JoinGroup(ctx context.Context, idOrCode string, req *models.GroupUserJoinRequest) (*models.GroupUserResponse, error)
	LeaveGroup(ctx context.Context, idOrCode string) (*models.GroupUserResponse, error)
	AddToWaitlist(ctx context.Context, req *models.WaitlistSignupRequest) (*models.WaitlistSignupResponse, error)
}

type errorChannel interface {
	Notice() notify.ErrorNotice
	ClearError()
	Subscribe() (<-chan notify.ErrorNotice, func())
}

type App struct {
	config  *config.Config
	log     logging.Logger
	session sessionManager
	nav     navigator
	api     groupsAPI
	errs    errorChannel
	metrics *metrics.Metrics

	reader *bufio.Reader
	out    io.Writer

	toastCh     <-chan notify.ErrorNotice
	unsubscribe func()
	closers     []func() error
}

// NewApp builds the full client stack from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogFormat, c.LogLevel)

	kv, err := storage.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}

	tokens := credentials.NewTokenStore(kv, log)
	redirects := credentials.NewRedirectStore(kv)
	errs := notify.NewChannel()
	m := metrics.New()

	client := api.New(c.APIBaseURL, tokens, errs,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log),
		api.WithRecorder(m),
	)

	mgr := session.NewManager(client, tokens, redirects, log, m)
	capture := analytics.New(c.AnalyticsHost, c.AnalyticsKey, log)
	nav := router.New(mgr, redirects, capture, m, log)
	mgr.SetNavigator(nav)

	a := newApp(c, log, mgr, nav, client, errs, bufio.NewReader(os.Stdin), os.Stdout)
	a.metrics = m
	a.closers = append(a.closers, kv.Close)
	if ph, ok := capture.(*analytics.PostHog); ok {
		a.closers = append(a.closers, func() error { ph.Flush(); return nil })
	}
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, s sessionManager, nav navigator, groups groupsAPI, errs errorChannel, in *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		log:     log,
		session: s,
		nav:     nav,
		api:     groups,
		errs:    errs,
		reader:  in,
		out:     out,
	}
	a.toastCh, a.unsubscribe = errs.Subscribe()
	return a
}

// Run serves metrics when configured and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config != nil && a.config.MetricsAddr != "" {
		stop := a.serveMetrics(ctx, a.config.MetricsAddr)
		defer stop()
	}
	a.Root(ctx)
}

// Close releases storage and flushes pending analytics.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn(context.Background(), "close", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) serveMetrics(ctx context.Context, addr string) func() {
	r := mux.NewRouter()
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info(ctx, "metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics listener", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// toasts drains the error channel and returns the latest visible message,
// if one was published since the last call.
func (a *App) toasts() []string {
	var msgs []string
	for {
		select {
		case n, ok := <-a.toastCh:
			if !ok {
				return msgs
			}
			if n.Visible && n.Message != "" {
				msgs = append(msgs, n.Message)
			}
		default:
			return msgs
		}
	}
}
