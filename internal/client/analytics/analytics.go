// Package analytics sends page events to a PostHog-compatible capture
// endpoint. Delivery is best effort: failures are logged and never reach
// the caller.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/midpointplace/midpoint/internal/logging"
)

const (
	capturePath    = "/capture/"
	defaultTimeout = 5 * time.Second
	libName        = "midpoint-cli"
)

type Capturer interface {
	Capture(ctx context.Context, event string, props map[string]any)
}

// Noop discards every event.
type Noop struct{}

func (Noop) Capture(context.Context, string, map[string]any) {}

type payload struct {
	APIKey     string         `json:"api_key"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
	Timestamp  time.Time      `json:"timestamp"`
}

// PostHog posts each event on its own goroutine. Call Flush before exit to
// wait for outstanding deliveries.
type PostHog struct {
	endpoint   string
	apiKey     string
	distinctID string
	httpClient *http.Client
	log        logging.Logger
	now        func() time.Time

	wg sync.WaitGroup
}

// New returns a PostHog capturer, or Noop when apiKey is empty.
func New(host, apiKey string, log logging.Logger) Capturer {
	if apiKey == "" {
		return Noop{}
	}
	return NewPostHog(host, apiKey, &http.Client{Timeout: defaultTimeout}, log)
}

func NewPostHog(host, apiKey string, hc *http.Client, log logging.Logger) *PostHog {
	return &PostHog{
		endpoint:   strings.TrimRight(host, "/") + capturePath,
		apiKey:     apiKey,
		distinctID: uuid.NewString(),
		httpClient: hc,
		log:        log.With("component", "analytics"),
		now:        time.Now,
	}
}

func (p *PostHog) DistinctID() string { return p.distinctID }

func (p *PostHog) Capture(ctx context.Context, event string, props map[string]any) {
	properties := make(map[string]any, len(props)+1)
	for k, v := range props {
		properties[k] = v
	}
	properties["$lib"] = libName

	body, err := json.Marshal(payload{
		APIKey:     p.apiKey,
		Event:      event,
		DistinctID: p.distinctID,
		Properties: properties,
		Timestamp:  p.now().UTC(),
	})
	if err != nil {
		p.log.Warn(ctx, "encode analytics event", "event", event, "error", err)
		return
	}

	// Delivery outlives the navigation that triggered it.
	sendCtx := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.send(sendCtx, body); err != nil {
			p.log.Warn(sendCtx, "analytics capture failed", "event", event, "error", err)
		}
	}()
}

// Flush blocks until every captured event has been delivered or dropped.
func (p *PostHog) Flush() {
	p.wg.Wait()
}

func (p *PostHog) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("capture endpoint returned %s", resp.Status)
	}
	return nil
}
