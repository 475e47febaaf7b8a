// Package checker owns the state of one subdomain checker view and the two
// operations that mutate it: text edits and check submissions.
package checker

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fosscu/subdomain-checker/internal/model"
)

// StalePolicy decides what happens to a response that arrives after a newer
// submission has started.
type StalePolicy int

const (
	// ApplyInArrivalOrder applies every response as it arrives, so the last
	// response to arrive wins.
	ApplyInArrivalOrder StalePolicy = iota
	// ApplyLatestOnly drops responses belonging to superseded submissions.
	ApplyLatestOnly
)

// ParseStalePolicy maps a config value onto a StalePolicy.
func ParseStalePolicy(s string) (StalePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "arrival":
		return ApplyInArrivalOrder, nil
	case "latest":
		return ApplyLatestOnly, nil
	default:
		return ApplyInArrivalOrder, fmt.Errorf("unknown stale-responses policy %q (want arrival or latest)", s)
	}
}

func (p StalePolicy) String() string {
	if p == ApplyLatestOnly {
		return "latest"
	}
	return "arrival"
}

// Ticket identifies one dispatched submission.
type Ticket struct {
	Name       string // trimmed query text sent to the backend
	Generation uint64
}

// Controller is the input/result controller of one checker view.
// It is safe for concurrent use.
type Controller struct {
	client AvailabilityClient
	policy StalePolicy

	scope  context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      model.CheckState
	generation uint64
}

// AvailabilityClient is the capability the controller depends on.
type AvailabilityClient = model.AvailabilityClient

// Option configures a Controller.
type Option func(*Controller)

// WithStalePolicy selects how overlapping submissions are resolved.
func WithStalePolicy(p StalePolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// New creates a controller whose lifetime is bounded by parent. Cancelling
// parent has the same effect as Close.
func New(parent context.Context, client AvailabilityClient, opts ...Option) *Controller {
	if parent == nil {
		parent = context.Background()
	}
	scope, cancel := context.WithCancel(parent)
	c := &Controller{
		client: client,
		scope:  scope,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close tears down the view scope. Late responses become no-ops and
// in-flight requests started by SubmitCheck are cancelled.
func (c *Controller) Close() {
	c.cancel()
}

// Closed reports whether the view scope has ended.
func (c *Controller) Closed() bool {
	return c.scope.Err() != nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() model.CheckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Policy returns the configured stale-response policy.
func (c *Controller) Policy() StalePolicy {
	return c.policy
}

// OnTextChanged records a keystroke. Clearing the field also clears any
// stale result or error.
func (c *Controller) OnTextChanged(text string) {
	if c.Closed() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.QueryText = text
	if strings.TrimSpace(text) == "" {
		c.state.ErrorMessage = ""
		c.state.Availability = model.AvailabilityUnknown
	}
}

// Begin starts a submission. An empty query sets the validation message and
// returns a *model.ValidationError without marking the view pending.
func (c *Controller) Begin() (Ticket, error) {
	if c.Closed() {
		return Ticket{}, model.ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.TrimSpace(c.state.QueryText)
	if name == "" {
		c.state.ErrorMessage = model.MsgEmptySubdomain
		c.state.Availability = model.AvailabilityUnknown
		return Ticket{}, &model.ValidationError{Reason: "empty subdomain"}
	}

	c.generation++
	c.state.IsPending = true
	c.state.ErrorMessage = ""
	c.state.Availability = model.AvailabilityUnknown
	return Ticket{Name: name, Generation: c.generation}, nil
}

// Resolve applies the outcome of the submission identified by t and clears
// the pending flag. It reports whether the outcome was applied.
func (c *Controller) Resolve(t Ticket, available bool, err error) bool {
	if c.Closed() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.policy == ApplyLatestOnly && t.Generation != c.generation {
		return false
	}

	defer func() { c.state.IsPending = false }()

	if err != nil {
		c.state.ErrorMessage = model.MsgCheckFailed
		c.state.Availability = model.AvailabilityUnknown
		return true
	}
	c.state.Availability = model.AvailabilityOf(available)
	return true
}

// Run performs the network call for t. It does not touch controller state
// and may be called from any goroutine.
func (c *Controller) Run(ctx context.Context, t Ticket) (bool, error) {
	ctx, stop := joinScope(ctx, c.scope)
	defer stop()

	available, err := c.client.CheckAvailability(ctx, t.Name)
	if err != nil {
		if !model.IsTransport(err) {
			err = &model.TransportError{Name: t.Name, Err: err}
		}
		return false, err
	}
	return available, nil
}

// SubmitCheck runs one full submission cycle and blocks until the response
// is applied. The returned error is the validation or transport failure, if
// any; the state already carries the matching user-visible message.
func (c *Controller) SubmitCheck(ctx context.Context) error {
	t, err := c.Begin()
	if err != nil {
		return err
	}

	var (
		available bool
		runErr    error
	)
	defer func() {
		// Always release the pending flag, including on panic in the client.
		if r := recover(); r != nil {
			c.Resolve(t, false, fmt.Errorf("availability client panic: %v", r))
			panic(r)
		}
		c.Resolve(t, available, runErr)
	}()

	available, runErr = c.Run(ctx, t)
	return runErr
}

// joinScope returns a context cancelled when either ctx or scope ends.
func joinScope(ctx, scope context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	joined, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(scope, cancel)
	return joined, func() {
		stop()
		cancel()
	}
}
