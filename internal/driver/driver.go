package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"memberscout/internal/config"
	"memberscout/internal/scrape"
	"memberscout/internal/types"
)

// State is the driver's position in a scrape run.
type State string

const (
	StateStarting       State = "starting"
	StateNavigatingRoot State = "navigating-root"
	StateEnumerating    State = "enumerating"
	StateWalking        State = "walking"
	StateSuccess        State = "success"
	StateRetrying       State = "retrying"
	StateFailed         State = "failed"
)

// Session is one opened browsing session. Each attempt gets a fresh one so
// no process-level browser state survives a retry.
type Session interface {
	NavigateRoot(ctx context.Context) error
	Directory() scrape.DirectoryPage
	Visitor() scrape.Visitor
	Close() error
}

// SessionFactory opens a new Session.
type SessionFactory func() (Session, error)

// Driver orchestrates end-to-end scrape attempts. The whole run is retried
// up to the configured attempt count; this is the only recovery mechanism
// above the walker's per-item skip.
type Driver struct {
	cfg        *config.Config
	factory    SessionFactory
	enumerator *scrape.Enumerator
	walker     *scrape.Walker
	visitor    scrape.Visitor // optional override of the session's visitor
	logger     *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures the Driver.
type Option func(*Driver)

// WithVisitor overrides the session-provided profile visitor, e.g. with the
// direct HTTP client.
func WithVisitor(v scrape.Visitor) Option {
	return func(d *Driver) { d.visitor = v }
}

// New creates a Driver.
func New(cfg *config.Config, factory SessionFactory, enumerator *scrape.Enumerator, walker *scrape.Walker, logger *slog.Logger, opts ...Option) *Driver {
	d := &Driver{
		cfg:        cfg,
		factory:    factory,
		enumerator: enumerator,
		walker:     walker,
		logger:     logger.With("component", "driver"),
		state:      StateStarting,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the driver's current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	d.logger.Debug("state change", "state", s)
}

// Run executes scrape attempts until one succeeds or attempts are exhausted.
// On exhaustion the last error propagates and no partial results are kept.
func (d *Driver) Run(ctx context.Context) ([]types.MemberRecord, error) {
	attempts := d.cfg.Scrape.RetryCount

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		records, err := d.runOnce(ctx)
		if err == nil {
			d.setState(StateSuccess)
			d.logger.Info("scrape succeeded", "attempt", attempt, "records", len(records))
			return records, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			d.setState(StateRetrying)
			d.logger.Error("scrape attempt failed, retrying",
				"attempt", attempt, "remaining", attempts-attempt, "error", err)
		}
	}

	d.setState(StateFailed)
	return nil, fmt.Errorf("%w (%d attempts): %w", types.ErrAttemptsSpent, attempts, lastErr)
}

// runOnce performs a single end-to-end attempt with a fresh session.
func (d *Driver) runOnce(ctx context.Context) ([]types.MemberRecord, error) {
	d.setState(StateStarting)
	sess, err := d.factory()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			d.logger.Warn("session close failed", "error", cerr)
		}
	}()

	d.setState(StateNavigatingRoot)
	if err := sess.NavigateRoot(ctx); err != nil {
		return nil, fmt.Errorf("navigate directory root: %w", err)
	}

	d.setState(StateEnumerating)
	links, err := d.enumerator.Collect(sess.Directory())
	if err != nil {
		return nil, fmt.Errorf("enumerate pagination: %w", err)
	}

	d.setState(StateWalking)
	visitor := d.visitor
	if visitor == nil {
		visitor = sess.Visitor()
	}
	records, err := d.walker.Walk(ctx, links, visitor)
	if err != nil {
		return nil, fmt.Errorf("walk profiles: %w", err)
	}

	return records, nil
}
