package clock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
)

// ErrInvalidInterval is returned for a non-positive tick interval
var ErrInvalidInterval = errors.New("interval must be positive")

// Stepper advances a simulation by one generation
type Stepper interface {
	Step() *model.View
}

// Clock calls Step on a fixed interval while running. The engine itself has no
// notion of time; stopping the clock simply stops the calls.
//
// onTick runs on the clock goroutine after every step. It must not call Start,
// Stop or SetInterval; cancel the context passed to Start instead.
type Clock struct {
	stepper Stepper
	onTick  func(*model.View)

	mu       sync.Mutex
	interval time.Duration
	parent   context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a stopped clock
func New(stepper Stepper, interval time.Duration, onTick func(*model.View)) (*Clock, error) {
	if interval <= 0 {
		return nil, errors.Wrapf(ErrInvalidInterval, "[New] got %v", interval)
	}
	return &Clock{stepper: stepper, interval: interval, onTick: onTick}, nil
}

// Start begins ticking until Stop is called or ctx is done. Starting a running
// clock restarts it rather than adding a second ticker.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.startLocked(ctx)
}

// Stop halts the clock and waits for an in-flight tick to finish
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
}

// Run ticks until ctx is done
func (c *Clock) Run(ctx context.Context) error {
	c.Start(ctx)
	<-ctx.Done()
	c.Stop()
	return nil
}

// Running reports whether the clock is currently ticking
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Interval returns the current tick interval
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetInterval changes the tick interval, restarting the ticker if running
func (c *Clock) SetInterval(d time.Duration) error {
	if d <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "[SetInterval] got %v", d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.interval = d
	if c.cancel != nil {
		parent := c.parent
		c.stopLocked()
		c.startLocked(parent)
	}
	return nil
}

func (c *Clock) startLocked(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.parent, c.cancel, c.done = ctx, cancel, done

	interval := c.interval
	go func() {
		defer close(done)
		c.run(runCtx, interval)
	}()
}

func (c *Clock) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.parent, c.cancel, c.done = nil, nil, nil
}

func (c *Clock) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// select picks randomly when both are ready
			if ctx.Err() != nil {
				return
			}
			v := c.stepper.Step()
			if c.onTick != nil {
				c.onTick(v)
			}
		}
	}
}
