package freepik

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultPollInitial = 3 * time.Second
	defaultPollCap     = 10 * time.Second
	defaultPollTimeout = 3 * time.Minute
)

// ErrTaskFailed is returned when a task finishes with status FAILED.
var ErrTaskFailed = eris.New("freepik: task failed")

// PollOption configures polling behavior.
type PollOption func(*pollConfig)

type pollConfig struct {
	initial time.Duration
	cap     time.Duration
	timeout time.Duration
}

// WithPollInterval overrides the initial poll interval.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) {
		if d > 0 {
			c.initial = d
		}
	}
}

// WithPollCap overrides the maximum poll interval.
func WithPollCap(d time.Duration) PollOption {
	return func(c *pollConfig) {
		if d > 0 {
			c.cap = d
		}
	}
}

// WithPollTimeout overrides the default timeout (applied only if the parent
// context has no deadline).
func WithPollTimeout(d time.Duration) PollOption {
	return func(c *pollConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// PollTask polls GetTask until the task completes, fails, or the context
// expires. The interval doubles after each attempt up to the cap.
func PollTask(ctx context.Context, client Client, id string, opts ...PollOption) (*Task, error) {
	cfg := pollConfig{
		initial: defaultPollInitial,
		cap:     defaultPollCap,
		timeout: defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if id == "" {
		return nil, eris.New("freepik: poll task: empty task id")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	interval := cfg.initial
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, eris.Wrapf(ctx.Err(), "freepik: poll task %s timed out", id)
		case <-timer.C:
		}

		task, err := client.GetTask(ctx, id)
		if err != nil {
			return nil, eris.Wrapf(err, "freepik: poll task %s", id)
		}

		switch task.Status {
		case StatusCompleted:
			return task, nil
		case StatusFailed:
			return nil, eris.Wrapf(ErrTaskFailed, "freepik: task %s", id)
		}

		interval *= 2
		if interval > cfg.cap {
			interval = cfg.cap
		}
		timer.Reset(interval)
	}
}
