package retry

import (
	"context"
	"time"
)

const (
	defaultInitialDelay = 200 * time.Millisecond
	defaultMaxDelay     = 30 * time.Second
	defaultGrowthFactor = 2
)

// BackoffConfig is the serializable description of a backoff schedule. It is
// embedded in config structs; call Backoff() to get a stateful instance.
type BackoffConfig struct {
	InitialDelay time.Duration `json:"initial_delay"`
	MaxDelay     time.Duration `json:"max_delay"`
	GrowthFactor float64       `json:"growth_factor"`
}

type BackoffOption func(*BackoffConfig)

func WithInitialDelay(d time.Duration) BackoffOption {
	return func(c *BackoffConfig) {
		c.InitialDelay = d
	}
}

// WithMaxDelay caps the delay. Zero disables the cap.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(c *BackoffConfig) {
		c.MaxDelay = d
	}
}

// WithGrowthFactor sets the multiplier applied to the delay after each use.
// The factor should be greater than 1.0.
func WithGrowthFactor(x float64) BackoffOption {
	return func(c *BackoffConfig) {
		c.GrowthFactor = x
	}
}

func NewBackoffConfig(opts ...BackoffOption) BackoffConfig {
	ret := BackoffConfig{
		InitialDelay: defaultInitialDelay,
		MaxDelay:     defaultMaxDelay,
		GrowthFactor: defaultGrowthFactor,
	}
	for _, o := range opts {
		o(&ret)
	}
	return ret
}

// Backoff creates a fresh Backoff starting at the initial delay.
func (c BackoffConfig) Backoff() Backoff {
	return Backoff{
		delay:        c.InitialDelay,
		maxDelay:     c.MaxDelay,
		growthFactor: c.GrowthFactor,
	}
}

type Backoff struct {
	delay        time.Duration
	maxDelay     time.Duration
	growthFactor float64
}

// Delay returns the current delay and advances the schedule.
func (b *Backoff) Delay() time.Duration {
	ret := b.delay
	b.delay = time.Duration(float64(b.delay) * b.growthFactor)
	if b.maxDelay != 0 {
		b.delay = min(b.delay, b.maxDelay)
	}
	return ret
}

// Sleep blocks for the current delay, or until the context is done,
// and advances the schedule either way.
func (b *Backoff) Sleep(ctx context.Context) error {
	t := time.NewTimer(b.Delay())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
