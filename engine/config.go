package engine

import (
	"errors"
	"time"

	uretry "github.com/solbuf-labs/solship/utils/retry"
)

const (
	// DefaultConcurrency bounds how many messages are in flight simultaneously.
	DefaultConcurrency = 8
	// DefaultRetryDelay is the default delay between retry attempts.
	DefaultRetryDelay = 3 * time.Second
	// DefaultRetryAttempts is the default number of retry attempts.
	DefaultRetryAttempts = 5
	// DefaultMaxReconcileAttempts bounds the self-healing loop; exceeding it
	// surfaces a terminal delivery failure instead of retrying forever.
	DefaultMaxReconcileAttempts = 5
)

// DefaultReconcileBackoff is the default backoff between reconciliation passes.
var DefaultReconcileBackoff = uretry.NewBackoffConfig(
	uretry.WithInitialDelay(time.Second*6),
	uretry.WithMaxDelay(time.Second*30),
)

// Config holds the delivery engine tunables.
type Config struct {
	Concurrency          int                  `json:"concurrency,omitempty"`
	MaxReconcileAttempts int                  `json:"max_reconcile_attempts,omitempty"`
	RetryAttempts        *int                 `json:"retry_attempts,omitempty"`
	RetryDelay           time.Duration        `json:"retry_delay,omitempty"`
	Backoff              uretry.BackoffConfig `json:"backoff,omitempty"`
}

// SetDefaults sets default values for unset fields
func (c *Config) SetDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxReconcileAttempts == 0 {
		c.MaxReconcileAttempts = DefaultMaxReconcileAttempts
	}
	if c.RetryAttempts == nil {
		attempts := DefaultRetryAttempts
		c.RetryAttempts = &attempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.Backoff == (uretry.BackoffConfig{}) {
		c.Backoff = DefaultReconcileBackoff
	}
}

// GetRetryAttempts returns retry attempts with a safe default
func (c *Config) GetRetryAttempts() int {
	if c.RetryAttempts == nil {
		return DefaultRetryAttempts
	}
	return *c.RetryAttempts
}

func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return errors.New("concurrency must be positive")
	}
	if c.MaxReconcileAttempts < 0 {
		return errors.New("max reconcile attempts must be positive")
	}
	return nil
}
