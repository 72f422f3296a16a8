package upstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type BackoffKind string

const (
	BackoffFixed       BackoffKind = "fixed"
	BackoffExponential BackoffKind = "exponential"
)

const (
	jitterFactor        = 0.5
	exponentialMultiple = 2.0
	defaultMaxDelay     = 30 * time.Second
)

// RetryPolicy is read-only configuration shared by every call a Client makes.
// MaxAttempts counts the first attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffKind
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry policy: max attempts must be >= 1 (got %d)", p.MaxAttempts)
	}
	switch p.kind() {
	case BackoffFixed, BackoffExponential:
	default:
		return fmt.Errorf("retry policy: unknown backoff %q", p.Backoff)
	}
	if p.BaseDelay < 0 {
		return fmt.Errorf("retry policy: base delay must be >= 0 (got %s)", p.BaseDelay)
	}
	if p.MaxDelay < 0 {
		return fmt.Errorf("retry policy: max delay must be >= 0 (got %s)", p.MaxDelay)
	}
	if p.MaxDelay > 0 && p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("retry policy: max delay %s is below base delay %s", p.MaxDelay, p.BaseDelay)
	}
	return nil
}

func (p RetryPolicy) kind() BackoffKind {
	k := BackoffKind(strings.ToLower(strings.TrimSpace(string(p.Backoff))))
	if k == "" {
		return BackoffFixed
	}
	return k
}

// newBackOff builds a fresh per-call schedule; backoff.BackOff values are stateful.
func (p RetryPolicy) newBackOff() backoff.BackOff {
	if p.kind() == BackoffFixed && !p.Jitter {
		return backoff.NewConstantBackOff(p.BaseDelay)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.RandomizationFactor = 0
	if p.Jitter {
		b.RandomizationFactor = jitterFactor
	}
	if p.kind() == BackoffFixed {
		// Multiplier 1 keeps the interval flat; only the randomization applies.
		b.Multiplier = 1
		b.MaxInterval = p.BaseDelay
	} else {
		b.Multiplier = exponentialMultiple
		b.MaxInterval = p.MaxDelay
		if b.MaxInterval <= 0 {
			b.MaxInterval = defaultMaxDelay
		}
	}
	b.Reset()
	return b
}
