// Package retry implements a bounded-attempt retry policy with linear
// backoff, parameterized per call site.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds repeated attempts of an operation. The zero value is not
// useful; start from Default.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay scales the backoff: the sleep before attempt n+1 is
	// n × BaseDelay.
	BaseDelay time.Duration

	// Sleep overrides the delay function, used by tests. Default time.Sleep.
	Sleep func(time.Duration)
}

// Default matches the production policy: 3 attempts, 1s base delay.
func Default() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Do runs op until it succeeds or attempts are exhausted. The final error is
// returned annotated with the attempt count. Context cancellation stops
// retrying between attempts.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("after %d attempts: %w", attempt, ctx.Err())
		}
		sleep(time.Duration(attempt) * p.BaseDelay)
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
