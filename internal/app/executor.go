package app

import (
	"context"
	"time"
)

// AttemptOutcome is the single outcome reported for one extraction attempt
type AttemptOutcome string

const (
	OutcomeSuccess AttemptOutcome = "success"
	OutcomeFailure AttemptOutcome = "failure"
	OutcomeTimeout AttemptOutcome = "timeout"
)

// ExtractionAttempt records one run of one strategy against one request
type ExtractionAttempt struct {
	Strategy  string
	StartedAt time.Time
	Deadline  time.Time
	Outcome   AttemptOutcome
	Path      string
	Err       error
}

// strategyCall is one extraction invocation producing a local file path
type strategyCall func(ctx context.Context) (string, error)

// runBounded executes exactly one strategy invocation in its own goroutine
// and races it against the wall-clock budget. When the budget elapses first,
// the attempt context is cancelled, which kills subprocess-backed calls;
// calls with no cancellation hook are abandoned and may keep consuming
// resources until they return on their own (bounded leak, the result channel
// is buffered so the late send never blocks). Exactly one outcome is
// reported per attempt.
func runBounded(ctx context.Context, budget time.Duration, strategy string, call strategyCall) ExtractionAttempt {
	attempt := ExtractionAttempt{
		Strategy:  strategy,
		StartedAt: time.Now(),
		Deadline:  time.Now().Add(budget),
	}

	attemptCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type callResult struct {
		path string
		err  error
	}
	done := make(chan callResult, 1)

	go func() {
		path, err := call(attemptCtx)
		done <- callResult{path: path, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			attempt.Outcome = OutcomeFailure
			attempt.Err = res.err
			return attempt
		}
		attempt.Outcome = OutcomeSuccess
		attempt.Path = res.path
		return attempt
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			// Caller cancelled, not a budget violation
			attempt.Outcome = OutcomeFailure
			attempt.Err = ctx.Err()
			return attempt
		}
		attempt.Outcome = OutcomeTimeout
		return attempt
	}
}
