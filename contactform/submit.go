package contactform

import (
	"context"
	"errors"
	"time"
)

// ErrSubmissionInFlight is returned by Form.Submit while a previous
// submission has not finished.
var ErrSubmissionInFlight = errors.New("contactform: submission already in flight")

// Submitter delivers a snapshot to a backend. A nil error means the
// backend accepted it.
type Submitter interface {
	Submit(ctx context.Context, s Snapshot) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Snapshot) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, s Snapshot) error { return f(ctx, s) }

// DefaultSubmitDelay is the latency of SimulatedSubmitter.
const DefaultSubmitDelay = 1500 * time.Millisecond

// SimulatedSubmitter stands in for a backend: it waits Delay and succeeds.
type SimulatedSubmitter struct {
	Delay time.Duration
}

// Submit waits for the delay or returns ctx.Err() if ctx ends first.
func (s SimulatedSubmitter) Submit(ctx context.Context, _ Snapshot) error {
	d := s.Delay
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
