package contactform

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultBannerTimeout is how long the success banner stays visible.
const DefaultBannerTimeout = 5 * time.Second

// Outcome describes one Submit call.
type Outcome struct {
	// Accepted reports whether the submit gate passed.
	Accepted bool
	// Delivered reports whether the Submitter succeeded.
	Delivered bool
	Results   Results
	// Snapshot is set whenever the gate passed.
	Snapshot *Snapshot
}

// Form is the single owner of one contact form's state: field values,
// field statuses, and the submit control. All methods are safe for
// concurrent use; the Submitter runs without the lock held.
type Form struct {
	view      View
	submitter Submitter
	now       func() time.Time
	afterFunc func(time.Duration, func())
	banner    time.Duration

	mu       sync.Mutex
	values   Values
	statuses [len(Fields)]Status
	inFlight bool
	// bannerGen invalidates dismissal timers from earlier successes.
	bannerGen uint64
}

// Option configures a Form.
type Option func(*Form)

// WithClock sets the time source used for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithAfterFunc replaces time.AfterFunc for the banner dismissal timer.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(f *Form) { f.afterFunc = fn }
}

// WithBannerTimeout sets how long the success banner stays up.
func WithBannerTimeout(d time.Duration) Option {
	return func(f *Form) { f.banner = d }
}

// New binds a Form to a view and a submitter. A nil view discards
// rendering; a nil submitter uses SimulatedSubmitter.
func New(view View, submitter Submitter, opts ...Option) *Form {
	if view == nil {
		view = NopView{}
	}
	if submitter == nil {
		submitter = SimulatedSubmitter{Delay: DefaultSubmitDelay}
	}
	f := &Form{
		view:      view,
		submitter: submitter,
		now:       time.Now,
		afterFunc: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		banner:    DefaultBannerTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.view.SetCounter(CountMessage(""))
	return f
}

// Value returns the current raw value of fld.
func (f *Form) Value(fld Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[fld]
}

// Values returns a copy of every raw value.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Status returns the current UI status of fld.
func (f *Form) Status(fld Field) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[fld]
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Input records a keystroke-level edit. An Invalid field drops back to
// Clean without re-validating; the message counter is recomputed.
func (f *Form) Input(fld Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[fld] = value
	if f.statuses[fld] == Invalid {
		f.apply(fld, CleanProjection())
	}
	if fld == Message {
		f.view.SetCounter(CountMessage(value))
	}
}

// Change records a discrete selection (the subject dropdown) and
// validates it immediately.
func (f *Form) Change(fld Field, value string) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[fld] = value
	return f.validate(fld)
}

// Blur validates fld when it loses focus.
func (f *Form) Blur(fld Field) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate(fld)
}

// Validate re-runs every validator and renders the results without
// submitting.
func (f *Form) Validate() Results {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAll()
}

// Submit runs the submit protocol. A rejected gate is not an error: the
// Outcome reports it and focus moves to the first invalid field. Errors
// are returned for re-entrant calls and for submitter failures.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return Outcome{}, ErrSubmissionInFlight
	}

	f.view.HideSuccess()
	rs := f.validateAll()
	out := Outcome{Results: rs}
	if !rs.Accepted() {
		for _, fld := range Fields {
			if f.statuses[fld] == Invalid {
				f.view.Focus(fld)
				break
			}
		}
		f.mu.Unlock()
		return out, nil
	}

	snap := NewSnapshot(f.values, f.now())
	out.Accepted = true
	out.Snapshot = &snap
	f.inFlight = true
	f.view.SetSubmit(false, PendingLabel)
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, snap)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		f.view.SetSubmit(true, SubmitLabel)
		f.view.ShowFailure(FailureNotice)
		return out, fmt.Errorf("contactform: submit: %w", err)
	}

	out.Delivered = true
	f.view.ShowSuccess()
	f.bannerGen++
	gen := f.bannerGen
	f.afterFunc(f.banner, func() { f.dismissBanner(gen) })

	f.values = Values{}
	f.view.Reset()
	for _, fld := range Fields {
		f.apply(fld, CleanProjection())
	}
	f.view.SetCounter(CountMessage(""))
	f.view.SetSubmit(true, SubmitLabel)
	return out, nil
}

func (f *Form) dismissBanner(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.bannerGen {
		return
	}
	f.view.HideSuccess()
}

// validate runs one validator and renders it. Caller holds f.mu.
func (f *Form) validate(fld Field) Result {
	r := Validate(fld, f.values[fld])
	f.apply(fld, Project(fld, f.values[fld], r))
	return r
}

// validateAll runs every validator in source order. Caller holds f.mu.
func (f *Form) validateAll() Results {
	var rs Results
	for _, fld := range Fields {
		rs[fld] = f.validate(fld)
	}
	return rs
}

func (f *Form) apply(fld Field, p Projection) {
	f.statuses[fld] = p.Status
	f.view.Render(fld, p)
}
