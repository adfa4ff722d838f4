package contactform

import "sync"

// FieldState is the rendered state of one input.
type FieldState struct {
	Value       string
	Class       string
	Message     string
	AriaInvalid string
	Status      Status
}

// PageState is a View that records the resulting page state so a server
// can render it as HTML.
type PageState struct {
	mu sync.Mutex

	fields         [len(Fields)]FieldState
	focus          Field
	hasFocus       bool
	submitEnabled  bool
	submitLabel    string
	successVisible bool
	failure        string
	counter        Counter
}

// NewPageState returns the state of a freshly loaded form.
func NewPageState() *PageState {
	return &PageState{
		submitEnabled: true,
		submitLabel:   SubmitLabel,
		counter:       CountMessage(""),
	}
}

func (p *PageState) Render(f Field, pr Projection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fs := &p.fields[f]
	fs.Status = pr.Status
	fs.Class = pr.Status.Class()
	fs.Message = pr.Message
	fs.AriaInvalid = pr.AriaInvalid
}

func (p *PageState) Focus(f Field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.focus, p.hasFocus = f, true
}

func (p *PageState) SetSubmit(enabled bool, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitEnabled, p.submitLabel = enabled, label
}

func (p *PageState) ShowSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.successVisible = true
	p.failure = ""
}

// HideSuccess runs at the start of every submit, so it also clears a
// failure notice left by the previous attempt.
func (p *PageState) HideSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.successVisible = false
	p.failure = ""
}

func (p *PageState) ShowFailure(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure = msg
}

func (p *PageState) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.fields {
		p.fields[i].Value = ""
	}
}

func (p *PageState) SetCounter(c Counter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter = c
}

// Fill copies raw values into the recorded inputs.
func (p *PageState) Fill(vs Values) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range Fields {
		p.fields[f].Value = vs[f]
	}
}

// Field returns the recorded state of f.
func (p *PageState) Field(f Field) FieldState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fields[f]
}

// Focused returns the field that last received focus.
func (p *PageState) Focused() (Field, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focus, p.hasFocus
}

// Submit returns the submit control's state.
func (p *PageState) Submit() (enabled bool, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitEnabled, p.submitLabel
}

// SuccessVisible reports whether the success banner is shown.
func (p *PageState) SuccessVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.successVisible
}

// Failure returns the failure notice, or "".
func (p *PageState) Failure() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failure
}

// Counter returns the message counter.
func (p *PageState) Counter() Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counter
}
