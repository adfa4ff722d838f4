package contactform

// Labels of the submit control.
const (
	SubmitLabel  = "Send Message"
	PendingLabel = "Sending..."
)

// FailureNotice is shown when the backend rejects or cannot be reached.
const FailureNotice = "There was an error submitting the form. Please try again."

// View is the rendering boundary of a Form. Implementations apply state to
// a page (or record it for a template); they never decide it.
type View interface {
	// Render applies a field projection: input class, error text,
	// aria-invalid attribute.
	Render(f Field, p Projection)
	// Focus moves input focus to f.
	Focus(f Field)
	// SetSubmit enables or disables the submit control and sets its label.
	SetSubmit(enabled bool, label string)
	// ShowSuccess reveals the success banner, scrolls it into view and
	// gives it temporary focus.
	ShowSuccess()
	// HideSuccess hides the success banner.
	HideSuccess()
	// ShowFailure shows a retry-capable error notice.
	ShowFailure(msg string)
	// Reset blanks every input.
	Reset()
	// SetCounter updates the message character counter.
	SetCounter(c Counter)
}

// NopView discards every update.
type NopView struct{}

func (NopView) Render(Field, Projection) {}
func (NopView) Focus(Field)              {}
func (NopView) SetSubmit(bool, string)   {}
func (NopView) ShowSuccess()             {}
func (NopView) HideSuccess()             {}
func (NopView) ShowFailure(string)       {}
func (NopView) Reset()                   {}
func (NopView) SetCounter(Counter)       {}
