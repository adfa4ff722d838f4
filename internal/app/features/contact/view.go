package contact

import (
	"time"

	"github.com/TAPAN-2835/Business-Website/contactform"
	"github.com/TAPAN-2835/Business-Website/internal/app/resources"
	"github.com/TAPAN-2835/Business-Website/internal/site"
)

const validatePath = "/validate"

// ValidateEndpoint serves the live field check.
const ValidateEndpoint = contactform.DefaultEndpoint + validatePath

// SuccessNotice is the banner shown after a message is stored.
const SuccessNotice = "Thank you! Your message has been sent successfully. We'll get back to you soon."

// FieldView is one rendered input.
type FieldView struct {
	ID           string
	Label        string
	Type         string
	Autocomplete string
	Value        string
	Class        string
	Message      string
	AriaInvalid  string
	Autofocus    bool
}

// ErrorClass is the class of the field's error element.
func (f FieldView) ErrorClass() string {
	if f.Message != "" {
		return "error-message show"
	}
	return "error-message"
}

var inputs = [...]struct{ label, typ, autocomplete string }{
	contactform.Name:    {"Name", "text", "name"},
	contactform.Email:   {"Email", "email", "email"},
	contactform.Phone:   {"Phone (optional)", "tel", "tel"},
	contactform.Subject: {"Subject", "", ""},
	contactform.Message: {"Message", "", ""},
}

// FormView is what contact.gohtml renders.
type FormView struct {
	Name, Email, Phone, Subject, Message FieldView

	Subjects      []site.Option
	Counter       contactform.Counter
	MaxLength     int
	SubmitEnabled bool
	SubmitLabel   string
	PendingLabel  string
	Success       bool
	SuccessNotice string
	Failure       string
	// BannerTimeoutMS is read by the page script to dismiss the banner.
	BannerTimeoutMS int64
	// ValidateURL is where the page script sends live field checks.
	ValidateURL string
}

// Data is the contact page's template data.
type Data struct {
	Layout resources.Layout
	Form   FormView
}

func newFormView(p *contactform.PageState, subjects []site.Option, banner time.Duration) FormView {
	focus, hasFocus := p.Focused()
	field := func(f contactform.Field) FieldView {
		st := p.Field(f)
		in := inputs[f]
		return FieldView{
			ID:           f.String(),
			Label:        in.label,
			Type:         in.typ,
			Autocomplete: in.autocomplete,
			Value:        st.Value,
			Class:        st.Class,
			Message:      st.Message,
			AriaInvalid:  st.AriaInvalid,
			Autofocus:    hasFocus && focus == f,
		}
	}
	enabled, label := p.Submit()
	return FormView{
		Name:            field(contactform.Name),
		Email:           field(contactform.Email),
		Phone:           field(contactform.Phone),
		Subject:         field(contactform.Subject),
		Message:         field(contactform.Message),
		Subjects:        subjects,
		Counter:         p.Counter(),
		MaxLength:       contactform.MessageMaxLen,
		SubmitEnabled:   enabled,
		SubmitLabel:     label,
		PendingLabel:    contactform.PendingLabel,
		Success:         p.SuccessVisible(),
		SuccessNotice:   SuccessNotice,
		Failure:         p.Failure(),
		BannerTimeoutMS: banner.Milliseconds(),
		ValidateURL:     ValidateEndpoint,
	}
}
