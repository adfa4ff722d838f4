// Package contactform implements the contact form's validation state machine:
// per-field validators, the clean/invalid/valid field status, the submit
// gate, and the submission task that hands a Snapshot to a backend.
//
// A Form owns all mutable state for one form. It is driven by the same
// events a browser would deliver (Input, Blur, Change, Submit) and renders
// through a View, so the rules run identically behind an HTML page, a JSON
// endpoint, or a test double.
package contactform

import "strings"

// Field identifies one input of the contact form.
type Field int

// Fields in source (DOM) order. Focus-on-error walks this order.
const (
	Name Field = iota
	Email
	Phone
	Subject
	Message
)

// Fields lists every field in source order.
var Fields = [...]Field{Name, Email, Phone, Subject, Message}

var fieldNames = [...]string{"name", "email", "phone", "subject", "message"}

// String returns the field's form name (the input's id and JSON key).
func (f Field) String() string {
	if f < Name || f > Message {
		return "unknown"
	}
	return fieldNames[f]
}

// Optional reports whether an empty value is acceptable.
func (f Field) Optional() bool { return f == Phone }

// ParseField maps a form name back to its Field.
func ParseField(s string) (Field, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range fieldNames {
		if n == s {
			return Field(i), true
		}
	}
	return 0, false
}

// Status is the UI state of a field.
type Status int

const (
	// Clean: no styling, no message, aria-invalid removed.
	Clean Status = iota
	// Invalid: error styling, message shown, aria-invalid="true".
	Invalid
	// Valid: success styling, message cleared, aria-invalid="false".
	Valid
)

func (s Status) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return "clean"
	}
}

// Class is the CSS class applied to the input for this status.
func (s Status) Class() string {
	switch s {
	case Invalid:
		return "error"
	case Valid:
		return "success"
	default:
		return ""
	}
}

// Projection is what a View needs to render one field.
type Projection struct {
	Status  Status
	Message string
	// AriaInvalid is "true", "false", or "" when the attribute must be
	// removed entirely.
	AriaInvalid string
}

// Project derives the field projection for a validation result.
// An accepted empty optional field projects Clean rather than Valid.
func Project(f Field, value string, r Result) Projection {
	switch {
	case !r.OK:
		return Projection{Status: Invalid, Message: r.Message, AriaInvalid: "true"}
	case f.Optional() && strings.TrimSpace(value) == "":
		return CleanProjection()
	default:
		return Projection{Status: Valid, AriaInvalid: "false"}
	}
}

// CleanProjection is the projection of an untouched (or edited) field.
func CleanProjection() Projection {
	return Projection{Status: Clean}
}
