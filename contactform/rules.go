package contactform

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length limits, counted in characters after trimming.
const (
	NameMinLen    = 2
	NameMaxLen    = 50
	MessageMinLen = 10
	MessageMaxLen = 1000
)

// Reason is a machine-readable validation failure code.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonEmpty         Reason = "empty"
	ReasonTooShort      Reason = "too_short"
	ReasonTooLong       Reason = "too_long"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonUnselected    Reason = "unselected"
)

// Result is the outcome of validating one field value.
type Result struct {
	OK      bool   `json:"ok"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok() Result { return Result{OK: true} }

func fail(reason Reason, msg string) Result {
	return Result{Reason: reason, Message: msg}
}

var (
	// RFC 5322 simplified: printable local part, dot-separated host labels
	// of 1..63 alphanumerics/hyphens that neither start nor end with '-'.
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

	// Optional '+', optional parenthesised groups of 1..4 and 1..4 digits,
	// one optional separated group of 1..4, then a final run of 1..9.
	phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?(?:[0-9]{1,4}[-\s.])?[0-9]{1,9}$`)
)

// ValidateName requires 2..50 characters.
func ValidateName(v string) Result {
	v = strings.TrimSpace(v)
	n := utf8.RuneCountInString(v)
	switch {
	case v == "":
		return fail(ReasonEmpty, "Please enter your name")
	case n < NameMinLen:
		return fail(ReasonTooShort, "Name must be at least 2 characters")
	case n > NameMaxLen:
		return fail(ReasonTooLong, "Name must be less than 50 characters")
	}
	return ok()
}

// ValidateEmail requires a non-empty address matching the simplified pattern.
func ValidateEmail(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail(ReasonEmpty, "Please enter your email address")
	}
	if !emailPattern.MatchString(v) {
		return fail(ReasonInvalidFormat, "Please enter a valid email address")
	}
	return ok()
}

// ValidatePhone accepts an empty value; anything else must look like a
// phone number.
func ValidatePhone(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return ok()
	}
	if !phonePattern.MatchString(v) {
		return fail(ReasonInvalidFormat, "Please enter a valid phone number")
	}
	return ok()
}

// ValidateSubject requires a selection other than the empty placeholder.
func ValidateSubject(v string) Result {
	if strings.TrimSpace(v) == "" {
		return fail(ReasonUnselected, "Please select a subject")
	}
	return ok()
}

// ValidateMessage requires 10..1000 characters.
func ValidateMessage(v string) Result {
	v = strings.TrimSpace(v)
	n := utf8.RuneCountInString(v)
	switch {
	case v == "":
		return fail(ReasonEmpty, "Please enter your message")
	case n < MessageMinLen:
		return fail(ReasonTooShort, "Message must be at least 10 characters")
	case n > MessageMaxLen:
		return fail(ReasonTooLong, "Message must be less than 1000 characters")
	}
	return ok()
}

// Validate dispatches to the validator for f.
func Validate(f Field, v string) Result {
	switch f {
	case Name:
		return ValidateName(v)
	case Email:
		return ValidateEmail(v)
	case Phone:
		return ValidatePhone(v)
	case Subject:
		return ValidateSubject(v)
	case Message:
		return ValidateMessage(v)
	}
	return fail(ReasonInvalidFormat, "Unknown field")
}

// Values holds one raw value per field.
type Values [len(Fields)]string

// Get returns the value of f.
func (vs Values) Get(f Field) string { return vs[f] }

// Results holds one validation result per field.
type Results [len(Fields)]Result

// Accepted is the submit gate: the AND of every field result.
func (rs Results) Accepted() bool {
	for _, r := range rs {
		if !r.OK {
			return false
		}
	}
	return true
}

// FirstInvalid returns the first rejected field in source order.
func (rs Results) FirstInvalid() (Field, bool) {
	for _, f := range Fields {
		if !rs[f].OK {
			return f, true
		}
	}
	return 0, false
}

// Errors maps rejected field names to their results.
func (rs Results) Errors() map[string]Result {
	out := make(map[string]Result)
	for _, f := range Fields {
		if !rs[f].OK {
			out[f.String()] = rs[f]
		}
	}
	return out
}

// ValidateAll runs every validator unconditionally.
func ValidateAll(vs Values) Results {
	var rs Results
	for _, f := range Fields {
		rs[f] = Validate(f, vs[f])
	}
	return rs
}
