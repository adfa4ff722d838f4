package contactform

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Snapshot is the immutable capture of a form that passed the submit gate.
// It is handed to exactly one Submitter and not retained by the Form.
type Snapshot struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSnapshot trims every value and stamps the capture time.
func NewSnapshot(vs Values, at time.Time) Snapshot {
	return Snapshot{
		Name:      strings.TrimSpace(vs[Name]),
		Email:     strings.TrimSpace(vs[Email]),
		Phone:     strings.TrimSpace(vs[Phone]),
		Subject:   strings.TrimSpace(vs[Subject]),
		Message:   strings.TrimSpace(vs[Message]),
		Timestamp: at.UTC(),
	}
}

// Values returns the snapshot as per-field values.
func (s Snapshot) Values() Values {
	var vs Values
	vs[Name] = s.Name
	vs[Email] = s.Email
	vs[Phone] = s.Phone
	vs[Subject] = s.Subject
	vs[Message] = s.Message
	return vs
}

// Validate runs the submit gate over the snapshot's values.
func (s Snapshot) Validate() Results {
	return ValidateAll(s.Values())
}

// CounterWarnBelow is the remaining-capacity threshold for the counter
// warning treatment.
const CounterWarnBelow = 100

// Counter is the live character counter shown under the message field.
type Counter struct {
	Length int
	Max    int
	Warn   bool
}

// CountMessage computes the counter for the untrimmed message value.
func CountMessage(v string) Counter {
	n := utf8.RuneCountInString(v)
	return Counter{
		Length: n,
		Max:    MessageMaxLen,
		Warn:   MessageMaxLen-n < CounterWarnBelow,
	}
}

func (c Counter) String() string {
	return fmt.Sprintf("%d / %d characters", c.Length, c.Max)
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone renders a bare 10-digit number as "(AAA) BBB-CCCC" and
// returns anything else unchanged.
func FormatPhone(s string) string {
	d := nonDigits.ReplaceAllString(s, "")
	if len(d) != 10 {
		return s
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

// Sanitize escapes text for inclusion in HTML.
func Sanitize(s string) string {
	return html.EscapeString(s)
}
