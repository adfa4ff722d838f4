// Package notify tells staff about new contact messages by e-mail.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TAPAN-2835/Business-Website/contactform"
	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/wneessen/go-mail"
)

// htmlPolicy is applied to the composed HTML part before it is sent.
var htmlPolicy = bluemonday.UGCPolicy()

// Notifier delivers a new-message notification.
type Notifier interface {
	NotifyContact(ctx context.Context, m models.ContactMessage) error
}

// Nop discards notifications. Used when SMTP is not configured.
type Nop struct{}

func (Nop) NotifyContact(context.Context, models.ContactMessage) error { return nil }

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int // 587 STARTTLS by default, 465 implicit TLS
	Username string
	Password string
	From     string
	FromName string
	To       []string
	Timeout  time.Duration

	// SubjectLabel resolves a subject value to its display label.
	SubjectLabel func(string) string
}

// Mailer sends notifications through go-mail.
type Mailer struct {
	cfg Config
}

// NewMailer applies defaults and checks that sender and recipients are set.
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify: smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("notify: from address is required")
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("notify: no recipients configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.SubjectLabel == nil {
		cfg.SubjectLabel = func(s string) string { return s }
	}
	return &Mailer{cfg: cfg}, nil
}

// Compose builds the notification e-mail. Replies go to the visitor.
func (m *Mailer) Compose(msg models.ContactMessage) (*mail.Msg, error) {
	out := mail.NewMsg()
	if m.cfg.FromName != "" {
		if err := out.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
			return nil, fmt.Errorf("notify: invalid from address: %w", err)
		}
	} else if err := out.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("notify: invalid from address: %w", err)
	}
	if err := out.To(m.cfg.To...); err != nil {
		return nil, fmt.Errorf("notify: invalid recipient: %w", err)
	}
	if err := out.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("notify: invalid reply-to: %w", err)
	}
	out.Subject(fmt.Sprintf("[%s] %s", m.cfg.SubjectLabel(msg.Subject), msg.Name))
	label := m.cfg.SubjectLabel(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, Body(msg, label))
	out.AddAlternativeString(mail.TypeTextHTML, HTMLBody(msg, label))
	return out, nil
}

// NotifyContact sends the notification for msg.
func (m *Mailer) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	out, err := m.Compose(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}

	c, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("notify: create client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}

// Body renders the plain-text notification.
func Body(msg models.ContactMessage, subjectLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New message via the website (%s)\n\n", msg.Channel)
	fmt.Fprintf(&b, "Name:    %s\n", msg.Name)
	fmt.Fprintf(&b, "Email:   %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", contactform.FormatPhone(msg.Phone))
	}
	fmt.Fprintf(&b, "Subject: %s\n", subjectLabel)
	fmt.Fprintf(&b, "Sent:    %s\n", msg.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "ID:      %s\n\n", msg.ID)
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}

// HTMLBody renders the HTML alternative. Visitor text is escaped and the
// result passes through a bluemonday policy so nothing but the table
// markup reaches a mail client.
func HTMLBody(msg models.ContactMessage, subjectLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>New message via the website (%s)</p>\n<table>\n", contactform.Sanitize(string(msg.Channel)))
	row := func(k, v string) {
		fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>\n", k, contactform.Sanitize(v))
	}
	row("Name", msg.Name)
	row("Email", msg.Email)
	if msg.Phone != "" {
		row("Phone", contactform.FormatPhone(msg.Phone))
	}
	row("Subject", subjectLabel)
	row("Sent", msg.CreatedAt.Format(time.RFC1123))
	row("ID", msg.ID)
	b.WriteString("</table>\n<p>")
	b.WriteString(strings.ReplaceAll(contactform.Sanitize(msg.Message), "\n", "<br>"))
	b.WriteString("</p>\n")
	return htmlPolicy.Sanitize(b.String())
}
