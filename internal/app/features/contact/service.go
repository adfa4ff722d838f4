// Package contact serves the contact page, its form POST and the JSON
// submission endpoint.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TAPAN-2835/Business-Website/contactform"
	"github.com/TAPAN-2835/Business-Website/internal/app/notify"
	"github.com/TAPAN-2835/Business-Website/internal/app/store"
	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Options tunes a Service.
type Options struct {
	// SubmitDelay adds simulated latency before a message is stored.
	SubmitDelay time.Duration
	// NotifyTimeout bounds the notification send. Defaults to 30s.
	NotifyTimeout time.Duration
}

// Service accepts contact messages: it normalises submitted text, stores
// the message and notifies staff.
type Service struct {
	store    store.Messages
	notifier notify.Notifier
	site     *site.Site
	logger   *zap.Logger
	opts     Options
	newID    func() string
}

// NewService wires a Service. A nil notifier disables notifications.
func NewService(st store.Messages, n notify.Notifier, s *site.Site, logger *zap.Logger, opts Options) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = 30 * time.Second
	}
	return &Service{
		store:    st,
		notifier: n,
		site:     s,
		logger:   logger,
		opts:     opts,
		newID:    func() string { return uuid.NewString() },
	}
}

// Clean NFC-normalises every value and otherwise leaves the text as
// typed; output escaping happens where it is rendered. A subject that is
// not one of the site's options is cleared so it fails as unselected.
func (s *Service) Clean(vs contactform.Values) contactform.Values {
	var out contactform.Values
	for _, f := range contactform.Fields {
		out[f] = norm.NFC.String(vs[f])
	}
	if sub := strings.TrimSpace(out[contactform.Subject]); sub != "" && !s.site.HasSubject(sub) {
		out[contactform.Subject] = ""
	}
	return out
}

// Accept stores snap and sends the staff notification. A failed
// notification is logged and counted but does not fail the submission.
func (s *Service) Accept(ctx context.Context, snap contactform.Snapshot, ch models.Channel) (models.ContactMessage, error) {
	if s.opts.SubmitDelay > 0 {
		if err := (contactform.SimulatedSubmitter{Delay: s.opts.SubmitDelay}).Submit(ctx, snap); err != nil {
			return models.ContactMessage{}, err
		}
	}

	msg := models.NewContactMessage(s.newID(), snap, ch)
	if err := s.store.Save(ctx, msg); err != nil {
		return models.ContactMessage{}, fmt.Errorf("save contact message: %w", err)
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.NotifyTimeout)
	defer cancel()
	err := s.notifier.NotifyContact(nctx, msg)
	metrics.ObserveNotification(err)
	if err != nil {
		s.logger.Warn("contact notification failed", zap.String("id", msg.ID), zap.Error(err))
		return msg, nil
	}
	if err := s.store.MarkNotified(ctx, msg.ID); err != nil {
		s.logger.Warn("mark notified failed", zap.String("id", msg.ID), zap.Error(err))
		return msg, nil
	}
	msg.Notified = true
	return msg, nil
}

// Submitter adapts Accept to the form's submission boundary. The stored
// message is handed to onAccept.
func (s *Service) Submitter(ch models.Channel, onAccept func(models.ContactMessage)) contactform.Submitter {
	return contactform.SubmitterFunc(func(ctx context.Context, snap contactform.Snapshot) error {
		msg, err := s.Accept(ctx, snap, ch)
		if err != nil {
			return err
		}
		if onAccept != nil {
			onAccept(msg)
		}
		return nil
	})
}

// Accepted records a stored submission.
func (s *Service) Accepted(ch models.Channel, msg models.ContactMessage) {
	metrics.ObserveSubmission(string(ch), metrics.OutcomeAccepted)
	s.logger.Info("contact message accepted",
		zap.String("id", msg.ID),
		zap.String("channel", string(ch)),
		zap.String("subject", msg.Subject),
		zap.Bool("notified", msg.Notified),
	)
}

// Rejected records a submission that failed the gate.
func (s *Service) Rejected(ch models.Channel, rs contactform.Results) {
	metrics.ObserveSubmission(string(ch), metrics.OutcomeRejected)
	var failed []string
	for _, f := range contactform.Fields {
		if r := rs[f]; !r.OK {
			metrics.ObserveFieldFailure(f.String(), string(r.Reason))
			failed = append(failed, f.String())
		}
	}
	s.logger.Debug("contact message rejected",
		zap.String("channel", string(ch)),
		zap.Strings("fields", failed),
	)
}

// Failed records a submission that passed the gate but could not be
// stored.
func (s *Service) Failed(ch models.Channel, err error) {
	metrics.ObserveSubmission(string(ch), metrics.OutcomeFailed)
	level := zap.ErrorLevel
	if errors.Is(err, context.Canceled) {
		level = zap.WarnLevel
	}
	s.logger.Log(level, "contact message failed", zap.String("channel", string(ch)), zap.Error(err))
}
