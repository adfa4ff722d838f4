package metrics

import "github.com/prometheus/client_golang/prometheus"

// Channel labels.
const (
	ChannelForm = "form"
	ChannelAPI  = "api"
)

// Outcome labels for contact submissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by channel and outcome.",
		},
		[]string{"channel", "outcome"},
	)
	fieldFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_field_failures_total",
			Help: "Contact form validation failures by field and reason.",
		},
		[]string{"field", "reason"},
	)
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Staff notification e-mails by result.",
		},
		[]string{"result"},
	)
)

// ObserveSubmission counts one submission attempt.
func ObserveSubmission(channel, outcome string) {
	submissions.WithLabelValues(channel, outcome).Inc()
}

// ObserveFieldFailure counts one field that failed validation.
func ObserveFieldFailure(field, reason string) {
	fieldFailures.WithLabelValues(field, reason).Inc()
}

// ObserveNotification counts a notification send.
func ObserveNotification(err error) {
	result := "sent"
	if err != nil {
		result = "error"
	}
	notifications.WithLabelValues(result).Inc()
}
