// Package models holds the site's persisted domain types.
package models

import (
	"time"

	"github.com/TAPAN-2835/Business-Website/contactform"
)

// Channel records how a message reached the site.
type Channel string

const (
	ChannelForm Channel = "form" // server-rendered contact page
	ChannelAPI  Channel = "api"  // JSON endpoint
)

// ContactMessage is one accepted contact-form submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Channel   Channel   `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
	Notified  bool      `json:"notified"`
}

// NewContactMessage builds a message from a snapshot that passed the gate.
func NewContactMessage(id string, snap contactform.Snapshot, ch Channel) ContactMessage {
	return ContactMessage{
		ID:        id,
		Name:      snap.Name,
		Email:     snap.Email,
		Phone:     snap.Phone,
		Subject:   snap.Subject,
		Message:   snap.Message,
		Channel:   ch,
		CreatedAt: snap.Timestamp,
	}
}
