package notify

import (
	log "github.com/sirupsen/logrus"
)

// Notifier delivers a notification email to a single recipient.
// Fire-and-forget: callers do not wait on or retry delivery.
type Notifier interface {
	Notify(subject, recipientEmail, body string)
}

// ConsoleNotifier is the console email backend: it prints the message
// instead of sending it. Swap in an SMTP-backed Notifier for real mail.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(subject, recipientEmail, body string) {
	log.WithFields(log.Fields{
		"to":      recipientEmail,
		"subject": subject,
	}).Info("email notification")
	log.Info(body)
}

// Default is the process-wide notifier. Tests replace it to capture
// emitted notifications.
var Default Notifier = ConsoleNotifier{}

// Send delivers through the current default notifier
func Send(subject, recipientEmail, body string) {
	Default.Notify(subject, recipientEmail, body)
}
