package ports

import "context"

// Email is a rendered transactional message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers transactional email. Implementations report failure as
// an error; callers treat delivery failure as advisory and never roll back the
// state transition that triggered the send.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
