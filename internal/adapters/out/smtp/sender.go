// Package smtp delivers transactional email over a plain SMTP relay.
package smtp

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// Config holds relay connection settings.
// Username and Password are optional; without them the sender connects
// unauthenticated, which is how local relays and mail catchers work.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Sender implements ports.EmailSender over net/smtp.
// Each Send opens a fresh connection; transactional volume here is one
// message per status transition, so pooling buys nothing.
type Sender struct {
	config Config
}

// NewSender creates an SMTP sender for the given relay.
func NewSender(config Config) (*Sender, error) {
	if config.Host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if config.Port == "" {
		return nil, errs.NewValueIsRequiredError("port")
	}
	if config.From == "" {
		return nil, errs.NewValueIsRequiredError("from")
	}

	return &Sender{config: config}, nil
}

// Send delivers one email. The message goes out as multipart/alternative
// with the text part first, so clients fall back to plain text.
func (s *Sender) Send(ctx context.Context, email ports.Email) error {
	if email.To == "" {
		return errs.NewValueIsRequiredError("to")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.composeMessage(email)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	if err = smtp.SendMail(addr, auth, s.config.From, []string{email.To}, body); err != nil {
		return errs.NewDispatchError(email.To, err)
	}

	return nil
}

func (s *Sender) composeMessage(email ports.Email) ([]byte, error) {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", s.config.From)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	buf.WriteString("\r\n")

	text, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err = text.Write([]byte(email.Text)); err != nil {
		return nil, err
	}

	html, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err = html.Write([]byte(email.HTML)); err != nil {
		return nil, err
	}

	if err = writer.Close(); err != nil {
		return nil, err
	}

	return []byte(buf.String()), nil
}
