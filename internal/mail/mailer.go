// Package mail delivers transactional email over SMTP. The orchestrator
// never calls this directly in production; it enqueues a background job and
// the worker drains the queue through here.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender sends plain-text mail through a single SMTP endpoint.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender constructs a sender for host:port.
func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

// Send delivers one message. The context is accepted for interface
// compatibility; net/smtp does not support cancellation mid-dial.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, nil, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
