// Package notify delivers workflow notifications by email. The zero-cost
// LogNotifier backs development and tests; SMTPNotifier is the production
// path.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// LogNotifier writes notifications to the structured log instead of
// sending them.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	n.Logger.Info("notification", "recipient", recipient, "subject", subject, "body", body)
	return nil
}

// SMTPNotifier sends plain-text mail through a single relay.
type SMTPNotifier struct {
	Addr string // host:port
	From string
	Auth smtp.Auth // nil for an open relay
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(n.From, recipient, subject, body)
	if err := smtp.SendMail(n.Addr, n.Auth, n.From, []string{recipient}, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", recipient, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@pmt>\r\n", uuid.NewString())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
