// ABOUTME: Sends the summary as a plain text mail through the Gmail API
// ABOUTME: Messages are RFC 2822 text, base64url encoded for users/me send
package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DefaultSubject is the subject of summary mails
const DefaultSubject = "Document summary"

// ErrNoRecipient means no recipient address is configured
var ErrNoRecipient = errors.New("no recipient email configured")

// MailSender sends a raw Gmail message
type MailSender interface {
	Send(ctx context.Context, msg *gmail.Message) (*gmail.Message, error)
}

type gmailSender struct {
	svc *gmail.Service
}

// NewMailSender builds a Gmail API client using ts
func NewMailSender(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (MailSender, error) {
	svc, err := gmail.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &gmailSender{svc: svc}, nil
}

func (g *gmailSender) Send(ctx context.Context, msg *gmail.Message) (*gmail.Message, error) {
	return g.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
}

// BuildMessage encodes a plain text mail
func BuildMessage(to, subject, body string) *gmail.Message {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(b.String()))}
}

// SendSummary mails summary to recipient
func SendSummary(ctx context.Context, mail MailSender, recipient, summary string) error {
	if recipient == "" {
		return ErrNoRecipient
	}
	if _, err := mail.Send(ctx, BuildMessage(recipient, DefaultSubject, summary)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
