package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends call summary emails through the Gmail API
type GmailMailer struct {
	gmailService *gmail.Service
	sender       string
	agencyName   string
	logger       logger.Logger
}

// NewGmailMailer creates a new Gmail mailer. The sender is the Gmail
// user id, "me" for the authenticated account.
func NewGmailMailer(ctx context.Context, tokenSource oauth2.TokenSource, sender, agencyName string, logger logger.Logger) (repository.SummaryMailer, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailMailer{
		gmailService: service,
		sender:       sender,
		agencyName:   agencyName,
		logger:       logger,
	}, nil
}

// SendCallSummary renders and sends the summary email for a finished call
func (m *GmailMailer) SendCallSummary(ctx context.Context, toEmail string, summary *entity.CallSummary) error {
	subject := templates.SummaryEmailSubject(m.agencyName, summary)
	textBody := templates.SummaryEmailText(m.agencyName, summary)
	htmlBody := templates.SummaryEmailHTML(m.agencyName, summary)

	raw := buildMultipartMessage(m.agencyName, toEmail, subject, textBody, htmlBody)

	msg := &gmail.Message{
		Raw: base64.RawURLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := m.gmailService.Users.Messages.Send(m.sender, msg).Context(ctx).Do()
	if err != nil {
		m.logger.Error("Failed to send summary email",
			"to", toEmail,
			"callId", summary.CallID,
			"error", err)
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	m.logger.Info("Summary email sent",
		"to", toEmail,
		"callId", summary.CallID,
		"subject", subject)
	return nil
}

// buildMultipartMessage assembles an RFC 822 message with text and HTML
// alternatives
func buildMultipartMessage(fromName, to, subject, textBody, htmlBody string) string {
	boundary := "tripvoice-summary-boundary"

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", fromName))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return b.String()
}
