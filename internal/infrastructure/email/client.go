// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"
	"html"

	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendReviewRecordedEmail(rec *review.Review) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	toEmail   string
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service interface.
// Returns nil without error when notifications are not configured.
func NewService(apiKey string) (Service, error) {
	if apiKey == "" || config.ReviewNotifyTo == "" {
		return nil, nil
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		toEmail:   config.ReviewNotifyTo,
		fromEmail: config.ReviewNotifyFrom,
		fromName:  config.ReviewNotifyFromName,
	}, nil
}

// SendReviewRecordedEmail composes and sends the new-review notification email.
func (c *ResendClient) SendReviewRecordedEmail(rec *review.Review) error {
	subject := fmt.Sprintf("New review recorded for %s", rec.ProductName)

	htmlContent := fmt.Sprintf(
		`<h2>New product review</h2>
<p><strong>Product:</strong> %s</p>
<p><strong>Reviewer:</strong> %s</p>
<p><strong>Review:</strong></p>
<blockquote>%s</blockquote>
<p>Recorded at %s.</p>`,
		html.EscapeString(rec.ProductName),
		html.EscapeString(rec.UserName),
		html.EscapeString(rec.ProductReview),
		rec.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send review notification via Resend: %w", err)
	}

	return nil
}
