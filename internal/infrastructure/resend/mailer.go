package resendinfra

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Mailer sends emails through the Resend REST API.
type Mailer struct {
	from   string
	client *resend.Client
}

func NewMailer(apiKey, from string) (*Mailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &Mailer{from: from, client: resend.NewClient(apiKey)}, nil
}

// SendEmail delivers one HTML email. No retry is attempted; the caller
// decides how to surface the failure.
func (m *Mailer) SendEmail(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithOptions(ctx, params, &resend.SendEmailOptions{}); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
