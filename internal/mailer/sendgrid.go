// Package mailer delivers registration emails through SendGrid.
package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const registrationSubject = "Successfully signed up"

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender implements notification.Sender.
type SendGridSender struct {
	client sendClient
	from   *mail.Email
}

// NewSendGridSender creates a sender using the given API key and from address.
func NewSendGridSender(apiKey, fromAddress, fromName string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// SendRegistrationEmail sends the welcome message to a new user.
func (s *SendGridSender) SendRegistrationEmail(ctx context.Context, email, username string) error {
	response, err := s.client.SendWithContext(ctx, registrationMessage(s.from, email, username))
	if err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	// SendGrid answers 202 Accepted on success.
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected registration email: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func registrationMessage(from *mail.Email, email, username string) *mail.SGMailV3 {
	to := mail.NewEmail(username, email)
	plain := fmt.Sprintf("Hi %s! You have successfully signed up to the Stores REST API.", username)
	htmlContent := fmt.Sprintf("<p>Hi <strong>%s</strong>!</p><p>You have successfully signed up to the Stores REST API.</p>",
		html.EscapeString(username))
	return mail.NewSingleEmail(from, registrationSubject, to, plain, htmlContent)
}
