package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends account lifecycle notifications. Callers dispatch these
// fire-and-forget; a failed send must never fail the triggering request.
type Mailer interface {
	SendWelcome(email, name string) error
	SendCancellation(email, name string) error
}

// SendGridMailer delivers mail through the SendGrid API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGridMailer creates a mailer with the given API key and sender address.
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("Task Manager", from),
	}
}

// SendWelcome greets a freshly registered user.
func (m *SendGridMailer) SendWelcome(email, name string) error {
	body := fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", name)
	return m.send("Welcome!", email, name, body)
}

// SendCancellation follows up on a deleted account.
func (m *SendGridMailer) SendCancellation(email, name string) error {
	body := fmt.Sprintf("Hey %s, it is sad to see you going. Please let us know how we can improve.", name)
	return m.send("Sorry to see you go!", email, name, body)
}

func (m *SendGridMailer) send(subject, email, name, body string) error {
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(name, email), body, "")
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
