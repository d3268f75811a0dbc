package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailChannel struct {
	name   string
	sender emailSender
	from   string
	to     func(Message) []string
	render func(Message) (string, string, error)
}

func NewResendClient(apiKey string) *resend.Client {
	return resend.NewClient(apiKey)
}

// NewCustomerEmail mails the confirmation to the address on the booking.
func NewCustomerEmail(client *resend.Client, from string) *EmailChannel {
	return newEmailChannel("email_customer", client.Emails, from,
		func(m Message) []string { return []string{m.Email} },
		CustomerEmail,
	)
}

// NewOperatorEmail mails every booking to the clinic's operator address.
func NewOperatorEmail(client *resend.Client, from, operator string) *EmailChannel {
	return newEmailChannel("email_operator", client.Emails, from,
		func(Message) []string { return []string{operator} },
		OperatorEmail,
	)
}

func newEmailChannel(
	name string,
	sender emailSender,
	from string,
	to func(Message) []string,
	render func(Message) (string, string, error),
) *EmailChannel {
	return &EmailChannel{name: name, sender: sender, from: from, to: to, render: render}
}

func (c *EmailChannel) Name() string { return c.name }

func (c *EmailChannel) Send(ctx context.Context, m Message) error {
	subject, html, err := c.render(m)
	if err != nil {
		return err
	}

	_, err = c.sender.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      c.to(m),
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
