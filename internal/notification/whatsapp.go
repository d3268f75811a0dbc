package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppChannel sends the confirmation through Twilio's WhatsApp API to
// the customer's E.164 number.
type WhatsAppChannel struct {
	api  messageCreator
	from string
}

func NewWhatsApp(accountSID, authToken, from string) *WhatsAppChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &WhatsAppChannel{api: client.Api, from: from}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Send(ctx context.Context, m Message) error {
	if m.Mobile == "" {
		return fmt.Errorf("whatsapp: booking %d has no mobile number", m.BookingID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + c.from)
	params.SetTo("whatsapp:" + m.Mobile)
	params.SetBody(WhatsAppText(m))

	if _, err := c.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}
