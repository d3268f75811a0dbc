package notification

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

type telegramSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error)
}

// TelegramChannel alerts the clinic's operator chat about new bookings.
type TelegramChannel struct {
	bot    telegramSender
	chatID int64
}

func NewTelegram(token string, chatID int64) (*TelegramChannel, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramChannel{bot: b, chatID: chatID}, nil
}

func (c *TelegramChannel) Name() string { return "telegram_operator" }

func (c *TelegramChannel) Send(ctx context.Context, m Message) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: c.chatID,
		Text:   OperatorText(m),
	})
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
