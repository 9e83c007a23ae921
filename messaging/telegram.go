package messaging

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramClient sends replies through the Bot API.
type TelegramClient struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error initializing telegram bot: %v", err)
	}
	return &TelegramClient{bot: bot}, nil
}

func (c *TelegramClient) Send(chatID, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %v", chatID, err)
	}
	_, err = c.bot.Send(tgbotapi.NewMessage(id, text))
	return err
}
