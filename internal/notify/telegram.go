package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "kakei/internal/log"
)

var _ Notifier = (*Telegram)(nil)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends the message to a single chat through a bot.
type Telegram struct {
	bot    sender
	chatID int64
}

// NewTelegram authenticates the bot (getMe) before returning. An empty
// endpoint selects the public Bot API.
func NewTelegram(token string, chatID int64, endpoint string, httpClient *http.Client) (*Telegram, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("missing notification token")
	}
	if chatID == 0 {
		return nil, errors.New("missing telegram chat id")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	applog.ForComponent(ctx, applog.ComponentNotify).InfoContext(ctx, "Notification delivered", "channel", "telegram", "chat_id", t.chatID)
	return nil
}
