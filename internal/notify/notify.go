// Package notify sends the completion notification through a bearer-token
// webhook or a Telegram bot.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRejected is returned when the endpoint answers with a non-2xx status.
var ErrRejected = errors.New("notification rejected")

// Notifier delivers a single text message.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Identity is the fixed text carried by every notification.
type Identity struct {
	Title   string
	Sender  string
	AppURL  string
	DocsURL string
	Closing string
}

// Compose builds the message body stamped with now in local time. Empty
// identity fields are omitted along with their labels.
func Compose(id Identity, now time.Time) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	if id.Title != "" {
		line(id.Title)
	}
	if id.Sender != "" {
		line("From: " + id.Sender)
	}
	line("")
	line("Completed: " + now.Format("2006/01/02 15:04"))
	if id.AppURL != "" {
		line("")
		line("App URL:")
		line(id.AppURL)
	}
	if id.DocsURL != "" {
		line("")
		line("Docs URL:")
		line(id.DocsURL)
	}
	if id.Closing != "" {
		line("")
		line(id.Closing)
	}
	return strings.TrimSpace(b.String())
}

func rejected(status int, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("%w: status %d", ErrRejected, status)
	}
	return fmt.Errorf("%w: status %d: %s", ErrRejected, status, body)
}
