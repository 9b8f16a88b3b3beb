package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestTelegramNotify(t *testing.T) {
	f := &fakeSender{}
	tg := &Telegram{bot: f, chatID: 42}
	if err := tg.Notify(context.Background(), "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(f.sent) != 1 || f.sent[0].ChatID != 42 || f.sent[0].Text != "hello" {
		t.Errorf("unexpected sends: %+v", f.sent)
	}
}

func TestTelegramSendError(t *testing.T) {
	tg := &Telegram{bot: &fakeSender{err: errors.New("forbidden")}, chatID: 1}
	if err := tg.Notify(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewTelegramValidation(t *testing.T) {
	if _, err := NewTelegram("", 1, "", nil); err == nil {
		t.Error("expected error without token")
	}
	if _, err := NewTelegram("tok", 0, "", nil); err == nil {
		t.Error("expected error without chat id")
	}
}

func TestTelegramAgainstFakeAPI(t *testing.T) {
	var sentText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"kakei","username":"kakei_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			sentText = r.Form.Get("text")
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":9,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tg, err := NewTelegram("123:abc", 42, srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := tg.Notify(context.Background(), "completed"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sentText != "completed" {
		t.Errorf("sent text = %q", sentText)
	}
}
