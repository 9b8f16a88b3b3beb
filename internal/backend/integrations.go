package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kakei/internal/amqp"
	"kakei/internal/config"
	"kakei/internal/events"
	"kakei/internal/kafka"
	"kakei/internal/notify"
	ports "kakei/internal/sheets"
	gsheet "kakei/internal/sheets/google"
	sheetsmem "kakei/internal/sheets/memory"
	"kakei/internal/sheets/webapp"
)

// NewExporter returns the configured sync destination, or nil when sync is
// not configured.
func NewExporter(ctx context.Context, cfg *config.Config) (ports.Exporter, error) {
	if !cfg.SyncEnabled() {
		return nil, nil
	}
	switch cfg.SyncTarget {
	case "sheets":
		c, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets exporter: %w", err)
		}
		return c, nil
	case "memory":
		return sheetsmem.New(), nil
	default:
		c, err := webapp.New(cfg.SyncURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize web app exporter: %w", err)
		}
		return c, nil
	}
}

// NewNotifier returns the configured notification channel, or nil when no
// token is set.
func NewNotifier(cfg *config.Config) (notify.Notifier, error) {
	if !cfg.NotifyEnabled() {
		return nil, nil
	}
	if cfg.NotifyChannel == "telegram" {
		tg, err := notify.NewTelegram(cfg.NotifyToken, cfg.TelegramChatID, "", nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
		return tg, nil
	}
	w, err := notify.NewWebhook(cfg.NotifyURL, cfg.NotifyToken, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webhook notifier: %w", err)
	}
	return w, nil
}

// Identity builds the fixed notification text from config.
func Identity(cfg *config.Config) notify.Identity {
	return notify.Identity{
		Title:   cfg.NotifyTitle,
		Sender:  cfg.NotifySender,
		AppURL:  cfg.AppURL,
		DocsURL: cfg.DocsURL,
		Closing: cfg.NotifyClosing,
	}
}

// NewPublisher connects every configured broker. A broker that cannot be
// reached is logged and skipped; events are best effort. The result is nil
// when no broker is available.
func NewPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.Publisher, CleanupFunc) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		fanout  events.Fanout
		closers []func() error
	)

	if cfg.AMQPURL != "" {
		c, err := amqp.NewClient(ctx, amqp.Config{
			URL:          cfg.AMQPURL,
			ExchangeName: cfg.AMQPExchange,
			QueueName:    cfg.AMQPQueue,
		})
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without it", "error", err)
		} else {
			logger.Info("Initialized AMQP publisher", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			fanout = append(fanout, c)
			closers = append(closers, c.Close)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Warn("Failed to initialize Kafka producer, continuing without it", "error", err)
		} else {
			logger.Info("Initialized Kafka publisher", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
			fanout = append(fanout, p)
			closers = append(closers, p.Close)
		}
	}

	cleanup := func() error {
		var errs []error
		for _, c := range closers {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("close publishers: %v", errs)
		}
		return nil
	}

	if len(fanout) == 0 {
		return nil, cleanup
	}
	return fanout, cleanup
}
