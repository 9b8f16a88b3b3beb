package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/rabbitmq/amqp091-go"

	"kakei/internal/events"
	applog "kakei/internal/log"
)

// Config describes the broker topology. Routing keys are the event kinds.
type Config struct {
	URL          string
	ExchangeName string
	QueueName    string
	// DialAttempts bounds connection attempts at startup; 0 means 5.
	DialAttempts uint
	DialDelay    time.Duration
}

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

var _ events.Publisher = (*Client)(nil)

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.DialAttempts == 0 {
		cfg.DialAttempts = 5
	}
	if cfg.DialDelay == 0 {
		cfg.DialDelay = time.Second
	}

	var conn *amqp091.Connection
	err := retry.Do(
		func() error {
			c, err := amqp091.Dial(cfg.URL)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.DialAttempts),
		retry.Delay(cfg.DialDelay),
		retry.OnRetry(func(n uint, err error) {
			applog.ForComponent(ctx, applog.ComponentEvents).WarnContext(ctx, "AMQP dial failed, retrying", "attempt", n+1, applog.FieldError, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: cfg.ExchangeName,
		queueName:    cfg.QueueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	// Declare exchange
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if c.queueName == "" {
		return nil
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Every record.* event lands in the queue
	err = c.channel.QueueBind(
		c.queueName,    // queue name
		"record.*",     // binding key
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish sends e to the exchange with its kind as routing key.
func (c *Client) Publish(ctx context.Context, e events.Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		string(e.Kind), // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	applog.ForComponent(ctx, applog.ComponentEvents).DebugContext(ctx, "Published record event",
		"kind", e.Kind,
		"id", e.ID,
		"exchange", c.exchangeName)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
