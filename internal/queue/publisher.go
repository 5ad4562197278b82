package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends catalog events.  Handlers log publish failures and carry on;
// the database write has already been committed.
type Publisher interface {
	Publish(ctx context.Context, ev CatalogEvent) error
}

// NopPublisher discards every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, CatalogEvent) error { return nil }

// DefaultDialTimeout bounds connecting to the broker and the AMQP handshake.
// Publishing runs in the request path, so an unreachable broker must fail fast.
const DefaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes persistent JSON messages to CatalogQueue through
// the default exchange.  Each call dials its own connection.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: DefaultDialTimeout}
}

func (p *AMQPPublisher) dialTimeout(ctx context.Context) time.Duration {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev CatalogEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout(ctx)),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := declareCatalogQueue(ch); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", CatalogQueue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func declareCatalogQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		CatalogQueue, // name
		true,         // durable
		false,        // autoDelete
		false,        // exclusive
		false,        // noWait
		nil,          // args
	)
	if err != nil {
		return q, fmt.Errorf("queue declare: %w", err)
	}
	return q, nil
}
