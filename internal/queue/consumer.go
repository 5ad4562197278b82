package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/sakila-admin/internal/logging"
)

// StartCatalogConsumer connects to the broker, declares CatalogQueue and
// appends each delivered event to logPath.  It reconnects with exponential
// backoff (capped at 30s) and returns only when ctx is cancelled.  A message
// that cannot be handled is rejected without requeue so a bad payload cannot
// loop forever.
func StartCatalogConsumer(ctx context.Context, url, logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir audit log dir: %w", err)
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logging.Warn().Err(err).Dur("retry_in", backoff).Msg("catalog-consumer: dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Msg("catalog-consumer: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logging.Warn().Err(err).Msg("catalog-consumer: set QoS failed")
	}
	if _, err := declareCatalogQueue(ch); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, CatalogQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := appendToFile(logPath, d.Body); err != nil {
			logging.Error().Err(err).Msg("catalog-consumer: handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func appendToFile(path string, body []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	return handleMessage(body, f)
}

// handleMessage decodes one delivery and writes its audit line to w.
func handleMessage(body []byte, w io.Writer) error {
	var ev CatalogEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Entity == "" || ev.Action == "" {
		return errors.New("event without entity or action")
	}
	if _, err := io.WriteString(w, ev.AuditLine()); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}
