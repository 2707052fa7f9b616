package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

// StatusExchange is the fanout exchange every status change is published to.
const StatusExchange = "pedidos.status"

// Notifier delivers status change events to interested consumers.
type Notifier interface {
	Publish(ctx context.Context, change model.StatusChange) error
}

// Connection is the subset of an AMQP connection the notifier needs.
type Connection interface {
	Channel() (Channel, error)
	Close() error
	IsClosed() bool
}

// Channel is the subset of an AMQP channel the notifier needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection struct {
	conn   *amqp.Connection
	mu     sync.RWMutex
	closed bool
}

type amqpChannel struct {
	ch *amqp.Channel
}

// Dial connects to the broker at url.
func Dial(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect broker: %w", err)
	}
	return &amqpConnection{conn: conn}, nil
}

func (c *amqpConnection) Channel() (Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &amqpChannel{ch: ch}, nil
}

func (c *amqpConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}

func (c *amqpConnection) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed || c.conn.IsClosed()
}

func (ch *amqpChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return ch.ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

func (ch *amqpChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return ch.ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

func (ch *amqpChannel) Close() error {
	return ch.ch.Close()
}

// AMQPNotifier publishes status changes to a fanout exchange. A channel is
// opened per publish so a broken channel never poisons later deliveries.
type AMQPNotifier struct {
	conn   Connection
	logger *slog.Logger
}

// NewAMQPNotifier creates a notifier on top of an established connection.
func NewAMQPNotifier(conn Connection, logger *slog.Logger) *AMQPNotifier {
	return &AMQPNotifier{conn: conn, logger: logger}
}

func (n *AMQPNotifier) Publish(ctx context.Context, change model.StatusChange) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(StatusExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	err = ch.PublishWithContext(ctx, StatusExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish change: %w", err)
	}

	n.logger.Debug("status change published",
		slog.String("order", change.Number),
		slog.String("status", string(change.Status)),
	)
	return nil
}

// LogNotifier writes status changes to the log. It backs deployments without
// a broker configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, change model.StatusChange) error {
	n.logger.Info("status change",
		slog.Int64("order_id", change.OrderID),
		slog.String("order", change.Number),
		slog.String("status", string(change.Status)),
		slog.String("actor", change.Actor),
	)
	return nil
}
