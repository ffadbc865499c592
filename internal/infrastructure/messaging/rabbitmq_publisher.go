package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"profile-api.backend/internal/domain/entities"
	"profile-api.backend/pkg/logger"
)

// DefaultExchange receives every profile event when no exchange is configured.
const DefaultExchange = "profile_events"

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection interface {
	Close() error
}

var dialAMQP = func(url string) (amqpConnection, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// RabbitMQPublisher fans profile events out on a durable exchange.
type RabbitMQPublisher struct {
	conn     amqpConnection
	channel  amqpChannel
	exchange string
}

func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, ch, err := dialAMQP(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends the event as JSON. The event type doubles as routing key so
// topic-bound consumers can filter even though the exchange fans out.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event *entities.ProfileEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	timestamp := event.OccurredAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	if err := p.channel.PublishWithContext(ctx,
		p.exchange,
		string(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type),
			Timestamp:    timestamp,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	logger.Debug(ctx, "Profile event published",
		zap.String("type", string(event.Type)),
		zap.Uints("profile_ids", event.ProfileIDs),
	)
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// NoopPublisher drops events. It is used when RABBITMQ_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *entities.ProfileEvent) error { return nil }
