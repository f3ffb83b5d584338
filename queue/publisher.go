package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationQueue is the broker queue downstream delivery workers consume.
const NotificationQueue = "notification_events"

// Publisher pushes notification events onto a RabbitMQ queue. Delivery is
// best effort: the durable inbox row in postgres is the source of truth, the
// queue only feeds push-style delivery channels.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect dials the broker and declares nothing; queues are declared lazily
// on first publish.
func Connect(uri string) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish marshals payload and enqueues it. A nil Publisher silently drops
// the event, so callers don't have to care whether a broker is configured.
func (p *Publisher) Publish(queueName string, payload interface{}) error {
	if p == nil {
		return nil
	}

	_, err := p.ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"", // default exchange
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Close tears down the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
