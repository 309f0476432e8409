package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes account activity to a Kafka topic, keyed by
// account number so events of one account stay ordered.
type KafkaPublisher struct {
	writer KafkaWriter
}

// NewKafkaPublisher creates a publisher over writer.
func NewKafkaPublisher(writer KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// NewKafkaWriter builds a kafka-go writer for the given brokers and topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// Publish writes event as a JSON message.
func (p *KafkaPublisher) Publish(ctx context.Context, event models.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal activity event for Kafka", "event_id", event.EventID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.AccountNumber),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish activity event to Kafka", "event_id", event.EventID, "error", err)
		return err
	}
	logger.Log.Infow("activity event published to Kafka", "event_id", event.EventID, "account", event.AccountNumber)
	return nil
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// AMQPChannel is the subset of *amqp.Channel the publisher uses.
type AMQPChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes account activity to a durable RabbitMQ queue.
type AMQPPublisher struct {
	channel AMQPChannel
	queue   string
	closers []func() error
}

// NewAMQPPublisher declares queue on channel and returns a publisher for it.
func NewAMQPPublisher(channel AMQPChannel, queue string) (*AMQPPublisher, error) {
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Log.Errorw("failed to declare AMQP queue", "queue", queue, "error", err)
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}
	return &AMQPPublisher{channel: channel, queue: queue, closers: []func() error{channel.Close}}, nil
}

// DialAMQP connects to rawURL and returns a publisher owning the connection.
func DialAMQP(rawURL, queue string) (*AMQPPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}
	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	p, err := NewAMQPPublisher(ch, queue)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.closers = append(p.closers, conn.Close)
	return p, nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// Publish sends event to the queue as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event models.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal activity event for AMQP", "event_id", event.EventID, "error", err)
		return err
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Body:         data,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish activity event to AMQP", "event_id", event.EventID, "queue", p.queue, "error", err)
		return err
	}
	logger.Log.Infow("activity event published to AMQP", "event_id", event.EventID, "queue", p.queue)
	return nil
}

// Close closes the channel and, when dialed by DialAMQP, the connection.
func (p *AMQPPublisher) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Publisher is a single activity sink.
type Publisher interface {
	Publish(ctx context.Context, event models.ActivityEvent) error
}

// FanoutPublisher delivers an event to every sink. A failing sink does not
// stop delivery to the others.
type FanoutPublisher []Publisher

// Publish returns the joined errors of all failed sinks.
func (f FanoutPublisher) Publish(ctx context.Context, event models.ActivityEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
