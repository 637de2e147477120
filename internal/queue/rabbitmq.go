package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// EventsExchange is the topic exchange every notification is published to.
// The notification topic is used as the routing key.
const EventsExchange = "registration.events"

type RabbitMQ struct {
	url     string
	conn    *amqp091.Connection
	channel *amqp091.Channel
	closed  bool
	mu      sync.Mutex
}

// NewRabbitMQ creates a new RabbitMQ connection and declares the events exchange
func NewRabbitMQ(url string, retries int) (*RabbitMQ, error) {
	var conn *amqp091.Connection
	var channel *amqp091.Channel
	var err error

	retries = max(retries, 1)
	for i := 0; i < retries; i++ {
		conn, channel, err = dial(url)
		if err == nil {
			break
		}
		if i < retries-1 {
			log.Warn().Err(err).Msgf("failed to connect to RabbitMQ, retrying in 2s (%d/%d)", i+1, retries)
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to connect to RabbitMQ after retries")
		return nil, err
	}

	log.Info().Str("exchange", EventsExchange).Msg("connected to RabbitMQ and declared events exchange")

	return &RabbitMQ{
		url:     url,
		conn:    conn,
		channel: channel,
	}, nil
}

// dial connects, opens a channel and declares the events exchange.
func dial(url string) (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return conn, channel, nil
}

// ensureChannel redials once when the broker dropped the connection or
// channel. Callers must hold r.mu.
func (r *RabbitMQ) ensureChannel() error {
	if r.closed {
		return errors.New("rabbitmq transport is closed")
	}
	if r.conn != nil && !r.conn.IsClosed() && r.channel != nil && !r.channel.IsClosed() {
		return nil
	}

	log.Warn().Msg("RabbitMQ connection lost, reconnecting")
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
	r.conn, r.channel = nil, nil

	conn, channel, err := dial(r.url)
	if err != nil {
		return err
	}
	r.conn, r.channel = conn, channel
	log.Info().Msg("reconnected to RabbitMQ")
	return nil
}

// Send publishes body to the events exchange with topic as routing key.
func (r *RabbitMQ) Send(ctx context.Context, topic string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureChannel(); err != nil {
		return err
	}

	err := r.channel.PublishWithContext(
		ctx,
		EventsExchange, // exchange
		topic,          // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Type:         topic,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debug().Str("topic", topic).Msg("published message to exchange")
	return nil
}

// Subscribe declares a durable queue named "<topic>.<group>" bound to topic
// and returns its deliveries. Deliveries must be acknowledged.
func (r *RabbitMQ) Subscribe(ctx context.Context, topic, group string) (<-chan Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureChannel(); err != nil {
		return nil, err
	}

	name := topic + "." + group
	q, err := r.channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := r.channel.QueueBind(q.Name, topic, EventsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := r.channel.ConsumeWithContext(
		ctx,
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack (we will manual ack)
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		for d := range deliveries {
			select {
			case out <- newDeliveryMessage(topic, d):
			case <-ctx.Done():
				d.Nack(false, true)
				return
			}
		}
	}()

	return out, nil
}

func newDeliveryMessage(topic string, d amqp091.Delivery) Message {
	return Message{
		Topic:  topic,
		Body:   d.Body,
		ack:    func() error { return d.Ack(false) },
		reject: func() error { return d.Reject(false) },
	}
}

// Ping checks if the RabbitMQ connection and channel are open
func (r *RabbitMQ) Ping(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}
	if r.channel == nil || r.channel.IsClosed() {
		return fmt.Errorf("channel is closed")
	}
	return nil
}

// Close closes the RabbitMQ connection and channel
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close channel")
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close connection")
			return err
		}
	}
	log.Info().Msg("closed RabbitMQ connection")
	return nil
}
