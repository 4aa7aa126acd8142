// Package rabbitmq publishes and consumes storefront events on a topic
// exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Routing keys used by the storefront.
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeySupportUpdated = "support.updated"
)

// DefaultExchange is used when Config.Exchange is empty.
const DefaultExchange = "petstore"

// ErrClosed is returned when using a client after Close.
var ErrClosed = errors.New("rabbitmq client is closed")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger

	// amqp channels are not safe for concurrent publishing.
	mu     sync.Mutex
	closed bool
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
}

// NewClient connects to RabbitMQ and declares the topic exchange.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Info("rabbitmq client connected", zap.String("exchange", cfg.Exchange))

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

// Publish sends a persistent JSON message. An empty exchange selects the
// client's own exchange.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if exchange == "" {
		exchange = c.exchange
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	err := c.channel.Publish(
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("published event", zap.String("exchange", exchange), zap.String("routing_key", routingKey))
	return nil
}

// Handler processes the body of one delivery. A returned error rejects the
// message without requeueing it.
type Handler func(body []byte) error

// queueOptions returns the durable, auto-delete and exclusive flags for a
// queue. A named queue is durable and shared by every consumer; an unnamed one
// is server-named and private to this connection.
func queueOptions(name string) (durable, autoDelete, exclusive bool) {
	if name == "" {
		return false, true, true
	}
	return true, false, false
}

// Consume binds queue to routingKey on the client's exchange and hands every
// delivery to handler until ctx is done or the channel closes. An empty queue
// name declares a server-named queue that only this client reads, so every
// instance receives its own copy of each message.
func (c *Client) Consume(ctx context.Context, queue, routingKey string, handler Handler) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	durable, autoDelete, exclusive := queueOptions(queue)
	q, err := c.channel.QueueDeclare(
		queue,      // name
		durable,    // durable
		autoDelete, // delete when unused
		exclusive,  // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := c.channel.QueueBind(q.Name, routingKey, c.exchange, false, nil); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
	}

	consumerTag := q.Name + "-consumer"
	msgs, err := c.channel.Consume(
		q.Name,      // queue
		consumerTag, // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("waiting for events", zap.String("queue", q.Name), zap.String("routing_key", routingKey))

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.closed {
			if err := c.channel.Cancel(consumerTag, false); err != nil {
				c.logger.Warn("failed to cancel consumer", zap.String("queue", q.Name), zap.Error(err))
			}
		}
	}()

	go func() {
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				c.logger.Warn("failed to process message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.logger.Error("failed to nack message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("failed to ack message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(ackErr))
			}
		}
		c.logger.Info("consumer stopped", zap.String("queue", q.Name))
	}()

	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
