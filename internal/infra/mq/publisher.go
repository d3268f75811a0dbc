package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("publisher closed")

// Publisher sends JSON events to a durable topic exchange. A channel is not
// safe for concurrent publishing, so Publish is serialized. When the broker
// drops the channel or connection, the next Publish redials.
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	source   string
	dial     func(url string) (*amqp.Connection, error)

	conn   *amqp.Connection
	ch     *amqp.Channel
	closes chan *amqp.Error
	closed bool
}

func NewPublisher(url, exchange, source string) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		source:   source,
		dial:     amqp.Dial,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.ch = ch
	// a connection close also closes its channels
	p.closes = ch.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

// ensure returns with a live channel, redialing if the last one was closed.
func (p *Publisher) ensure() error {
	if p.closed {
		return ErrPublisherClosed
	}
	if p.ch != nil {
		select {
		case <-p.closes:
			p.drop()
		default:
			return nil
		}
	}
	return p.connect()
}

func (p *Publisher) drop() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn, p.closes = nil, nil, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensure(); err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		AppId:        p.source,
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
		Body:         body,
	})
	if errors.Is(err, amqp.ErrClosed) {
		p.drop()
	}
	return err
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		err = p.conn.Close()
	}
	p.ch, p.conn, p.closes = nil, nil, nil
	return err
}
