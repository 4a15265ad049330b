package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends outbox jobs to a durable RabbitMQ queue. The connection is
// opened on first use and dropped after any channel error so the next publish
// redials.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{
		url:   cfg.URL,
		queue: cfg.Queue,
	}
}

func (p *Publisher) Publish(ctx context.Context, job shared.NotificationJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		buildPublishing(job, time.Now().UTC()),
	)
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "publish %s", job.Topic)
	}
	return nil
}

func buildPublishing(job shared.NotificationJob, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID.String(),
		Type:         job.Topic,
		Timestamp:    now,
		Headers: amqp.Table{
			"kind": job.Kind,
		},
		Body: job.Payload,
	}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errs.Wrap(err, "dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "declare queue %s", p.queue)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	slog.Info("closing broker connection", "queue", p.queue)
	p.reset()
	return nil
}
