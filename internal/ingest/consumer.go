package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"taxidash/internal/domain"
)

// Importer stores validated trips.
type Importer interface {
	ImportRecords(ctx context.Context, trips []domain.TripRecord) (*domain.ImportResult, error)
}

// ConsumerConfig configures the queue consumer.
type ConsumerConfig struct {
	Queue       string
	ConsumerTag string
	Prefetch    int
	Location    *time.Location

	// RetryDelay is waited before requeueing a message the importer was
	// too busy to take.
	RetryDelay time.Duration
}

// DefaultRetryDelay is used when ConsumerConfig.RetryDelay is unset.
const DefaultRetryDelay = 5 * time.Second

// Consumer reads trip payloads from a RabbitMQ queue and imports them.
type Consumer struct {
	conn     *amqp.Connection
	cfg      ConsumerConfig
	importer Importer
	logger   *zap.Logger
}

// NewConsumer creates a new Consumer.
func NewConsumer(conn *amqp.Connection, cfg ConsumerConfig, importer Importer, logger *zap.Logger) *Consumer {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{conn: conn, cfg: cfg, importer: importer, logger: logger}
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq: connection is not ready")
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer ch.Close()

	if c.cfg.Prefetch > 0 {
		if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("rabbitmq: set QoS (prefetch=%d): %w", c.cfg.Prefetch, err)
		}
	}

	if _, err := ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq: declare %s: %w", c.cfg.Queue, err)
	}

	deliveries, err := ch.Consume(
		c.cfg.Queue,
		c.cfg.ConsumerTag,
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume(%s): %w", c.cfg.Queue, err)
	}

	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	c.logger.Info("trip consumer started", zap.String("queue", c.cfg.Queue))

	for {
		select {
		case <-ctx.Done():
			if c.cfg.ConsumerTag != "" {
				_ = ch.Cancel(c.cfg.ConsumerTag, false)
			}
			return nil

		case cerr := <-chClosed:
			if cerr != nil {
				return fmt.Errorf("rabbitmq: channel closed while consuming %s: %w", c.cfg.Queue, cerr)
			}
			return nil

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			outcome := c.Handle(ctx, d.Body)
			if outcome == OutcomeRetry {
				c.backoff(ctx)
			}
			c.settle(d, outcome)
		}
	}
}

// Outcome tells the broker what to do with a delivery.
type Outcome int

const (
	OutcomeAck     Outcome = iota // processed
	OutcomeDrop                   // malformed, never retry
	OutcomeRequeue                // storage failed, retry later
	OutcomeRetry                  // importer busy, requeue after RetryDelay
)

// Handle decodes and imports one message body.
func (c *Consumer) Handle(ctx context.Context, body []byte) Outcome {
	payloads, err := DecodePayloads(body)
	if err != nil {
		c.logger.Warn("dropping malformed trip message", zap.Error(err))
		return OutcomeDrop
	}

	trips, errs := ConvertPayloads(payloads, c.cfg.Location)
	for _, e := range errs {
		c.logger.Warn("skipping invalid trip record", zap.Error(e))
	}
	if len(trips) == 0 {
		return OutcomeDrop
	}

	result, err := c.importer.ImportRecords(ctx, trips)
	if errors.Is(err, ErrImportBusy) {
		c.logger.Info("importer busy, delaying message", zap.Duration("retry_delay", c.cfg.RetryDelay))
		return OutcomeRetry
	}
	if err != nil {
		c.logger.Error("trip import failed", zap.Error(err), zap.Int("records", len(trips)))
		return OutcomeRequeue
	}

	c.logger.Info("trips imported from queue",
		zap.String("batch_id", result.BatchID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped+len(errs)),
	)
	return OutcomeAck
}

// backoff waits RetryDelay or until ctx is done.
func (c *Consumer) backoff(ctx context.Context) {
	timer := time.NewTimer(c.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (c *Consumer) settle(d amqp.Delivery, outcome Outcome) {
	var err error
	switch outcome {
	case OutcomeAck:
		err = d.Ack(false)
	case OutcomeDrop:
		err = d.Nack(false, false)
	case OutcomeRequeue, OutcomeRetry:
		err = d.Nack(false, true)
	}
	if err != nil {
		c.logger.Error("failed to settle delivery", zap.Error(err), zap.Uint64("delivery_tag", d.DeliveryTag))
	}
}
