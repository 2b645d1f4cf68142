package app

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"taxidash/internal/config"
)

// NewRabbitMQConnection dials the trip ingestion broker.
func NewRabbitMQConnection(cfg config.RabbitMQConfig) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	return conn, nil
}
