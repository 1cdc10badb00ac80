package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/restaurant-pos/models"
)

const RoutingKeyOrderCreated = "order.created"

// OrderCreatedMessage is the body published for every committed order.
type OrderCreatedMessage struct {
	Event   string          `json:"event"`
	Receipt *models.Receipt `json:"receipt"`
}

// Publisher sends order events to the orders topic exchange.
type Publisher struct {
	conn *Connection
}

func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, receipt *models.Receipt) error {
	publishing, err := orderCreatedPublishing(receipt, time.Now())
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(ctx, OrdersExchange, RoutingKeyOrderCreated, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", receipt.OrderNumber, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

func orderCreatedPublishing(receipt *models.Receipt, now time.Time) (amqp091.Publishing, error) {
	body, err := json.Marshal(OrderCreatedMessage{Event: "order_created", Receipt: receipt})
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    receipt.OrderNumber,
		Timestamp:    now,
		Body:         body,
	}, nil
}
