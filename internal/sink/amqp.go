package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// AMQP publishes each batch as one JSON message. The connection is opened
// per batch and closed again, so nothing is held between cycles.
type AMQP struct {
	url        string
	exchange   string
	routingKey string
}

// NewAMQP creates a broker sink
func NewAMQP(cfg config.AMQPConfig) *AMQP {
	return &AMQP{url: cfg.URL, exchange: cfg.Exchange, routingKey: cfg.RoutingKey}
}

func (s *AMQP) Name() string {
	return "amqp"
}

func (s *AMQP) Submit(ctx context.Context, batch models.Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return &SubmitError{Sink: s.Name(), Err: fmt.Errorf("encode batch: %w", err)}
	}
	if err := ctx.Err(); err != nil {
		return &SubmitError{Sink: s.Name(), Err: err}
	}

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return &SubmitError{Sink: s.Name(), Err: fmt.Errorf("dial: %w", err)}
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return &SubmitError{Sink: s.Name(), Err: fmt.Errorf("open channel: %w", err)}
	}
	defer ch.Close()

	err = ch.Publish(s.exchange, s.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return &SubmitError{Sink: s.Name(), Err: fmt.Errorf("publish: %w", err)}
	}
	return nil
}
