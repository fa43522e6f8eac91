package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher emits seller-action events over NATS core. It satisfies
// aqm/events.Publisher so the audit layer stays decoupled from the
// transport.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish sends one event to the topic. Delivery is fire-and-forget; a
// cancelled context short-circuits before the connection is touched.
func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(topic, msg)
}

// Close drains buffered publishes before shutting the connection down, so
// events emitted just before shutdown still reach the broker.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
