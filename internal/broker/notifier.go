package broker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// PublishFunc is the callback signature handed to the API for emitting
// downstream events. A nil PublishFunc disables publishing.
type PublishFunc func(subject string, data []byte) error

// Subjects emitted for downstream generation engines.
const (
	SubjectPlanStored  = "character.plan.stored"
	SubjectEngineReady = "character.engine.ready"
)

// Notifier is a publish-only NATS connection. The worker consumes no
// streams; it only announces itself and emits plan/engine events.
type Notifier struct {
	nc *nats.Conn
}

func Connect(natsURL string) (*Notifier, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Notifier{nc: nc}, nil
}

// Publish sends a message to NATS.
func (n *Notifier) Publish(subject string, data []byte) error {
	return n.nc.Publish(subject, data)
}

// AnnounceReady publishes the worker's registration event.
func (n *Notifier) AnnounceReady(port int) {
	payload, _ := json.Marshal(map[string]any{
		"event_type": "agent.registered",
		"source":     "character-worker",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"metadata":   map[string]any{"port": port},
	})
	if err := n.nc.Publish("character.worker.registered", payload); err != nil {
		slog.Warn("failed to publish registration event", "error", err)
	}
}

// Close drains and closes the NATS connection.
func (n *Notifier) Close() {
	n.nc.Drain()
}
