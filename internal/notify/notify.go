// Package notify publishes an optional MQTT side channel announcing
// discovery changes (a MediaServer appearing or disappearing). It is
// not part of the database contract; a host that does not care about
// discovery events simply never constructs a Notifier.
package notify

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/nsavage/upnpdb/internal/adapters/mqttserver"
)

// Event is one discovery change, published as JSON.
type Event struct {
	Server    string    `json:"server"`
	Kind      string    `json:"kind"` // "appeared" or "disappeared"
	Timestamp time.Time `json:"timestamp"`
}

const (
	KindAppeared    = "appeared"
	KindDisappeared = "disappeared"
)

// Notifier publishes discovery Events to one MQTT topic.
type Notifier struct {
	client *mqttserver.Client
	topic  string
	log    *zap.Logger
}

// Config configures a Notifier's broker connection.
type Config struct {
	Broker   string
	ClientID string
	Topic    string
	Logger   *zap.Logger
}

// New connects to the configured broker. Returns (nil, nil) when
// Broker is empty; Publish on a nil Notifier is a safe no-op.
func New(cfg Config) (*Notifier, error) {
	if cfg.Broker == "" {
		return nil, nil
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	client, err := mqttserver.NewClient(mqttserver.Options{
		BrokerURL: cfg.Broker,
		ClientID:  cfg.ClientID,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "upnpdb/discovery"
	}
	return &Notifier{client: client, topic: topic, log: log}, nil
}

// Publish announces one discovery change. A nil Notifier is safe to
// call Publish on and does nothing.
func (n *Notifier) Publish(event Event) {
	if n == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Debug("notify marshal failed", zap.Error(err))
		return
	}
	if err := n.client.Publish(n.topic, 0, false, payload); err != nil {
		n.log.Debug("notify publish failed", zap.Error(err))
	}
}
