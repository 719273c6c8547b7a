package device

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"ascotgo/internal/common/logging"
	"ascotgo/internal/route"
)

// EventPublisherConfig configures the optional MQTT hazard-event
// telemetry sink described in SPEC_FULL.md §4.6. It is a one-way,
// fire-and-forget publisher, unrelated to the excluded MQTT event-bus
// RPC subsystem.
type EventPublisherConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	ClientID  string `yaml:"clientId"`
	TimeoutMs uint   `yaml:"timeoutMs"`
}

// EventPublisher publishes a best-effort record of every invoked route
// that declares at least one hazard, to
// ascotgo/<device kind>/<main route>/<route path>, at QoS 0.
type EventPublisher struct {
	client  mqtt.Client
	timeout time.Duration
}

type hazardEvent struct {
	Route   string   `json:"route"`
	Hazards []string `json:"hazards"`
	Error   bool     `json:"error"`
}

// NewEventPublisher connects to the configured broker. A nil
// EventPublisher is valid and Publish on it is a no-op, so devices
// without telemetry configured can hold one unconditionally.
func NewEventPublisher(cfg EventPublisherConfig) (*EventPublisher, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if cfg.Port == 0 {
		cfg.Port = 1883
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = 2000
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "ascotgo-events"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	client := mqtt.NewClient(opts)

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	token := client.Connect()
	if err := mqtt.WaitTokenTimeout(token, timeout); err != nil {
		return nil, fmt.Errorf("device: connecting event publisher: %w", err)
	}

	return &EventPublisher{client: client, timeout: timeout}, nil
}

// Publish reports that cfg's route was invoked, and whether the
// invocation resulted in an error. Failures to publish are logged, not
// returned, since telemetry is never allowed to affect request handling.
func (p *EventPublisher) Publish(kind Kind, mainRoute string, cfg route.Config, failed bool) {
	if p == nil {
		return
	}

	names := make([]string, 0, len(cfg.Data.Hazards))
	for _, h := range cfg.Data.Hazards {
		names = append(names, h.Name())
	}
	if len(names) == 0 {
		return
	}

	payload, err := json.Marshal(hazardEvent{Route: cfg.Data.Path, Hazards: names, Error: failed})
	if err != nil {
		logging.Log(logging.Error, "event publisher: failed to marshal hazard event: %v", err)
		return
	}

	topic := fmt.Sprintf("ascotgo/%s/%s%s", kind.String(), mainRoute, cfg.Data.Path)
	token := p.client.Publish(topic, 0, false, payload)
	if err := mqtt.WaitTokenTimeout(token, p.timeout); err != nil {
		logging.Log(logging.Error, "event publisher: failed to publish to %s: %v", topic, err)
	}
}

// Close disconnects the underlying MQTT client.
func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
