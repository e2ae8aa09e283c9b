// Package relaylog optionally publishes PTY session lifecycle events
// (start and exit status) to an MQTT topic for centralized
// supervision of many spawned shells. Individual signals sent during
// escalated termination are not published.
// It never publishes raw keystrokes or child output.
package relaylog

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/ptybridge/ptybridge/internal/logging"
	"github.com/ptybridge/ptybridge/pkg/pty"
)

// Config configures the MQTT broker a Publisher connects to.
type Config struct {
	Broker   string
	Topic    string
	ClientID string
}

// Publisher connects to an MQTT broker and publishes session
// lifecycle events as JSON.
type Publisher struct {
	client mqtt.Client
	topic  string
	logger *zap.Logger
}

type sessionEvent struct {
	Event     string `json:"event"`
	Pid       int    `json:"pid"`
	SlavePath string `json:"slave_path,omitempty"`
	Status    string `json:"status,omitempty"`
	Time      string `json:"time"`
}

// Connect establishes the MQTT connection used to publish session
// events, waiting up to 10 seconds for the broker to accept it.
func Connect(cfg Config) (*Publisher, error) {
	logger := logging.With(zap.String("component", "relaylog"))

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("ptybridge-relaylog-%d", time.Now().UnixNano())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("relaylog: connect to %q: timeout", cfg.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("relaylog: connect to %q: %w", cfg.Broker, token.Error())
	}

	logger.Info("connected to relay log broker", zap.String("broker", cfg.Broker), zap.String("topic", cfg.Topic))

	return &Publisher{client: client, topic: cfg.Topic, logger: logger}, nil
}

func (p *Publisher) publish(ev sessionEvent) {
	ev.Time = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("failed to marshal session event", zap.Error(err))
		return
	}
	token := p.client.Publish(p.topic, 1, false, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		p.logger.Warn("failed to publish session event", zap.Error(token.Error()))
	}
}

// PublishStarted announces a newly spawned session.
func (p *Publisher) PublishStarted(pid int, slavePath string) {
	p.publish(sessionEvent{Event: "started", Pid: pid, SlavePath: slavePath})
}

// PublishExited announces a session's terminal status.
func (p *Publisher) PublishExited(pid int, status pty.Status) {
	p.publish(sessionEvent{Event: "exited", Pid: pid, Status: status.String()})
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(1000)
	}
	return nil
}
