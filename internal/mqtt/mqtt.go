package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/tmpl"
)

const (
	defaultClientID = "dotgrid-assets"
	timeout         = 5 * time.Second
)

// Notice summarises a finished run.
type Notice struct {
	Kind     string // "icons" | "screenshots"
	Count    int
	Dir      string
	Duration time.Duration
}

// Message expands the configured template (or DefaultMQTTMessage) for n.
func Message(cfg config.MQTTConfig, n Notice) string {
	msg := cfg.Message
	if msg == "" {
		msg = config.DefaultMQTTMessage
	}
	return tmpl.Expand(msg, tmpl.Vars{
		Kind:     n.Kind,
		Count:    n.Count,
		Dir:      n.Dir,
		Duration: FormatDuration(n.Duration),
	})
}

// Publish sends the notice for a finished run. It connects, publishes once
// and disconnects; nothing is kept open between runs. An empty broker
// disables publishing and returns nil.
func Publish(cfg config.MQTTConfig, n Notice) error {
	if cfg.Broker == "" {
		return nil
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = defaultClientID
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(cfg.Topic, cfg.QoS, cfg.Retain, Message(cfg, n))
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}

// FormatDuration returns a compact duration string (e.g. "850ms", "3s",
// "2m15s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Second).String()
}
