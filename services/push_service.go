// File: /services/push_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"carservice-api/config"
	"carservice-api/models"
)

const (
	mqttQoS            byte = 1
	mqttConnectTimeout      = 10 * time.Second
	mqttPublishTimeout      = 5 * time.Second
)

// ReminderPublisher pushes the structured reminder record to a user's devices.
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, userID string, payload models.ReminderPayload) error
}

// MQTTPublisher publishes reminder payloads to
// <prefix>/users/<user_id>/reminders.
type MQTTPublisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTTPublisher connects to the configured broker.
func NewMQTTPublisher(cfg *config.Config) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBrokerURL).
		SetClientID(cfg.MQTTClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connecting to mqtt broker %s: timeout", cfg.MQTTBrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to mqtt broker %s: %w", cfg.MQTTBrokerURL, err)
	}

	log.WithField("broker", cfg.MQTTBrokerURL).Info("Connected to MQTT broker")
	return NewMQTTPublisherWithClient(client, cfg.MQTTTopicPrefix), nil
}

// NewMQTTPublisherWithClient wraps an already connected client.
func NewMQTTPublisherWithClient(client mqtt.Client, topicPrefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topicPrefix: topicPrefix}
}

// ReminderTopic returns the topic a user's reminders are published on.
func (p *MQTTPublisher) ReminderTopic(userID string) string {
	return fmt.Sprintf("%s/users/%s/reminders", p.topicPrefix, userID)
}

func (p *MQTTPublisher) PublishReminder(ctx context.Context, userID string, payload models.ReminderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding reminder payload: %w", err)
	}

	timeout := mqttPublishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	token := p.client.Publish(p.ReminderTopic(userID), mqttQoS, false, body)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publishing reminder %s: timeout", payload.ReminderID)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing reminder %s: %w", payload.ReminderID, err)
	}
	return nil
}

// Close disconnects from the broker, waiting briefly for in-flight messages.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
