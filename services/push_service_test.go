package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carservice-api/models"
)

type fakeToken struct {
	err      error
	timedOut bool
}

func (t *fakeToken) Wait() bool                     { return !t.timedOut }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timedOut }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes; other client methods are not used.
type fakeClient struct {
	mqtt.Client
	token    *fakeToken
	messages []published
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func TestMQTTPublisher_PublishReminder(t *testing.T) {
	client := &fakeClient{token: &fakeToken{}}
	publisher := NewMQTTPublisherWithClient(client, "carservice")

	due := "2026-10-21"
	payload := models.ReminderPayload{ReminderID: "rem-1", CarID: "car-1", DueDate: &due, Message: "Oil Change due for Toyota Corolla"}

	require.NoError(t, publisher.PublishReminder(context.Background(), "user-1", payload))
	require.Len(t, client.messages, 1)

	msg := client.messages[0]
	assert.Equal(t, "carservice/users/user-1/reminders", msg.topic)
	assert.Equal(t, byte(1), msg.qos)

	var decoded models.ReminderPayload
	require.NoError(t, json.Unmarshal(msg.payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestMQTTPublisher_Errors(t *testing.T) {
	client := &fakeClient{token: &fakeToken{err: errors.New("not connected")}}
	publisher := NewMQTTPublisherWithClient(client, "carservice")

	err := publisher.PublishReminder(context.Background(), "user-1", models.ReminderPayload{ReminderID: "rem-1"})
	assert.ErrorContains(t, err, "not connected")

	client.token = &fakeToken{timedOut: true}
	err = publisher.PublishReminder(context.Background(), "user-1", models.ReminderPayload{ReminderID: "rem-1"})
	assert.ErrorContains(t, err, "timeout")
}
