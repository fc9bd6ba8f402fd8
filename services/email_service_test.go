package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"carservice-api/config"
)

type capturedMail struct {
	from string
	to   []string
	body string
}

func captureSender(out *[]capturedMail, err error) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if _, werr := msg.WriteTo(&buf); werr != nil {
			return werr
		}
		*out = append(*out, capturedMail{from: from, to: to, body: buf.String()})
		return nil
	}
}

func testMailConfig() *config.Config {
	cfg := config.Default()
	cfg.FromEmail = "noreply@carservice.test"
	cfg.FromName = "CarService"
	cfg.FrontendURL = "https://app.example.com"
	return cfg
}

func TestEmailService_SendReminderEmail(t *testing.T) {
	var sent []capturedMail
	es := NewEmailServiceWithSender(testMailConfig(), captureSender(&sent, nil))

	msg := ReminderMessage{
		Subject:    "Service Reminder: Oil Change for Toyota Corolla",
		Greeting:   "Hello Sam!",
		Lines:      []string{"Your Toyota Corolla is due for Oil Change.", "Due mileage: 50000 km"},
		ActionText: "View Details",
		ActionURL:  "https://app.example.com",
		Closing:    "Keep your car in top shape!",
	}

	require.NoError(t, es.SendReminderEmail(context.Background(), "sam@example.com", msg))
	require.Len(t, sent, 1)

	assert.Equal(t, "noreply@carservice.test", sent[0].from)
	assert.Equal(t, []string{"sam@example.com"}, sent[0].to)
	assert.Contains(t, sent[0].body, "Subject: Service Reminder: Oil Change for Toyota Corolla")
	assert.Contains(t, sent[0].body, "Due mileage: 50000 km")
	assert.Contains(t, sent[0].body, "text/html")
	assert.Contains(t, sent[0].body, "Keep your car in top shape!")
}

func TestEmailService_SendFailures(t *testing.T) {
	var sent []capturedMail
	es := NewEmailServiceWithSender(testMailConfig(), captureSender(&sent, errors.New("connection refused")))

	err := es.SendReminderEmail(context.Background(), "sam@example.com", ReminderMessage{Subject: "x"})
	assert.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, es.SendWelcomeEmail(ctx, "sam@example.com", "Sam"), context.Canceled)
	assert.Empty(t, sent)
}

func TestEmailService_SendWelcomeEmail(t *testing.T) {
	var sent []capturedMail
	es := NewEmailServiceWithSender(testMailConfig(), captureSender(&sent, nil))

	require.NoError(t, es.SendWelcomeEmail(context.Background(), "new@example.com", "Robin"))
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].body, "Hello Robin!")
	assert.Contains(t, sent[0].body, "https://app.example.com")
}
