// File: /services/reminder_message.go
package services

import (
	"fmt"

	"carservice-api/models"
)

const (
	payloadDateLayout = "2006-01-02"
	messageDateLayout = "Jan 02, 2006"
)

// ReminderMessage is the rendered content of a due-service notification.
type ReminderMessage struct {
	Subject    string
	Greeting   string
	Lines      []string
	ActionText string
	ActionURL  string
	Closing    string
	Payload    models.ReminderPayload
}

// NewReminderMessage renders the email content and the structured inbox record
// for a reminder. The reminder must have its car and service type loaded.
func NewReminderMessage(reminder *models.Reminder, owner *models.User, actionURL string) ReminderMessage {
	carName := ""
	if reminder.Car != nil {
		carName = reminder.Car.DisplayName()
	}
	serviceName := "Service"
	if reminder.ServiceType != nil {
		serviceName = reminder.ServiceType.Name
	}

	lines := []string{fmt.Sprintf("Your %s is due for %s.", carName, serviceName)}
	if reminder.DueDate != nil {
		lines = append(lines, fmt.Sprintf("Due date: %s", reminder.DueDate.Format(messageDateLayout)))
	}
	if reminder.DueMileage != nil && *reminder.DueMileage > 0 {
		lines = append(lines, fmt.Sprintf("Due mileage: %d km", *reminder.DueMileage))
	}

	payload := models.ReminderPayload{
		ReminderID:  reminder.ID,
		CarID:       reminder.CarID,
		CarName:     carName,
		ServiceType: serviceName,
		DueMileage:  reminder.DueMileage,
		Message:     fmt.Sprintf("%s due for %s", serviceName, carName),
	}
	if reminder.DueDate != nil {
		due := reminder.DueDate.Format(payloadDateLayout)
		payload.DueDate = &due
	}

	return ReminderMessage{
		Subject:    fmt.Sprintf("Service Reminder: %s for %s", serviceName, carName),
		Greeting:   fmt.Sprintf("Hello %s!", owner.Name),
		Lines:      lines,
		ActionText: "View Details",
		ActionURL:  actionURL,
		Closing:    "Keep your car in top shape!",
		Payload:    payload,
	}
}
