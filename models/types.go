// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReminderPayload is the structured representation of a due reminder stored
// with each inbox notification and published on the push channel.
type ReminderPayload struct {
	ReminderID  string  `json:"reminder_id"`
	CarID       string  `json:"car_id"`
	CarName     string  `json:"car_name"`
	ServiceType string  `json:"service_type"`
	DueDate     *string `json:"due_date"`
	DueMileage  *int    `json:"due_mileage"`
	Message     string  `json:"message"`
}

// Value implements driver.Valuer interface for database storage
func (p ReminderPayload) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner interface for database retrieval. The payload
// is replaced as a whole; fields absent from the stored JSON end up zero.
func (p *ReminderPayload) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = ReminderPayload{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ReminderPayload", value)
	}

	var decoded ReminderPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = decoded
	return nil
}

// GormDataType returns the data type for GORM
func (ReminderPayload) GormDataType() string {
	return "json"
}
