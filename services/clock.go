// File: /services/clock.go
package services

import "time"

// Clock supplies the current time to the reminder pipeline.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
