// Package reminder decides when the next study reminder fires and what it
// should say. Delivery is left to the caller.
package reminder

import (
	"time"
)

// NextTrigger returns the next instant at the reminder time on or after now,
// interpreted in now's location. If today's slot has passed it is the same
// wall-clock time on the next calendar day. A nil result means reminders
// are disabled.
func NextTrigger(s Settings, now time.Time) (*time.Time, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.Enabled {
		return nil, nil
	}

	y, m, d := now.Date()
	at := time.Date(y, m, d, s.ReminderTime.Hour, s.ReminderTime.Minute, 0, 0, now.Location())
	if at.Before(now) {
		at = time.Date(y, m, d+1, s.ReminderTime.Hour, s.ReminderTime.Minute, 0, 0, now.Location())
	}
	return &at, nil
}
