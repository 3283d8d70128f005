package models

import "time"

// ReminderState tracks the escalation ladder position for one task.
//
// Level only climbs within a day (bounded by the ladder length); SentToday
// is zeroed at the daily boundary, Level is not.
type ReminderState struct {
	Level     int        `json:"level"`
	SentToday int        `json:"sentToday"`
	NextAt    *time.Time `json:"nextAt,omitempty"`
}
