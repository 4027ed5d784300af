// Package reminder decides when periodic nudges (drink water, stand up) are
// due, based on the last time the user acted on them.
package reminder

import (
	"time"
)

// Level is a coarse reading of how close a reminder is to being due.
type Level string

const (
	LevelFresh  Level = "fresh"
	LevelSteady Level = "steady"
	LevelDue    Level = "due"
	LevelOff    Level = "off"
)

// State is the persisted state of one reminder.
type State struct {
	LastEvent       *time.Time `json:"last_event,omitempty"`
	IntervalMinutes int        `json:"interval_minutes"`
	Enabled         bool       `json:"enabled"`
}

func (s State) interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// IsDue reports whether an enabled reminder should fire at now. A reminder
// that never fired is due, as is any reminder with a non-positive interval.
func IsDue(s State, now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.LastEvent == nil || s.IntervalMinutes <= 0 {
		return true
	}
	return now.Sub(*s.LastEvent) >= s.interval()
}

// RecordEvent returns s with the last event moved to now.
func RecordEvent(s State, now time.Time) State {
	at := now
	s.LastEvent = &at
	return s
}

// Remaining is the time left until s is due, or zero when it already is.
func Remaining(s State, now time.Time) time.Duration {
	if !s.Enabled || IsDue(s, now) {
		return 0
	}
	return s.interval() - now.Sub(*s.LastEvent)
}

// LevelAt classifies s at now. Fresh covers the first half of the interval.
func LevelAt(s State, now time.Time) Level {
	switch {
	case !s.Enabled:
		return LevelOff
	case IsDue(s, now):
		return LevelDue
	case now.Sub(*s.LastEvent) < s.interval()/2:
		return LevelFresh
	default:
		return LevelSteady
	}
}
