package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a time string in the standard format (HH:MM).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ClockFromMinutes builds a Clock from minutes since midnight, wrapping on a 24h face.
func ClockFromMinutes(minutes int) Clock {
	m := ((minutes % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
	return Clock{Hour: m / 60, Minute: m % 60}
}

// Minutes returns the number of minutes from midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Add shifts the clock by delta minutes. Overflow carries into the hour and
// wraps past midnight without rolling into another day.
func (c Clock) Add(delta int) Clock {
	return ClockFromMinutes(c.Minutes() + delta)
}

func (c Clock) Before(o Clock) bool {
	return c.Minutes() < o.Minutes()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
