package reminder

import (
	"sort"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
)

// Set holds named reminders with independent state.
type Set map[string]State

// DefaultSet returns the built-in hydration and movement reminders, enabled.
func DefaultSet() Set {
	return Set{
		constants.ReminderHydration: {IntervalMinutes: constants.DefaultHydrationIntervalMin, Enabled: true},
		constants.ReminderMovement:  {IntervalMinutes: constants.DefaultMovementIntervalMin, Enabled: true},
	}
}

// Clone returns a copy of s with its own timestamps.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for name, st := range s {
		if st.LastEvent != nil {
			at := *st.LastEvent
			st.LastEvent = &at
		}
		out[name] = st
	}
	return out
}

// Names returns the reminder names in stable order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Due lists the names of reminders due at now.
func (s Set) Due(now time.Time) []string {
	var due []string
	for _, name := range s.Names() {
		if IsDue(s[name], now) {
			due = append(due, name)
		}
	}
	return due
}

// Update applies fn to the named reminder and returns the new set. Unknown names are ignored.
func (s Set) Update(name string, fn func(State) State) Set {
	out := s.Clone()
	st, ok := out[name]
	if !ok {
		return out
	}
	out[name] = fn(st)
	return out
}

// Record marks the named reminder as acted on at now.
func (s Set) Record(name string, now time.Time) Set {
	return s.Update(name, func(st State) State { return RecordEvent(st, now) })
}

// WithInterval changes the interval of the named reminder.
func (s Set) WithInterval(name string, minutes int) Set {
	return s.Update(name, func(st State) State {
		st.IntervalMinutes = minutes
		return st
	})
}

// WithEnabled turns the named reminder on or off.
func (s Set) WithEnabled(name string, enabled bool) Set {
	return s.Update(name, func(st State) State {
		st.Enabled = enabled
		return st
	})
}
