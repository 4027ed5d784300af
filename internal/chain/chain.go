// Package chain tracks the set of days a routine was kept and derives the
// running streak from it.
package chain

import (
	"sort"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
)

// Chain is a sorted, duplicate-free set of calendar dates (YYYY-MM-DD).
type Chain []string

// Day is one cell of the almanac view.
type Day struct {
	Date    string
	Marked  bool
	IsToday bool
}

// Key formats t as a chain date in local time.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// New builds a chain from arbitrary dates, dropping malformed entries and duplicates.
func New(dates ...string) Chain {
	seen := make(map[string]struct{}, len(dates))
	out := make(Chain, 0, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(constants.DateFormat, d); err != nil {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Has reports whether date is marked.
func Has(c Chain, date string) bool {
	i := sort.SearchStrings(c, date)
	return i < len(c) && c[i] == date
}

// Toggle adds date if absent and removes it if present.
func Toggle(c Chain, date string) Chain {
	out := make(Chain, 0, len(c)+1)
	i := sort.SearchStrings(c, date)
	if i < len(c) && c[i] == date {
		out = append(out, c[:i]...)
		return append(out, c[i+1:]...)
	}
	out = append(out, c[:i]...)
	out = append(out, date)
	return append(out, c[i:]...)
}

// Streak counts consecutive marked days ending today or yesterday. An unmarked
// today does not break the streak since the day is not over. The walk looks
// back at most StreakLookbackDays days, today included.
func Streak(c Chain, today time.Time) int {
	if len(c) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(c))
	for _, d := range c {
		set[d] = struct{}{}
	}

	streak := 0
	for i := 0; i < constants.StreakLookbackDays; i++ {
		_, ok := set[Key(today.AddDate(0, 0, -i))]
		if ok {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

// Window returns the last days days ending today, oldest first.
func Window(c Chain, today time.Time, days int) []Day {
	if days <= 0 {
		days = constants.AlmanacDays
	}
	todayKey := Key(today)
	out := make([]Day, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := Key(today.AddDate(0, 0, -i))
		out = append(out, Day{
			Date:    key,
			Marked:  Has(c, key),
			IsToday: key == todayKey,
		})
	}
	return out
}
