package chain

import (
	"reflect"
	"testing"
	"time"
)

var today = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)

func daysAgo(n int) string {
	return Key(today.AddDate(0, 0, -n))
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		chain Chain
		want  int
	}{
		{"empty", nil, 0},
		{"yesterday and day before", New(daysAgo(1), daysAgo(2)), 2},
		{"with today", New(daysAgo(0), daysAgo(1), daysAgo(2)), 3},
		{"today and yesterday", New(daysAgo(0), daysAgo(1)), 2},
		{"today only", New(daysAgo(0)), 1},
		{"gap stops count", New(daysAgo(1), daysAgo(3), daysAgo(4)), 1},
		{"two days ago only", New(daysAgo(2)), 0},
		{"future dates ignored", New(daysAgo(-1)), 0},
		{"malformed", Chain{"not-a-date", "2024-13-45"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.chain, today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreak_LookbackBound(t *testing.T) {
	var dates []string
	for i := 0; i < 60; i++ {
		dates = append(dates, daysAgo(i))
	}
	if got := Streak(New(dates...), today); got != 30 {
		t.Errorf("Streak() = %d, want 30", got)
	}

	// without today the window still covers 29 earlier days
	if got := Streak(New(dates[1:]...), today); got != 29 {
		t.Errorf("Streak() without today = %d, want 29", got)
	}
}

func TestToggle(t *testing.T) {
	c := New("2024-03-10", "2024-03-12")

	added := Toggle(c, "2024-03-11")
	if want := (Chain{"2024-03-10", "2024-03-11", "2024-03-12"}); !reflect.DeepEqual(added, want) {
		t.Errorf("Toggle add = %v, want %v", added, want)
	}
	if len(c) != 2 {
		t.Error("input chain was modified")
	}

	removed := Toggle(added, "2024-03-11")
	if !reflect.DeepEqual(removed, c) {
		t.Errorf("toggling twice = %v, want %v", removed, c)
	}

	if got := Toggle(nil, "2024-03-11"); !reflect.DeepEqual(got, Chain{"2024-03-11"}) {
		t.Errorf("Toggle on empty = %v", got)
	}
}

func TestNew(t *testing.T) {
	got := New("2024-03-12", "bogus", "2024-03-10", "2024-03-12")
	want := Chain{"2024-03-10", "2024-03-12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("New() = %v, want %v", got, want)
	}
}

func TestWindow(t *testing.T) {
	c := New(daysAgo(0), daysAgo(2), daysAgo(30))
	days := Window(c, today, 21)
	if len(days) != 21 {
		t.Fatalf("got %d days, want 21", len(days))
	}
	last := days[len(days)-1]
	if !last.IsToday || !last.Marked || last.Date != daysAgo(0) {
		t.Errorf("last day = %+v", last)
	}
	if days[0].Date != daysAgo(20) {
		t.Errorf("first day = %s, want %s", days[0].Date, daysAgo(20))
	}
	if !days[18].Marked || days[19].Marked {
		t.Errorf("unexpected marks: %+v %+v", days[18], days[19])
	}

	if got := len(Window(c, today, 0)); got != 21 {
		t.Errorf("default window = %d days", got)
	}
}
