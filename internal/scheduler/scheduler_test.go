package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/daychain/internal/models"
)

func block(id, at string) models.TimeBlock {
	return models.TimeBlock{
		ID:       id,
		Time:     models.MustClock(at),
		Activity: id,
		Category: models.CategoryWork,
		Status:   models.StatusPending,
	}
}

func TestResolveActive(t *testing.T) {
	blocks := []models.TimeBlock{
		block("wake", "08:00"),
		block("focus", "08:30"),
		block("lunch", "13:00"),
	}

	tests := []struct {
		name string
		now  string
		want string // empty means no active block
	}{
		{name: "before first block", now: "06:00", want: ""},
		{name: "exactly at first start", now: "08:00", want: "wake"},
		{name: "inside first block", now: "08:29", want: "wake"},
		{name: "successor start is exclusive end", now: "08:30", want: "focus"},
		{name: "middle of long block", now: "09:00", want: "focus"},
		{name: "last block default duration", now: "13:59", want: "lunch"},
		{name: "after last block end", now: "14:00", want: ""},
		{name: "late evening", now: "23:00", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveActive(blocks, models.MustClock(tt.now))
			if tt.want == "" {
				if got != nil {
					t.Errorf("ResolveActive at %s = %s, want none", tt.now, got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("ResolveActive at %s = none, want %s", tt.now, tt.want)
			}
			if got.ID != tt.want {
				t.Errorf("ResolveActive at %s = %s, want %s", tt.now, got.ID, tt.want)
			}
		})
	}
}

func TestResolveActive_UnsortedInput(t *testing.T) {
	blocks := []models.TimeBlock{
		block("lunch", "13:00"),
		block("wake", "08:00"),
		block("focus", "08:30"),
	}

	got := ResolveActive(blocks, models.MustClock("09:00"))
	if got == nil || got.ID != "focus" {
		t.Fatalf("expected focus block, got %v", got)
	}

	// The caller's slice must not be reordered.
	if blocks[0].ID != "lunch" {
		t.Errorf("input was mutated: first block is %s", blocks[0].ID)
	}
}

func TestResolveActive_Empty(t *testing.T) {
	if got := ResolveActive(nil, models.MustClock("12:00")); got != nil {
		t.Errorf("expected none for empty routine, got %s", got.ID)
	}
}

func TestResolveActive_NearMidnight(t *testing.T) {
	blocks := []models.TimeBlock{block("late", "23:30")}

	if got := ResolveActive(blocks, models.MustClock("23:59")); got == nil {
		t.Error("expected late block to be active at 23:59")
	}
	// The implicit end does not span midnight.
	if got := ResolveActive(blocks, models.MustClock("00:15")); got != nil {
		t.Errorf("expected none after midnight, got %s", got.ID)
	}
}

func TestResolveActive_Ties(t *testing.T) {
	blocks := []models.TimeBlock{
		block("first", "08:00"),
		block("second", "08:00"),
		block("third", "09:00"),
	}

	got := ResolveActive(blocks, models.MustClock("08:10"))
	if got == nil || got.ID != "second" {
		t.Fatalf("expected the later tied block to own the interval, got %v", got)
	}
}

func TestResolve_Countdown(t *testing.T) {
	blocks := []models.TimeBlock{
		block("wake", "08:00"),
		block("focus", "08:30"),
	}
	day := func(h, m, s int) time.Time {
		return time.Date(2026, 3, 2, h, m, s, 0, time.Local)
	}

	tests := []struct {
		name       string
		now        time.Time
		wantActive string
		wantNext   string
		wantUntil  time.Duration
	}{
		{name: "before day", now: day(7, 0, 0), wantNext: "wake", wantUntil: time.Hour},
		{name: "in first block", now: day(8, 10, 30), wantActive: "wake", wantNext: "focus", wantUntil: 19*time.Minute + 30*time.Second},
		{name: "in last block", now: day(9, 0, 0), wantActive: "focus", wantUntil: 30 * time.Minute},
		{name: "after day", now: day(10, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Resolve(blocks, tt.now)

			gotActive := ""
			if status.Active != nil {
				gotActive = status.Active.ID
			}
			gotNext := ""
			if status.Next != nil {
				gotNext = status.Next.ID
			}

			if gotActive != tt.wantActive {
				t.Errorf("active = %q, want %q", gotActive, tt.wantActive)
			}
			if gotNext != tt.wantNext {
				t.Errorf("next = %q, want %q", gotNext, tt.wantNext)
			}
			if status.UntilNext != tt.wantUntil {
				t.Errorf("until next = %v, want %v", status.UntilNext, tt.wantUntil)
			}
			if gotActive == "" && status.Index != -1 {
				t.Errorf("index = %d, want -1 when nothing is active", status.Index)
			}
		})
	}
}

func TestWindows_ClampsToEndOfDay(t *testing.T) {
	windows := Windows([]models.TimeBlock{block("late", "23:30")})
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].End != 24*60 {
		t.Errorf("expected end clamped to 1440, got %d", windows[0].End)
	}
	if FormatMinutes(windows[0].End) != "24:00" {
		t.Errorf("expected 24:00, got %s", FormatMinutes(windows[0].End))
	}
}

func TestIsSorted(t *testing.T) {
	if !IsSorted([]models.TimeBlock{block("a", "08:00"), block("b", "08:00"), block("c", "09:00")}) {
		t.Error("expected non-decreasing sequence to be sorted")
	}
	if IsSorted([]models.TimeBlock{block("a", "09:00"), block("b", "08:00")}) {
		t.Error("expected decreasing sequence to be unsorted")
	}
}
