package reminder

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

var base = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)

func at(minutes int) *time.Time {
	t := base.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name  string
		state State
		now   time.Time
		want  bool
	}{
		{"never fired", State{IntervalMinutes: 60, Enabled: true}, base, true},
		{"just fired", State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}, base, false},
		{"before interval", State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}, *at(59), false},
		{"exactly at interval", State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}, *at(60), true},
		{"past interval", State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}, *at(90), true},
		{"zero interval", State{LastEvent: at(0), Enabled: true}, base, true},
		{"negative interval", State{LastEvent: at(0), IntervalMinutes: -5, Enabled: true}, base, true},
		{"disabled", State{IntervalMinutes: 60}, *at(600), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.state, tt.now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordEvent(t *testing.T) {
	s := State{IntervalMinutes: 60, Enabled: true}
	now := *at(30)
	got := RecordEvent(s, now)
	if IsDue(got, now) {
		t.Error("reminder due right after recording an event")
	}
	if s.LastEvent != nil {
		t.Error("input state was modified")
	}
}

func TestLevelAt(t *testing.T) {
	s := State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}
	tests := []struct {
		now  time.Time
		want Level
	}{
		{*at(0), LevelFresh},
		{*at(29), LevelFresh},
		{*at(30), LevelSteady},
		{*at(59), LevelSteady},
		{*at(60), LevelDue},
	}
	for _, tt := range tests {
		if got := LevelAt(s, tt.now); got != tt.want {
			t.Errorf("LevelAt(%s) = %s, want %s", tt.now.Format("15:04"), got, tt.want)
		}
	}
	s.Enabled = false
	if got := LevelAt(s, base); got != LevelOff {
		t.Errorf("disabled level = %s", got)
	}
}

func TestRemaining(t *testing.T) {
	s := State{LastEvent: at(0), IntervalMinutes: 60, Enabled: true}
	if got := Remaining(s, *at(45)); got != 15*time.Minute {
		t.Errorf("Remaining() = %s, want 15m", got)
	}
	if got := Remaining(s, *at(75)); got != 0 {
		t.Errorf("Remaining() when due = %s", got)
	}
}

func TestSet(t *testing.T) {
	s := DefaultSet()
	if want := []string{"hydration", "movement"}; !reflect.DeepEqual(s.Names(), want) {
		t.Fatalf("Names() = %v", s.Names())
	}
	if want := []string{"hydration", "movement"}; !reflect.DeepEqual(s.Due(base), want) {
		t.Errorf("fresh set due = %v", s.Due(base))
	}

	recorded := s.Record("hydration", base)
	if want := []string{"movement"}; !reflect.DeepEqual(recorded.Due(base), want) {
		t.Errorf("due after record = %v", recorded.Due(base))
	}
	if s["hydration"].LastEvent != nil {
		t.Error("input set was modified")
	}

	// movement is due at 50 minutes, hydration at 60
	recorded = recorded.Record("movement", base)
	if want := []string{"movement"}; !reflect.DeepEqual(recorded.Due(*at(50)), want) {
		t.Errorf("due at +50m = %v", recorded.Due(*at(50)))
	}

	off := recorded.WithEnabled("movement", false).WithInterval("hydration", 10)
	if want := []string{"hydration"}; !reflect.DeepEqual(off.Due(*at(10)), want) {
		t.Errorf("due after reconfigure = %v", off.Due(*at(10)))
	}

	if got := s.Record("unknown", base); !reflect.DeepEqual(got, s) {
		t.Error("recording an unknown reminder changed the set")
	}
}

func TestPoller_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	p := NewPoller(5 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, func(time.Time) {
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	if calls.Load() < 3 {
		t.Errorf("tick called %d times, want at least 3", calls.Load())
	}
}

func TestPoller_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewPoller(0).Run(ctx, func(time.Time) { called = true })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("Run() = %v, called = %v", err, called)
	}
}

func TestNewPoller_Default(t *testing.T) {
	if p := NewPoller(0); p.Interval != time.Minute {
		t.Errorf("default interval = %s", p.Interval)
	}
}
