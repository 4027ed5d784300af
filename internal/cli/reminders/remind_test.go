package reminders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Reminders.Hydration.Interval = 45
	ctx := cli.NewContext(store, cfg, dir)
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local) }
	return ctx
}

func TestRemindLogCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&RemindLogCmd{Name: constants.ReminderHydration}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	s := ctx.State.LoadReminders()[constants.ReminderHydration]
	if s.LastEvent == nil || !s.LastEvent.Equal(ctx.Clock()) {
		t.Fatalf("last event = %v", s.LastEvent)
	}
	if s.IntervalMinutes != 45 {
		t.Errorf("interval = %d, want the configured 45", s.IntervalMinutes)
	}
	if reminder.IsDue(s, ctx.Clock().Add(44*time.Minute)) {
		t.Error("due too early")
	}
	if !reminder.IsDue(s, ctx.Clock().Add(45*time.Minute)) {
		t.Error("should be due once the interval has passed")
	}

	if err := (&RemindLogCmd{Name: "coffee"}).Run(ctx); err == nil {
		t.Error("expected error for unknown reminder")
	}
}

func TestRemindSettings(t *testing.T) {
	ctx := setupTestDB(t)
	name := constants.ReminderMovement

	if err := (&RemindDisableCmd{Name: name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if reminder.IsDue(ctx.State.LoadReminders()[name], ctx.Clock()) {
		t.Error("disabled reminder is never due")
	}

	if err := (&RemindEnableCmd{Name: name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&RemindIntervalCmd{Name: name, Minutes: 20}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	s := ctx.State.LoadReminders()[name]
	if !s.Enabled || s.IntervalMinutes != 20 {
		t.Errorf("unexpected state %+v", s)
	}

	tests := []struct {
		name string
		cmd  RemindIntervalCmd
	}{
		{"negative", RemindIntervalCmd{Name: name, Minutes: -5}},
		{"unknown", RemindIntervalCmd{Name: "coffee", Minutes: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}

	if err := (&RemindStatusCmd{}).Run(ctx); err != nil {
		t.Error(err)
	}
}
