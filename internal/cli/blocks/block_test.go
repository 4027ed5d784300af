package blocks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/models"
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

	ctx := cli.NewContext(store, config.Default(), dir)
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 11, 20, 0, 0, time.Local) }
	return ctx
}

func blocks(t *testing.T, ctx *cli.Context) []models.TimeBlock {
	t.Helper()
	r, err := ctx.CurrentRoutine()
	if err != nil {
		t.Fatal(err)
	}
	return r.Blocks
}

func findByActivity(t *testing.T, ctx *cli.Context, activity string) models.TimeBlock {
	t.Helper()
	for _, b := range blocks(t, ctx) {
		if b.Activity == activity {
			return b
		}
	}
	t.Fatalf("no block %q", activity)
	return models.TimeBlock{}
}

func TestBlockAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &BlockAddCmd{Activity: "Read", At: "10:15", Category: "restorative", Alarm: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	b := findByActivity(t, ctx, "Read")
	if b.Time.String() != "10:15" || b.Category != models.CategoryRestorative || !b.AlarmEnabled {
		t.Errorf("unexpected block %+v", b)
	}
	if b.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}

	bs := blocks(t, ctx)
	for i := 1; i < len(bs); i++ {
		if bs[i].Time.Before(bs[i-1].Time) {
			t.Fatalf("blocks out of order after add: %v", bs)
		}
	}
}

func TestBlockAddCmd_InvalidInput(t *testing.T) {
	ctx := setupTestDB(t)
	tests := []struct {
		name string
		cmd  BlockAddCmd
	}{
		{"bad time", BlockAddCmd{Activity: "X", At: "25:00", Category: "work"}},
		{"bad category", BlockAddCmd{Activity: "X", At: "10:00", Category: "gaming"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(blocks(t, ctx))
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
			if len(blocks(t, ctx)) != before {
				t.Error("routine changed on invalid input")
			}
		})
	}
}

func TestBlockExtraCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&BlockExtraCmd{Activity: "Call the bank"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	b := findByActivity(t, ctx, "Call the bank")
	if b.Time.String() != "11:20" || !b.IsExtra || b.Category != models.CategoryWork {
		t.Errorf("unexpected extra block %+v", b)
	}
}

func TestBlockShiftCmd(t *testing.T) {
	ctx := setupTestDB(t)
	wake := findByActivity(t, ctx, "Wake up and self care")

	tests := []struct {
		by   int
		want string
	}{
		{15, "07:15"},
		{-30, "06:45"},
		{-420, "23:45"},
	}
	for _, tt := range tests {
		if err := (&BlockShiftCmd{ID: wake.ID, By: tt.by}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		got := findByActivity(t, ctx, "Wake up and self care")
		if got.Time.String() != tt.want {
			t.Errorf("shift %d: time = %s, want %s", tt.by, got.Time, tt.want)
		}
	}

	// shifted past every other block, it now sorts last
	bs := blocks(t, ctx)
	if bs[len(bs)-1].ID != wake.ID {
		t.Errorf("wrapped block should sort last, got %s", bs[len(bs)-1].Activity)
	}
}

func TestBlockEditCmd(t *testing.T) {
	ctx := setupTestDB(t)
	focus := findByActivity(t, ctx, "Deep focus")

	cmd := &BlockEditCmd{ID: focus.ID, Activity: "Writing", Category: "personal", At: "06:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}

	got := findByActivity(t, ctx, "Writing")
	if got.ID != focus.ID || got.Category != models.CategoryPersonal || got.Time.String() != "06:00" {
		t.Errorf("unexpected edit result %+v", got)
	}
	if blocks(t, ctx)[0].ID != focus.ID {
		t.Error("edited block should sort first")
	}

	if err := (&BlockEditCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown block")
	}
}

func TestBlockStatusCmds(t *testing.T) {
	ctx := setupTestDB(t)
	wake := findByActivity(t, ctx, "Wake up and self care")
	lunch := findByActivity(t, ctx, "Lunch and rest")

	if err := (&BlockDoneCmd{ID: wake.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&BlockCancelCmd{ID: wake.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := findByActivity(t, ctx, wake.Activity).Status; got != models.StatusCompleted {
		t.Errorf("completed block was moved to %s", got)
	}

	if err := (&BlockCancelCmd{ID: lunch.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := findByActivity(t, ctx, lunch.Activity).Status; got != models.StatusCanceled {
		t.Errorf("lunch status = %s, want canceled", got)
	}

	if err := (&BlockResetCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, b := range blocks(t, ctx) {
		if b.Status != models.StatusPending {
			t.Errorf("%s status = %s after reset", b.Activity, b.Status)
		}
	}
}

func TestBlockAlarmAndDelete(t *testing.T) {
	ctx := setupTestDB(t)
	tidy := findByActivity(t, ctx, "Tidy the room")

	if err := (&BlockAlarmCmd{ID: tidy.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if findByActivity(t, ctx, tidy.Activity).AlarmEnabled == tidy.AlarmEnabled {
		t.Error("alarm not toggled")
	}

	before := len(blocks(t, ctx))
	if err := (&BlockDeleteCmd{ID: tidy.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(blocks(t, ctx)) != before-1 {
		t.Error("block not deleted")
	}
	if err := (&BlockDeleteCmd{ID: tidy.ID}).Run(ctx); err == nil {
		t.Error("deleting twice should report the missing block")
	}
}

func TestBlockListCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&BlockListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
