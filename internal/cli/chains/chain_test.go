package chains

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/storage/diskv"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	store := diskv.NewStore(filepath.Join(dir, "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	ctx := cli.NewContext(store, config.Default(), dir)
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 21, 0, 0, 0, time.Local) }
	return ctx
}

func TestChainMarkCmd(t *testing.T) {
	ctx := setupTestContext(t)

	steps := []struct {
		date       string
		wantMarked bool
		wantStreak int
	}{
		{"", true, 1},
		{"2024-03-14", true, 2},
		{"2024-03-13", true, 3},
		{"2024-03-14", false, 1},
		{"", false, 0},
	}
	for _, s := range steps {
		if err := (&ChainMarkCmd{Date: s.date}).Run(ctx); err != nil {
			t.Fatalf("mark %q failed: %v", s.date, err)
		}
		key := s.date
		if key == "" {
			key = "2024-03-15"
		}
		c := ctx.State.LoadChain()
		if chain.Has(c, key) != s.wantMarked {
			t.Errorf("after toggling %s marked = %v, want %v", key, !s.wantMarked, s.wantMarked)
		}
		if got := chain.Streak(c, ctx.Clock()); got != s.wantStreak {
			t.Errorf("after toggling %s streak = %d, want %d", key, got, s.wantStreak)
		}
	}
}

func TestChainMarkCmd_InvalidDate(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&ChainMarkCmd{Date: "15/03/2024"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
	if got := ctx.State.LoadChain(); len(got) != 0 {
		t.Errorf("chain changed: %v", got)
	}
}

func TestFormatAlmanac(t *testing.T) {
	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	days := chain.Window(chain.New("2024-03-14", "2024-03-15"), today, 7)

	got := FormatAlmanac(days)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one row plus the range, got %q", got)
	}
	if !strings.HasSuffix(lines[0], " ■ [■]") {
		t.Errorf("row = %q", lines[0])
	}
	if lines[1] != "2024-03-09 … 2024-03-15" {
		t.Errorf("range = %q", lines[1])
	}
	if FormatAlmanac(nil) != "" {
		t.Error("empty window should render nothing")
	}
}

func TestChainShowCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&ChainShowCmd{}).Run(ctx); err != nil {
		t.Error(err)
	}
	if err := (&ChainShowCmd{Days: 7}).Run(ctx); err != nil {
		t.Error(err)
	}
}
