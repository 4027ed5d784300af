package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/instance"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/notifier"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/scheduler"
)

type WatchCmd struct {
	Interval time.Duration `help:"Poll interval. Defaults to poll_interval from config.yaml."`
	Once     bool          `help:"Run a single check and exit."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	w := newWatcher(ctx, os.Stdout)
	if c.Once {
		w.check(ctx.Clock())
		return nil
	}

	lock, err := instance.Acquire(filepath.Join(ctx.ConfigDir, constants.WatchLockFileName))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release watch lock", "error", err)
		}
	}()

	interval := c.Interval
	if interval <= 0 {
		interval = ctx.Config.PollInterval
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := reminder.NewPoller(interval)
	poller.Now = ctx.Clock
	fmt.Printf("Watching %s every %s. Press Ctrl+C to stop.\n", ctx.Store.GetConfigPath(), interval)
	logger.Info("Watch started", "interval", interval)

	err = poller.Run(runCtx, w.check)
	if errors.Is(err, context.Canceled) {
		fmt.Println("Stopped watching.")
		return nil
	}
	return err
}

// watcher reports changes of the active block and fires notifications. It
// only reads state; logging a reminder stays with the user.
type watcher struct {
	ctx    *cli.Context
	out    io.Writer
	seeded bool
	active string
	// nagged holds when each reminder last notified, so a due reminder
	// repeats at most once per interval.
	nagged map[string]time.Time
}

func newWatcher(ctx *cli.Context, out io.Writer) *watcher {
	return &watcher{ctx: ctx, out: out, nagged: map[string]time.Time{}}
}

func (w *watcher) check(now time.Time) {
	w.checkBlock(now)
	w.checkReminders(now)
	w.seeded = true
}

func (w *watcher) checkBlock(now time.Time) {
	r, err := w.ctx.CurrentRoutine()
	if err != nil {
		return
	}
	status := scheduler.Resolve(r.Blocks, now)

	id := ""
	if status.Active != nil {
		id = status.Active.ID
	}
	if w.seeded && id == w.active {
		return
	}
	w.active = id

	if status.Active == nil {
		fmt.Fprintf(w.out, "%s  free time\n", now.Format("15:04"))
		return
	}
	fmt.Fprintf(w.out, "%s  ▶ %s (until %s)\n", now.Format("15:04"), status.Active.Activity, scheduler.FormatMinutes(status.Window.End))

	// on the first check only a block starting this very minute rings
	startsNow := models.ClockOf(now).Minutes() == status.Window.Start
	if status.Active.AlarmEnabled && status.Active.Status == models.StatusPending && (w.seeded || startsNow) {
		w.notify(notifier.FormatBlockStart(*status.Active))
	}
}

func (w *watcher) checkReminders(now time.Time) {
	set := w.ctx.State.LoadReminders()
	for _, name := range set.Due(now) {
		gap := time.Duration(set[name].IntervalMinutes) * time.Minute
		if gap < constants.DefaultPollInterval {
			gap = constants.DefaultPollInterval
		}
		if last, ok := w.nagged[name]; ok && now.Sub(last) < gap {
			continue
		}
		w.nagged[name] = now
		fmt.Fprintf(w.out, "%s  %s reminder due\n", now.Format("15:04"), name)
		w.notify(notifier.FormatReminder(name))
	}
}

func (w *watcher) notify(title, message string) {
	if err := w.ctx.Notifier.Notify(title, message); err != nil {
		logger.Warn("Notification failed", "title", title, "error", err)
	}
}
