package reminders

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/reminder"
)

type RemindCmd struct {
	Status   RemindStatusCmd   `cmd:"" help:"Show reminder levels." default:"1"`
	Log      RemindLogCmd      `cmd:"" help:"Record that you drank water or moved."`
	Enable   RemindEnableCmd   `cmd:"" help:"Turn a reminder on."`
	Disable  RemindDisableCmd  `cmd:"" help:"Turn a reminder off."`
	Interval RemindIntervalCmd `cmd:"" help:"Change how often a reminder fires."`
}

// update loads the reminders, applies fn and saves them back.
func update(ctx *cli.Context, name string, fn func(reminder.Set) reminder.Set) (reminder.State, error) {
	set := ctx.State.LoadReminders()
	if _, ok := set[name]; !ok {
		return reminder.State{}, fmt.Errorf("unknown reminder %q (expected one of %v)", name, set.Names())
	}
	set = fn(set)
	if err := ctx.State.SaveReminders(set); err != nil {
		return reminder.State{}, fmt.Errorf("failed to save reminders: %w", err)
	}
	return set[name], nil
}

type RemindStatusCmd struct{}

func (c *RemindStatusCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	set := ctx.State.LoadReminders()
	for _, name := range set.Names() {
		s := set[name]
		last := "never"
		if s.LastEvent != nil {
			last = s.LastEvent.Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("  %-10s %-7s every %dm, last %s", name, reminder.LevelAt(s, now), s.IntervalMinutes, last)
		if s.Enabled && !reminder.IsDue(s, now) {
			line += fmt.Sprintf(", due in %s", cli.FormatDuration(reminder.Remaining(s, now)))
		}
		fmt.Println(line)
	}
	return nil
}

type RemindLogCmd struct {
	Name string `arg:"" help:"Reminder name (hydration or movement)."`
}

func (c *RemindLogCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	s, err := update(ctx, c.Name, func(set reminder.Set) reminder.Set {
		return set.Record(c.Name, now)
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Logged %s at %s. Next reminder in %s.\n", c.Name, now.Format("15:04"), cli.FormatDuration(reminder.Remaining(s, now)))
	return nil
}

type RemindEnableCmd struct {
	Name string `arg:"" help:"Reminder name."`
}

func (c *RemindEnableCmd) Run(ctx *cli.Context) error {
	if _, err := update(ctx, c.Name, func(set reminder.Set) reminder.Set {
		return set.WithEnabled(c.Name, true)
	}); err != nil {
		return err
	}
	fmt.Printf("✓ %s reminder enabled\n", c.Name)
	return nil
}

type RemindDisableCmd struct {
	Name string `arg:"" help:"Reminder name."`
}

func (c *RemindDisableCmd) Run(ctx *cli.Context) error {
	if _, err := update(ctx, c.Name, func(set reminder.Set) reminder.Set {
		return set.WithEnabled(c.Name, false)
	}); err != nil {
		return err
	}
	fmt.Printf("✓ %s reminder disabled\n", c.Name)
	return nil
}

type RemindIntervalCmd struct {
	Name    string `arg:"" help:"Reminder name."`
	Minutes int    `arg:"" help:"Minutes between reminders. Zero fires on every check."`
}

func (c *RemindIntervalCmd) Run(ctx *cli.Context) error {
	if c.Minutes < 0 {
		return fmt.Errorf("interval must not be negative")
	}
	if _, err := update(ctx, c.Name, func(set reminder.Set) reminder.Set {
		return set.WithInterval(c.Name, c.Minutes)
	}); err != nil {
		return err
	}
	fmt.Printf("✓ %s reminder every %d minutes\n", c.Name, c.Minutes)
	return nil
}
