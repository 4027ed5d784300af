package cli

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/scheduler"
)

type NowCmd struct{}

func (c *NowCmd) Run(ctx *Context) error {
	r, err := ctx.CurrentRoutine()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	status := scheduler.Resolve(r.Blocks, now)
	clock := now.Format("15:04")

	if status.Active == nil {
		fmt.Printf("Now (%s): Free time\n", clock)
	} else {
		fmt.Printf("Now (%s): %s\n\n", clock, r.Name)
		fmt.Println(FormatWindow(status.Window, true, false))
		fmt.Printf("\n%s left\n", FormatDuration(status.UntilNext))
	}
	if status.Next != nil {
		fmt.Printf("Next: %s %s\n", status.Next.Time, status.Next.Activity)
	}

	reminders := ctx.State.LoadReminders()
	for _, name := range reminders.Names() {
		s := reminders[name]
		fmt.Printf("%-10s %s\n", name+":", reminder.LevelAt(s, now))
	}

	fmt.Printf("Streak: %d days\n", chain.Streak(ctx.State.LoadChain(), now))
	return nil
}
