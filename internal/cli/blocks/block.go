package blocks

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/routine"
)

type BlockCmd struct {
	List   BlockListCmd   `cmd:"" help:"List the blocks of the routine in use." default:"1"`
	Add    BlockAddCmd    `cmd:"" help:"Add a block."`
	Extra  BlockExtraCmd  `cmd:"" help:"Insert an ad-hoc task at the current time."`
	Edit   BlockEditCmd   `cmd:"" help:"Edit a block."`
	Shift  BlockShiftCmd  `cmd:"" help:"Move a block earlier or later."`
	Delete BlockDeleteCmd `cmd:"" help:"Delete a block."`
	Done   BlockDoneCmd   `cmd:"" help:"Mark a block completed."`
	Cancel BlockCancelCmd `cmd:"" help:"Mark a block canceled."`
	Alarm  BlockAlarmCmd  `cmd:"" help:"Toggle the start alarm of a block."`
	Reset  BlockResetCmd  `cmd:"" help:"Set every block back to pending."`
}

type BlockListCmd struct {
	ShowIDs bool `help:"Show block IDs." name:"show-ids"`
}

func (c *BlockListCmd) Run(ctx *cli.Context) error {
	r, err := ctx.CurrentRoutine()
	if err != nil {
		return err
	}
	cli.PrintRoutine(r, ctx.Clock(), c.ShowIDs)
	return nil
}

type BlockAddCmd struct {
	Activity string `arg:"" help:"What to do."`
	At       string `help:"Start time (HH:MM)." short:"t" default:"09:00"`
	Category string `help:"work, restorative, personal, break or chore." short:"c" default:"personal"`
	Alarm    bool   `help:"Notify when the block starts."`
}

func (c *BlockAddCmd) Run(ctx *cli.Context) error {
	at, err := models.ParseClock(c.At)
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	var added models.TimeBlock
	_, err = ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		out := routine.AddBlock(r, routine.BlockFields{
			Time:         &at,
			Activity:     c.Activity,
			Category:     category,
			AlarmEnabled: c.Alarm,
		})
		added = newBlock(r, out)
		return out
	})
	if err != nil {
		return fmt.Errorf("failed to add block: %w", err)
	}

	fmt.Printf("Added block: %s %s (ID: %s)\n", added.Time, added.Activity, cli.ShortID(added.ID))
	return nil
}

type BlockExtraCmd struct {
	Activity string `arg:"" help:"What came up."`
}

func (c *BlockExtraCmd) Run(ctx *cli.Context) error {
	now := models.ClockOf(ctx.Clock())
	var added models.TimeBlock
	_, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		out := routine.AddExtraBlock(r, c.Activity, now)
		added = newBlock(r, out)
		return out
	})
	if err != nil {
		return fmt.Errorf("failed to add extra task: %w", err)
	}

	fmt.Printf("Added extra task at %s: %s (ID: %s)\n", added.Time, added.Activity, cli.ShortID(added.ID))
	return nil
}

// newBlock returns the block present in after but not in before.
func newBlock(before, after models.Routine) models.TimeBlock {
	for _, b := range after.Blocks {
		if _, ok := before.Block(b.ID); !ok {
			return b
		}
	}
	return models.TimeBlock{}
}
