package blocks

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/routine"
)

// transition runs a status mutator. Only pending blocks move.
func transition(ctx *cli.Context, ref string, to models.BlockStatus, fn func(models.Routine, string) models.Routine) error {
	block, err := ctx.FindBlock(ref)
	if err != nil {
		return err
	}
	if block.Status != models.StatusPending {
		fmt.Printf("%s is already %s.\n", block.Activity, block.Status)
		return nil
	}

	if _, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		return fn(r, block.ID)
	}); err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}

	fmt.Printf("%s: %s\n", block.Activity, to)
	return nil
}

type BlockDoneCmd struct {
	ID string `arg:"" help:"Block ID or ID prefix."`
}

func (c *BlockDoneCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusCompleted, routine.CompleteBlock)
}

type BlockCancelCmd struct {
	ID string `arg:"" help:"Block ID or ID prefix."`
}

func (c *BlockCancelCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusCanceled, routine.CancelBlock)
}

type BlockAlarmCmd struct {
	ID string `arg:"" help:"Block ID or ID prefix."`
}

func (c *BlockAlarmCmd) Run(ctx *cli.Context) error {
	block, err := ctx.FindBlock(c.ID)
	if err != nil {
		return err
	}

	r, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		return routine.ToggleAlarm(r, block.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to toggle alarm: %w", err)
	}

	updated, _ := r.Block(block.ID)
	state := "off"
	if updated.AlarmEnabled {
		state = "on"
	}
	fmt.Printf("Alarm for %s %s: %s\n", updated.Time, updated.Activity, state)
	return nil
}

type BlockResetCmd struct{}

func (c *BlockResetCmd) Run(ctx *cli.Context) error {
	r, err := ctx.UpdateCurrent(routine.ResetStatuses)
	if err != nil {
		return fmt.Errorf("failed to reset blocks: %w", err)
	}
	fmt.Printf("Reset %d blocks in %s to pending.\n", len(r.Blocks), r.Name)
	return nil
}
