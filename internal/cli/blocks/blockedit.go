package blocks

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/routine"
)

type BlockEditCmd struct {
	ID       string `arg:"" help:"Block ID or ID prefix."`
	At       string `help:"New start time (HH:MM)." short:"t"`
	Activity string `help:"New activity." short:"a"`
	Category string `help:"New category." short:"c"`
	Status   string `help:"New status (pending, completed, canceled)."`
}

func (c *BlockEditCmd) Run(ctx *cli.Context) error {
	block, err := ctx.FindBlock(c.ID)
	if err != nil {
		return err
	}

	var patch routine.Patch
	if c.At != "" {
		at, err := models.ParseClock(c.At)
		if err != nil {
			return err
		}
		patch.Time = &at
	}
	if c.Activity != "" {
		patch.Activity = &c.Activity
	}
	if c.Category != "" {
		category, err := models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
		patch.Category = &category
	}
	if c.Status != "" {
		status, err := models.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		patch.Status = &status
	}

	r, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		return routine.UpdateBlock(r, block.ID, patch)
	})
	if err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}

	updated, _ := r.Block(block.ID)
	fmt.Printf("Updated block: %s %s [%s]\n", updated.Time, updated.Activity, updated.Category)
	return nil
}

type BlockShiftCmd struct {
	ID string `arg:"" help:"Block ID or ID prefix."`
	By int    `help:"Minutes to move the block; negative moves it earlier." short:"b" default:"15"`
}

func (c *BlockShiftCmd) Run(ctx *cli.Context) error {
	block, err := ctx.FindBlock(c.ID)
	if err != nil {
		return err
	}

	r, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		return routine.ShiftBlock(r, block.ID, c.By)
	})
	if err != nil {
		return fmt.Errorf("failed to shift block: %w", err)
	}

	shifted, _ := r.Block(block.ID)
	fmt.Printf("Moved %s: %s → %s\n", shifted.Activity, block.Time, shifted.Time)
	return nil
}

type BlockDeleteCmd struct {
	ID string `arg:"" help:"Block ID or ID prefix."`
}

func (c *BlockDeleteCmd) Run(ctx *cli.Context) error {
	block, err := ctx.FindBlock(c.ID)
	if err != nil {
		return err
	}

	if _, err := ctx.UpdateCurrent(func(r models.Routine) models.Routine {
		return routine.DeleteBlock(r, block.ID)
	}); err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}

	fmt.Printf("Deleted block: %s %s (ID: %s)\n", block.Time, block.Activity, cli.ShortID(block.ID))
	return nil
}
