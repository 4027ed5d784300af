package routines

import (
	"fmt"
	"sort"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/routine"
)

type RoutineCmd struct {
	List   RoutineListCmd   `cmd:"" help:"List routines." default:"1"`
	New    RoutineNewCmd    `cmd:"" help:"Create a routine."`
	Use    RoutineUseCmd    `cmd:"" help:"Switch the routine in use."`
	Delete RoutineDeleteCmd `cmd:"" help:"Delete a routine."`
	Show   RoutineShowCmd   `cmd:"" help:"Show the blocks of a routine."`
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	catalog := ctx.State.LoadCatalog()
	routines := make([]models.Routine, 0, len(catalog.Routines))
	for _, r := range catalog.Routines {
		routines = append(routines, r)
	}
	sort.Slice(routines, func(i, j int) bool { return routines[i].Name < routines[j].Name })

	fmt.Println("Routines:")
	for _, r := range routines {
		marker := " "
		if r.ID == catalog.CurrentID {
			marker = "*"
		}
		fmt.Printf("  %s %s (ID: %s) - %d blocks\n", marker, r.Name, r.ID, len(r.Blocks))
	}
	return nil
}

type RoutineNewCmd struct {
	Name        string `arg:"" help:"Routine name."`
	Description string `help:"Short description." short:"d"`
	Use         bool   `help:"Switch to the new routine."`
}

func (c *RoutineNewCmd) Run(ctx *cli.Context) error {
	catalog := ctx.State.LoadCatalog()
	if existing, ok := routine.Find(catalog, c.Name); ok {
		return fmt.Errorf("routine %q already exists (ID: %s)", existing.Name, existing.ID)
	}

	r := routine.NewRoutine(c.Name, c.Description)
	catalog = routine.Put(catalog, r)
	if c.Use {
		catalog = routine.Use(catalog, r.ID)
	}
	if err := ctx.State.SaveCatalog(catalog); err != nil {
		return fmt.Errorf("failed to save routine: %w", err)
	}

	fmt.Printf("Created routine: %s (ID: %s)\n", r.Name, r.ID)
	return nil
}

type RoutineUseCmd struct {
	Routine string `arg:"" help:"Routine ID or name."`
}

func (c *RoutineUseCmd) Run(ctx *cli.Context) error {
	catalog := ctx.State.LoadCatalog()
	r, ok := routine.Find(catalog, c.Routine)
	if !ok {
		return fmt.Errorf("routine not found: %s", c.Routine)
	}
	if err := ctx.State.SaveCatalog(routine.Use(catalog, r.ID)); err != nil {
		return fmt.Errorf("failed to switch routine: %w", err)
	}

	fmt.Printf("Now using: %s\n", r.Name)
	return nil
}

type RoutineDeleteCmd struct {
	Routine string `arg:"" help:"Routine ID or name."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	catalog := ctx.State.LoadCatalog()
	r, ok := routine.Find(catalog, c.Routine)
	if !ok {
		return fmt.Errorf("routine not found: %s", c.Routine)
	}
	if r.ID == catalog.CurrentID {
		return fmt.Errorf("cannot delete %q while it is in use; switch with 'daychain routine use' first", r.Name)
	}
	if err := ctx.State.SaveCatalog(routine.Remove(catalog, r.ID)); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	fmt.Printf("Deleted routine: %s (ID: %s)\n", r.Name, r.ID)
	return nil
}

type RoutineShowCmd struct {
	Routine string `arg:"" optional:"" help:"Routine ID or name. Defaults to the routine in use."`
	ShowIDs bool   `help:"Show block IDs." name:"show-ids"`
}

func (c *RoutineShowCmd) Run(ctx *cli.Context) error {
	catalog := ctx.State.LoadCatalog()
	var (
		r  models.Routine
		ok bool
	)
	if c.Routine == "" {
		r, ok = catalog.Current()
	} else {
		r, ok = routine.Find(catalog, c.Routine)
	}
	if !ok {
		return fmt.Errorf("routine not found: %s", c.Routine)
	}

	cli.PrintRoutine(r, ctx.Clock(), c.ShowIDs)
	return nil
}
