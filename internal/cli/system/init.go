package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/storage/backend"
	"github.com/julianstephens/daychain/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database file before initialization."`
	Source string `help:"Storage location (file, diskv:<dir> or connection string) to copy records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized daychain storage at: %s\n", ctx.Store.GetConfigPath())

	cfgPath := config.Path(ctx.ConfigDir)
	created, err := config.WriteDefault(cfgPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Wrote default settings to: %s\n", cfgPath)
	}

	if c.Source != "" {
		fmt.Printf("Copying records from: %s\n", c.Source)
		n, err := copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("  Copied %d records\n", n)
	}

	seeded, err := seed(ctx)
	if err != nil {
		return err
	}
	if seeded > 0 {
		fmt.Printf("Seeded %d default records\n", seeded)
	}
	return nil
}

// reset deletes a file-backed store so Init starts from scratch.
func (c *InitCmd) reset(ctx *cli.Context) error {
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
	default:
		return fmt.Errorf("--force is only supported for file-backed storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, errDB := filepath.Abs(dbPath)
		absSrc, errSrc := filepath.Abs(c.Source)
		if errDB == nil && errSrc == nil && absDB == absSrc {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func copyFrom(ctx *cli.Context, location string) (int, error) {
	src, err := backend.Open(location)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()
	return storage.Copy(src, ctx.Store)
}

// seed writes the defaults for every record the store does not have yet.
func seed(ctx *cli.Context) (int, error) {
	missing := func(key string) (bool, error) {
		_, err := ctx.Store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	seeded := 0
	steps := []struct {
		key  string
		save func() error
	}{
		{constants.KeyRoutines, func() error { return ctx.State.SaveCatalog(ctx.State.LoadCatalog()) }},
		{constants.KeyChain, func() error { return ctx.State.SaveChain(ctx.State.LoadChain()) }},
		{constants.KeyReminders, func() error { return ctx.State.SaveReminders(ctx.State.LoadReminders()) }},
	}
	for _, step := range steps {
		ok, err := missing(step.key)
		if err != nil {
			return seeded, fmt.Errorf("failed to read %s: %w", step.key, err)
		}
		if !ok {
			continue
		}
		if err := step.save(); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
