package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daychain/internal/backup"
	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/keyring"
	"github.com/julianstephens/daychain/internal/migration"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/storage/sqlite"
	"github.com/julianstephens/daychain/internal/validation"
)

// errSkipped marks a check that does not apply to the current store.
type errSkipped struct{ reason string }

func (e errSkipped) Error() string { return e.reason }

type check struct {
	name string
	// warnOnly checks never fail the run.
	warnOnly bool
	// needsDB checks are skipped when the store is unreachable.
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Routine validation", needsDB: true, run: checkRoutines},
	{name: "Chain dates", needsDB: true, run: checkChainDates},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var skipped errSkipped
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skipped):
			fmt.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skipped.reason)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	return nil
}

func schemaStatus(ctx *cli.Context) (migration.Status, error) {
	sp, ok := ctx.Store.(storage.SchemaProvider)
	if !ok {
		return migration.Status{}, errSkipped{"store has no schema"}
	}
	runner, err := sp.SchemaRunner()
	if err != nil {
		return migration.Status{}, err
	}
	st, err := runner.Status()
	if err != nil {
		return migration.Status{}, fmt.Errorf("failed to read schema status: %w", err)
	}
	return st, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := schemaStatus(ctx)
	if err != nil {
		return err
	}
	if st.TooNew() {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := schemaStatus(ctx)
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (%d pending)", st.Current, st.Latest, len(st.Pending))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errSkipped{"backups only cover the SQLite store"}
	}
	latest, ok, err := backup.NewManager(ctx.Store.GetConfigPath()).Latest()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if !ok {
		return fmt.Errorf("no backups found - consider creating one with 'daychain backup create'")
	}
	if age := time.Since(latest.Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkRoutines(ctx *cli.Context) error {
	catalog, ok, err := ctx.State.RawCatalog()
	if err != nil {
		return err
	}
	if !ok {
		return errSkipped{"no routines stored yet"}
	}
	result := validation.New().ValidateCatalog(catalog)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflicts\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkChainDates(ctx *cli.Context) error {
	dates, err := ctx.State.RawChain()
	if err != nil {
		return err
	}
	result := validation.New().ValidateDates(dates)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from .pgpass or the environment")
	}
	return nil
}
