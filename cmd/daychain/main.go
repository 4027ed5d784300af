package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/cli/backups"
	"github.com/julianstephens/daychain/internal/cli/blocks"
	"github.com/julianstephens/daychain/internal/cli/chains"
	"github.com/julianstephens/daychain/internal/cli/reminders"
	"github.com/julianstephens/daychain/internal/cli/routines"
	"github.com/julianstephens/daychain/internal/cli/system"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/errors"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/storage/backend"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage location: SQLite file, *.json file, diskv:<dir> or PostgreSQL connection string." env:"DAYCHAIN_CONFIG"`
	Debug   bool   `help:"Log to stderr at debug level."`

	Init    system.InitCmd      `cmd:"" help:"Initialize daychain storage."`
	Tui     system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Now     cli.NowCmd          `cmd:"" help:"Show the active block and reminders."`
	Block   blocks.BlockCmd     `cmd:"" help:"Manage the blocks of the routine in use."`
	Routine routines.RoutineCmd `cmd:"" help:"Manage routines."`
	Chain   chains.ChainCmd     `cmd:"" help:"Mark days and show the streak."`
	Remind  reminders.RemindCmd `cmd:"" help:"Hydration and movement reminders."`
	Watch   system.WatchCmd     `cmd:"" help:"Poll in the foreground and notify on block starts and due reminders."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup."`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Doctor   system.DoctorCmd `cmd:"" help:"Run health checks."`
	Settings system.ConfigCmd `cmd:"" name:"config" help:"Manage settings and the stored connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily routine tracker: time blocks, a chain of good days and gentle reminders"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	// config.yaml lives next to the storage named on the command line, or in
	// the default directory; it may itself name the storage.
	settingsDir := backend.ConfigDir(constants.DefaultConfigPath)
	if CLI.Config != "" {
		settingsDir = backend.ConfigDir(CLI.Config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: settingsDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	cfg, err := config.Load(config.Path(settingsDir))
	if err != nil {
		errors.Fatal(err)
	}

	location := backend.Resolve(CLI.Config, cfg.Storage.DSN)
	store, err := backend.Open(location)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to open storage: %w", err))
	}
	logger.Debug("Using storage", "location", store.GetConfigPath(), "kind", backend.Detect(location))

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			if stderrors.Is(err, storage.ErrNotInitialized) {
				err = errors.WithHint(err, "run 'daychain init' first")
			}
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg, settingsDir)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

// needsLoad reports whether command works on existing storage. init creates
// it and config only touches the keyring and settings.
func needsLoad(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "config")
}
