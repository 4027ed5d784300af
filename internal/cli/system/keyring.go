package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/keyring"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/storage/postgres"
)

type ConfigCmd struct {
	SetConnection    ConfigSetConnectionCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string."`
	Show             ConfigShowCmd             `cmd:"" help:"Show the effective settings."`
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring:")
	fmt.Println("  " + maskPassword(cmd.ConnectionString))
	fmt.Println("  daychain uses it when neither --config nor storage.dsn is set")
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (cmd *ConfigDeleteConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	fmt.Printf("storage:        %s\n", maskPassword(ctx.Store.GetConfigPath()))
	fmt.Printf("config dir:     %s\n", ctx.ConfigDir)
	fmt.Printf("log file:       %s\n", logger.Path(ctx.ConfigDir))
	fmt.Printf("poll interval:  %s\n", cfg.PollInterval)
	fmt.Printf("hydration:      every %dm (enabled: %v)\n", cfg.Reminders.Hydration.Interval, cfg.Reminders.Hydration.Enabled)
	fmt.Printf("movement:       every %dm (enabled: %v)\n", cfg.Reminders.Movement.Interval, cfg.Reminders.Movement.Enabled)
	fmt.Printf("notifications:  %v (sound: %v)\n", cfg.Notifications.Enabled, cfg.Notifications.Sound)
	fmt.Printf("history days:   %d\n", cfg.History.Days)
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		idx := strings.Index(connStr, "://")
		rest := connStr[idx+3:]
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if colon := strings.Index(userInfo, ":"); colon != -1 {
				return connStr[:idx+3] + userInfo[:colon] + ":****" + rest[at:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}
