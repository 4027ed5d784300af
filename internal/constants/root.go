package constants

import "time"

const (
	AppName            = "daychain"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daychain/daychain.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	MinutesPerDay = 24 * 60

	// DefaultBlockDurationMin is the length assumed for the last block of a routine,
	// which has no successor to bound it.
	DefaultBlockDurationMin = 60

	// ShiftStepMin is the nudge applied by the +/- controls.
	ShiftStepMin = 15

	// StreakLookbackDays bounds the streak scan, today included.
	StreakLookbackDays = 30

	// AlmanacDays is the number of days shown in the chain history.
	AlmanacDays = 21

	// Poll cadence for the active block and reminders.
	DefaultPollInterval = time.Minute
	TUITickInterval     = time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daychain-"
	BackupFileSuffix = ".db"
)

// Persistence keys. Every record the app stores lives under one of these.
const (
	KeyRoutines       = "routines"
	KeyCurrentRoutine = "current_routine"
	KeyChain          = "chain"
	KeyReminders      = "reminders"
)

// StorageKeys lists the fixed set of persistence keys.
var StorageKeys = []string{KeyRoutines, KeyCurrentRoutine, KeyChain, KeyReminders}

// Reminder names and defaults
const (
	ReminderHydration = "hydration"
	ReminderMovement  = "movement"

	DefaultHydrationIntervalMin = 60
	DefaultMovementIntervalMin  = 50
)

// Block defaults used when a new block is added without explicit fields.
const (
	DefaultBlockTime     = "09:00"
	DefaultBlockActivity = "New activity"
	StarterBlockTime     = "08:00"
	StarterBlockActivity = "New task"
)

// Files under the config directory
const (
	ConfigFileName    = "config.yaml"
	WatchLockFileName = "watch.lock"
	DiskvScheme       = "diskv:"
)

// Environment variables
const (
	EnvConfig           = "DAYCHAIN_CONFIG"
	EnvTestPostgres     = "DAYCHAIN_TEST_POSTGRES"
	DefaultHistoryDays  = AlmanacDays
	DefaultNotifySound  = false
	DefaultNotifyEnable = true
)
