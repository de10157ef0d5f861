package constants

import "time"

const (
	AppName            = "habitrack"
	DefaultKeyringUser = "database-connection"

	// KeyringTarget as the database setting reads the connection string from the OS keyring
	KeyringTarget = "keyring"

	DefaultConfigDir  = "~/.config/habitrack"
	DefaultConfigPath = "~/.config/habitrack/config.yaml"
	DefaultDBPath     = "~/.config/habitrack/habitrack.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitrack-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitrack"
	TrayExecutablePrefix   = "habitrack-tray"

	// Reminder constants
	ReminderMessage = "Time to check in on your habits"

	// History
	DefaultHistoryDays = 30
)

// DefaultReminderHours are the wall-clock hours at which reminders fire
// when the config file does not say otherwise.
var DefaultReminderHours = []int{9, 20}
