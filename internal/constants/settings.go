package constants

const (
	// Layout setting keys. Column keys are built as ColumnKeyPrefix + id + "." + suffix.
	SettingWindowWidth  = "window.width"
	SettingWindowHeight = "window.height"
	SettingWindowX      = "window.x"
	SettingWindowY      = "window.y"
	ColumnKeyPrefix     = "column."
	ColumnWidthSuffix   = "width"
	ColumnPosSuffix     = "position"

	// Column identifiers for the habit table
	ColumnName     = "name"
	ColumnCategory = "category"
	ColumnStreak   = "streak"
	ColumnToday    = "today"
	ColumnNote     = "note"

	// Default layout values
	DefaultWindowWidth  = 100
	DefaultWindowHeight = 30

	// Config keys (viper)
	ConfigDatabase         = "database"
	ConfigTimezone         = "timezone"
	ConfigDebug            = "debug"
	ConfigRemindersEnabled = "reminders.enabled"
	ConfigRemindersHours   = "reminders.hours"
	ConfigRemindersMessage = "reminders.message"
	ConfigEnvPrefix        = "HABITRACK"

	DefaultTimezone = "Local" // Use system local timezone by default
)

// DefaultColumnWidths holds the initial width for each habit table column.
var DefaultColumnWidths = map[string]int{
	ColumnName:     24,
	ColumnCategory: 16,
	ColumnStreak:   8,
	ColumnToday:    7,
	ColumnNote:     32,
}

// DefaultColumnOrder is the initial left-to-right column order.
var DefaultColumnOrder = []string{ColumnName, ColumnCategory, ColumnStreak, ColumnToday, ColumnNote}
