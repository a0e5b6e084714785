package config

import "time"

// Application-wide constants organized by domain

// Check-in
const (
	CheckinBaseReward     = 10
	CheckinMaxStreakBonus = 10
)

// Focus rewards (anti-grind)
const (
	FocusCapMinutesPerDay = 120 // max 2h rewarded per UTC day
	FocusBlockMinutes     = 15
	FocusCoinsPerBlock    = 5
)

// Session bounds, enforced by the command layer before the scheduler is called
const (
	FocusMinMinutes = 5
	FocusMaxMinutes = 180

	PomodoroMinWork     = 5
	PomodoroMaxWork     = 120
	PomodoroDefaultWork = 25

	PomodoroMinBreak     = 1
	PomodoroMaxBreak     = 60
	PomodoroDefaultBreak = 5

	PomodoroMinRounds     = 1
	PomodoroMaxRounds     = 8
	PomodoroDefaultRounds = 4
)

// Shop and teams
const (
	GoldenDevRoleName        = "Golden Dev"
	DefaultRoleDurationHours = 24
	DefaultTeamDescription   = "No description yet."
	LeaderboardSize          = 10
	TeamListSize             = 25
	TeamsPerPage             = 10
	TeamInfoMemberPreview    = 10
	ItemSuggestionLimit      = 3
	MaxPurchaseAmount        = 1000
	RoleCacheSize            = 512
	APIMaxLimit              = 100
)

// Storage and infrastructure defaults
const (
	DefaultDocumentID         = "main"
	DefaultDataFile           = "data.json"
	DefaultSQLiteFile         = "goblin.db"
	DefaultMongoDatabase      = "commitgoblin"
	DefaultMongoCollection    = "documents"
	DefaultSpacesBackupPrefix = "backups"
	DefaultBackupSchedule     = "@every 6h"
	DefaultNotifierRate       = 5 // messages per second
	DefaultNotifierBurst      = 5
)

// Message boxes
const (
	MaxMessageBoxWidth = 80
	MinMessageBoxWidth = 24
)

// Timeouts
const (
	TimerCallbackTimeout    = 30 * time.Second // reward grant only; timer messages have no deadline
	StoreOperationTimeout   = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	NetworkDialTimeout      = 5 * time.Second
	ShutdownTimeout         = 10 * time.Second
	BackupUploadTimeout     = 2 * time.Minute
	HTTPReadTimeout         = 10 * time.Second
)

// EmbedDefaultColor matches Discord's dark theme background.
const EmbedDefaultColor = 0x2B2D31
