package constant

import "time"

const (
	// MainChannelID is the global channel every user can always join.
	MainChannelID    = "main"
	MainChannelLabel = "Main Hall"

	// HeartbeatInterval is how often a joined client refreshes its presence row.
	HeartbeatInterval = 30 * time.Second

	// PresenceWindow is the liveness window: a user counts as online iff their
	// last heartbeat is younger than this.
	PresenceWindow = 60 * time.Second

	// OnlinePollInterval is how often a joined client re-reads the online count.
	OnlinePollInterval = 10 * time.Second

	// HistoryLimit caps a single history fetch. There is no pagination beyond
	// this page.
	HistoryLimit = 50

	// MaxSubjectPreferences caps live subject preferences per user. The 4th add
	// is rejected, nothing is evicted.
	MaxSubjectPreferences = 3
)
