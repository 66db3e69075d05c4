package domain

import "time"

// BotState is an immutable snapshot of the loaded configuration and the
// logical day it was taken on. Refreshing replaces the whole snapshot.
type BotState struct {
	Initialized bool
	Config      *BotConfig
	Day         time.Weekday
	LoadedAt    time.Time
}
