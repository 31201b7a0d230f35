package repository

import "time"

// Snapshot is the header row of one saved directory load.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	// Source names where the directory came from, e.g. the API base URL.
	Source string
	Count  int
}
