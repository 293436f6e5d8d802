package domain

import "time"

// Snapshot is the complete catalog read from a source in one pass.
type Snapshot struct {
	Categories  []Category   `json:"categories"`
	Collections []Collection `json:"collections"`
	FetchedAt   time.Time    `json:"fetched_at"`
}
