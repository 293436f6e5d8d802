package task

import "time"

const RebuildTaskType = "RebuildTask"

// RebuildTask asks a worker to re-derive navigation menus and the
// collection layout from a fresh catalog snapshot.
type RebuildTask struct {
	Reason      string    `json:"reason"`       // "startup", "schedule", "admin", ...
	RequestedAt time.Time `json:"requested_at"` // when the rebuild was requested
}

func (t *RebuildTask) TaskType() string {
	return RebuildTaskType
}

func (t *RebuildTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
