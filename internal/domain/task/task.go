package task

import (
	"encoding/json"
	"fmt"
)

type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Types lists every task type that has a stream
var Types = []string{RebuildTaskType}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task interface{}) ([]byte, error) {
	return json.Marshal(task)
}

// UnmarshalTask decodes a task payload into a freshly allocated T
func UnmarshalTask[T any](data []byte) (*T, error) {
	t := new(T)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return t, nil
}
