package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = errors.New("invalid record")
)

// CyclicHierarchyError is returned when a chain of parent references loops
// back onto itself.
type CyclicHierarchyError struct {
	CategoryID string // first category seen twice while walking up
}

func (e *CyclicHierarchyError) Error() string {
	return fmt.Sprintf("cyclic category hierarchy at %s", e.CategoryID)
}
