package domain

import (
	"fmt"
	"strings"
)

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsFeatured  bool   `json:"is_featured"`
}

func (c Collection) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: collection id is empty", ErrInvalidRecord)
	case strings.TrimSpace(c.Slug) == "":
		return fmt.Errorf("%w: collection %s has no slug", ErrInvalidRecord, c.ID)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: collection %s has no name", ErrInvalidRecord, c.ID)
	}
	return nil
}
