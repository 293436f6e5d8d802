package domain

import (
	"fmt"
	"strings"
)

// Category is a single row of the flat category table. The hierarchy is
// expressed only through ParentID back-references.
type Category struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DisplayName      string  `json:"display_name,omitempty"`
	Slug             string  `json:"slug"`
	ParentID         *string `json:"parent_id,omitempty"` // nil for root categories
	SortOrder        int     `json:"sort_order"`
	ShowInNavigation bool    `json:"show_in_navigation"`
	IsFeatured       bool    `json:"is_featured"`
	ImageURL         string  `json:"image_url,omitempty"`
	Description      string  `json:"description,omitempty"`
}

// Label returns the presentation name of the category.
func (c Category) Label() string {
	if strings.TrimSpace(c.DisplayName) != "" {
		return c.DisplayName
	}
	return c.Name
}

// Parent returns the parent id, or an empty string for a root category.
func (c Category) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}

func (c Category) IsRoot() bool {
	return c.Parent() == ""
}

// Validate checks the fields every consumer relies on.
func (c Category) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: category id is empty", ErrInvalidRecord)
	case strings.TrimSpace(c.Slug) == "":
		return fmt.Errorf("%w: category %s has no slug", ErrInvalidRecord, c.ID)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: category %s has no name", ErrInvalidRecord, c.ID)
	case c.Parent() == c.ID:
		return fmt.Errorf("%w: category %s is its own parent", ErrInvalidRecord, c.ID)
	}
	return nil
}

// CategoryOption is a category picker entry labelled with its breadcrumb path.
type CategoryOption struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Label string `json:"label"` // "Men / Shirts / Tees"
}
