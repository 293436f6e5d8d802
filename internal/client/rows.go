package client

import "storefront/catalog/internal/domain"

// PostgREST rows. Nullable columns decode into pointers and are resolved
// here, at the boundary.
type categoryRow struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DisplayName      *string `json:"display_name"`
	Slug             string  `json:"slug"`
	ParentID         *string `json:"parent_id"`
	SortOrder        *int    `json:"sort_order"`
	ShowInNavigation *bool   `json:"show_in_navigation"`
	IsFeatured       *bool   `json:"is_featured"`
	ImageURL         *string `json:"image_url"`
	Description      *string `json:"description"`
}

func (r categoryRow) toDomain() domain.Category {
	c := domain.Category{
		ID:               r.ID,
		Name:             r.Name,
		DisplayName:      deref(r.DisplayName),
		Slug:             r.Slug,
		ShowInNavigation: r.ShowInNavigation == nil || *r.ShowInNavigation,
		IsFeatured:       r.IsFeatured != nil && *r.IsFeatured,
		ImageURL:         deref(r.ImageURL),
		Description:      deref(r.Description),
	}
	if r.ParentID != nil && *r.ParentID != "" {
		parent := *r.ParentID
		c.ParentID = &parent
	}
	if r.SortOrder != nil {
		c.SortOrder = *r.SortOrder
	}
	return c
}

type collectionRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsFeatured  *bool   `json:"is_featured"`
}

func (r collectionRow) toDomain() domain.Collection {
	return domain.Collection{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: deref(r.Description),
		ImageURL:    deref(r.ImageURL),
		IsFeatured:  r.IsFeatured != nil && *r.IsFeatured,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
