package domain

// MenuItem is a navigable leaf category.
type MenuItem struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// MenuSection groups the items under one immediate child of a root category.
type MenuSection struct {
	Title string     `json:"title"` // upper-cased section header
	Items []MenuItem `json:"items"`
}

type FeaturedPanel struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
}

// NavigationMenu is the derived menu for one root category.
type NavigationMenu struct {
	Title    string        `json:"title"`
	BaseSlug string        `json:"base_slug"`
	Sections []MenuSection `json:"sections"`
	Featured FeaturedPanel `json:"featured"`
}
