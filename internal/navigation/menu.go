package navigation

import (
	"strings"

	"storefront/catalog/internal/domain"
)

const (
	DefaultPrimaryKey       = "women"
	DefaultSecondaryKey     = "men"
	DefaultItemLimit        = 10
	DefaultFallbackSubtitle = "Discover the latest arrivals"
	DefaultFallbackImage    = "/images/placeholder-featured.jpg"
)

// Options tune menu derivation. Zero values fall back to the defaults.
type Options struct {
	PrimaryKey       string
	SecondaryKey     string
	ItemLimit        int
	FallbackSubtitle string
	FallbackImage    string
}

func DefaultOptions() Options {
	return Options{
		PrimaryKey:       DefaultPrimaryKey,
		SecondaryKey:     DefaultSecondaryKey,
		ItemLimit:        DefaultItemLimit,
		FallbackSubtitle: DefaultFallbackSubtitle,
		FallbackImage:    DefaultFallbackImage,
	}
}

// Builder derives navigation menus from a flat category snapshot. It holds
// no state between calls and is safe for concurrent use.
type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	defaults := DefaultOptions()
	if opts.PrimaryKey == "" {
		opts.PrimaryKey = defaults.PrimaryKey
	}
	if opts.SecondaryKey == "" {
		opts.SecondaryKey = defaults.SecondaryKey
	}
	if opts.ItemLimit <= 0 {
		opts.ItemLimit = defaults.ItemLimit
	}
	if opts.FallbackSubtitle == "" {
		opts.FallbackSubtitle = defaults.FallbackSubtitle
	}
	if opts.FallbackImage == "" {
		opts.FallbackImage = defaults.FallbackImage
	}
	return &Builder{opts: opts}
}

func (b *Builder) Options() Options {
	return b.opts
}

// BuildNavigationMenu derives the menu for rootKey. The second return value
// is false when no root could be chosen, which is a normal empty state.
func (b *Builder) BuildNavigationMenu(categories []domain.Category, rootKey string) (domain.NavigationMenu, bool) {
	index := BuildChildIndex(visibleOnly(categories))
	root, ok := b.findRoot(index.Roots(), rootKey)
	if !ok {
		return domain.NavigationMenu{}, false
	}
	return b.menuFor(root, index), true
}

// BuildAllRootMenus derives one menu per visible root, keyed by root slug.
func (b *Builder) BuildAllRootMenus(categories []domain.Category) map[string]domain.NavigationMenu {
	index := BuildChildIndex(visibleOnly(categories))
	roots := sortedCopy(index.Roots())

	menus := make(map[string]domain.NavigationMenu, len(roots))
	for _, root := range roots {
		if _, exists := menus[root.Slug]; exists {
			continue
		}
		menus[root.Slug] = b.menuFor(root, index)
	}
	return menus
}

// BuildPrimaryMenus derives the two conventional menus keyed by the
// configured primary and secondary keys. Absent menus are omitted.
func (b *Builder) BuildPrimaryMenus(categories []domain.Category) map[string]domain.NavigationMenu {
	menus := make(map[string]domain.NavigationMenu, 2)
	for _, key := range []string{b.opts.PrimaryKey, b.opts.SecondaryKey} {
		if menu, ok := b.BuildNavigationMenu(categories, key); ok {
			menus[key] = menu
		}
	}
	return menus
}

// findRoot matches rootKey against slug, label and name. Unmatched primary
// and secondary keys fall back to the first and second sorted root among
// those not matched by either key, so two keys never share a root.
// TODO: replace the positional fallback with an admin-configured root mapping.
func (b *Builder) findRoot(roots []domain.Category, rootKey string) (domain.Category, bool) {
	sorted := sortedCopy(roots)
	key := strings.TrimSpace(rootKey)

	for _, root := range sorted {
		if matchesKey(root, key) {
			return root, true
		}
	}

	position := -1
	switch {
	case strings.EqualFold(key, b.opts.PrimaryKey):
		position = 0
	case strings.EqualFold(key, b.opts.SecondaryKey):
		position = 1
	}
	if position < 0 {
		return domain.Category{}, false
	}

	remaining := make([]domain.Category, 0, len(sorted))
	for _, root := range sorted {
		if matchesKey(root, b.opts.PrimaryKey) || matchesKey(root, b.opts.SecondaryKey) {
			continue
		}
		remaining = append(remaining, root)
	}
	if position >= len(remaining) {
		return domain.Category{}, false
	}
	return remaining[position], true
}

func matchesKey(root domain.Category, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	return strings.EqualFold(root.Slug, key) ||
		strings.EqualFold(root.Label(), key) ||
		strings.EqualFold(root.Name, key)
}

func (b *Builder) menuFor(root domain.Category, index ChildIndex) domain.NavigationMenu {
	children := sortedCopy(index.ChildrenOf(root.ID))

	sections := make([]domain.MenuSection, 0, len(children))
	for _, child := range children {
		sections = append(sections, domain.MenuSection{
			Title: strings.ToUpper(child.Label()),
			Items: b.itemsFor(child, index),
		})
	}

	return domain.NavigationMenu{
		Title:    root.Label(),
		BaseSlug: root.Slug,
		Sections: sections,
		Featured: b.featuredFor(root, children),
	}
}

func (b *Builder) itemsFor(section domain.Category, index ChildIndex) []domain.MenuItem {
	leaves := sortedCopy(index.ChildrenOf(section.ID))
	if len(leaves) == 0 {
		// leaf promotion
		return []domain.MenuItem{{Title: section.Label(), Slug: section.Slug}}
	}
	if len(leaves) > b.opts.ItemLimit {
		leaves = leaves[:b.opts.ItemLimit]
	}

	items := make([]domain.MenuItem, 0, len(leaves))
	for _, leaf := range leaves {
		items = append(items, domain.MenuItem{Title: leaf.Label(), Slug: leaf.Slug})
	}
	return items
}

// featuredFor expects children already sorted.
func (b *Builder) featuredFor(root domain.Category, children []domain.Category) domain.FeaturedPanel {
	source := root
	for _, child := range children {
		if child.IsFeatured {
			source = child
			break
		}
	}

	subtitle := PlainText(source.Description)
	if subtitle == "" {
		subtitle = b.opts.FallbackSubtitle
	}
	image := strings.TrimSpace(source.ImageURL)
	if image == "" {
		image = b.opts.FallbackImage
	}

	return domain.FeaturedPanel{
		Title:    source.Label(),
		Subtitle: subtitle,
		Image:    image,
	}
}

func visibleOnly(categories []domain.Category) []domain.Category {
	visible := make([]domain.Category, 0, len(categories))
	for _, category := range categories {
		if category.ShowInNavigation {
			visible = append(visible, category)
		}
	}
	return visible
}

func sortedCopy(categories []domain.Category) []domain.Category {
	out := make([]domain.Category, len(categories))
	copy(out, categories)
	SortCategories(out)
	return out
}
