package navigation

import (
	"sort"
	"strings"

	"storefront/catalog/internal/domain"
)

// RootKey is the ChildIndex key holding categories without a parent.
const RootKey = ""

const breadcrumbSeparator = " / "

// ChildIndex groups categories by the id of their parent.
type ChildIndex map[string][]domain.Category

// BuildChildIndex groups every category by its parent reference. No
// filtering or ordering is applied.
func BuildChildIndex(categories []domain.Category) ChildIndex {
	index := make(ChildIndex, len(categories))
	for _, category := range categories {
		parent := category.Parent()
		index[parent] = append(index[parent], category)
	}
	return index
}

func (idx ChildIndex) ChildrenOf(id string) []domain.Category {
	return idx[id]
}

func (idx ChildIndex) Roots() []domain.Category {
	return idx[RootKey]
}

// IndexByID returns the categories keyed by id. Later duplicates win.
func IndexByID(categories []domain.Category) map[string]domain.Category {
	byID := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}
	return byID
}

// SortCategories orders siblings by sort order, then label, then id.
func SortCategories(categories []domain.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Label() != b.Label() {
			return a.Label() < b.Label()
		}
		return a.ID < b.ID
	})
}

// ResolveBreadcrumbPath returns the root-first label chain of a category,
// e.g. "Men / Shirts / Tees". A parent id missing from byID ends the walk.
func ResolveBreadcrumbPath(category domain.Category, byID map[string]domain.Category) (string, error) {
	segments := []string{category.Label()}
	visited := map[string]struct{}{category.ID: {}}

	current := category
	for !current.IsRoot() {
		parent, ok := byID[current.Parent()]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			return "", &domain.CyclicHierarchyError{CategoryID: parent.ID}
		}
		visited[parent.ID] = struct{}{}
		segments = append(segments, parent.Label())
		current = parent
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, breadcrumbSeparator), nil
}

// ResolveAllBreadcrumbs resolves the breadcrumb path of every category.
func ResolveAllBreadcrumbs(categories []domain.Category) (map[string]string, error) {
	byID := IndexByID(categories)
	paths := make(map[string]string, len(categories))
	for _, category := range categories {
		path, err := ResolveBreadcrumbPath(category, byID)
		if err != nil {
			return nil, err
		}
		paths[category.ID] = path
	}
	return paths, nil
}

// CategoryOptions labels every category with its breadcrumb path so that
// same-named categories in different branches can be told apart.
func CategoryOptions(categories []domain.Category) ([]domain.CategoryOption, error) {
	paths, err := ResolveAllBreadcrumbs(categories)
	if err != nil {
		return nil, err
	}

	options := make([]domain.CategoryOption, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, category := range categories {
		if _, dup := seen[category.ID]; dup {
			continue
		}
		seen[category.ID] = struct{}{}
		options = append(options, domain.CategoryOption{
			ID:    category.ID,
			Slug:  category.Slug,
			Label: paths[category.ID],
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Label != options[j].Label {
			return options[i].Label < options[j].Label
		}
		return options[i].ID < options[j].ID
	})
	return options, nil
}
