package repository

import (
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"storefront/catalog/internal/domain"
)

func TestValidCategoriesDropsInvalidRows(t *testing.T) {
	t.Parallel()

	self := "loop"
	categories := validCategories([]domain.Category{
		{ID: "men", Name: "Men", Slug: "men"},
		{ID: "", Name: "Nameless", Slug: "nameless"},
		{ID: "loop", Name: "Loop", Slug: "loop", ParentID: &self},
		{ID: "women", Name: "Women", Slug: "women"},
	})

	require.Len(t, categories, 2)
	require.Equal(t, "men", categories[0].ID)
	require.Equal(t, "women", categories[1].ID)
}

func TestValidCollectionsDropsInvalidRows(t *testing.T) {
	t.Parallel()

	collections := validCollections([]domain.Collection{
		{ID: "1", Name: "Summer", Slug: "summer"},
		{ID: "2", Name: "No slug"},
	})

	require.Equal(t, []domain.Collection{{ID: "1", Name: "Summer", Slug: "summer"}}, collections)
}

func TestDeref(t *testing.T) {
	t.Parallel()

	value := "x"
	require.Equal(t, "", deref(nil))
	require.Equal(t, "x", deref(&value))
}

// scannedRow feeds fixed column values to a scan function. nil stands for
// SQL NULL and leaves the destination untouched.
type scannedRow struct {
	values []any
}

func (r scannedRow) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r scannedRow) Values() ([]any, error) { return r.values, nil }
func (r scannedRow) RawValues() [][]byte { return nil }

func (r scannedRow) Scan(dest ...any) error {
	for i, d := range dest {
		if r.values[i] == nil {
			continue
		}
		target := reflect.ValueOf(d).Elem()
		value := reflect.ValueOf(r.values[i])
		if target.Kind() == reflect.Pointer && value.Type().AssignableTo(target.Type().Elem()) {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(value)
			target.Set(ptr)
			continue
		}
		target.Set(value)
	}
	return nil
}

func TestScanCategoryNullColumns(t *testing.T) {
	t.Parallel()

	c, err := scanCategory(scannedRow{values: []any{
		"tees", "Tees", nil, "tees", "tops", nil, nil, nil, nil, nil,
	}})
	require.NoError(t, err)
	require.Equal(t, 0, c.SortOrder)
	require.Equal(t, "tops", c.Parent())
	require.True(t, c.ShowInNavigation)
	require.False(t, c.IsFeatured)
	require.Empty(t, c.DisplayName)
}

func TestScanCategoryValues(t *testing.T) {
	t.Parallel()

	c, err := scanCategory(scannedRow{values: []any{
		"women", "Women", "Womenswear", "women", nil, 3, false, true, "/w.jpg", "<p>New</p>",
	}})
	require.NoError(t, err)
	require.Equal(t, 3, c.SortOrder)
	require.True(t, c.IsRoot())
	require.Equal(t, "Womenswear", c.Label())
	require.False(t, c.ShowInNavigation)
	require.True(t, c.IsFeatured)
	require.Equal(t, "/w.jpg", c.ImageURL)
}
