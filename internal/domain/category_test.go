package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryLabelFallsBackToName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Tees", Category{Name: "Tees"}.Label())
	require.Equal(t, "Graphic Tees", Category{Name: "Tees", DisplayName: "Graphic Tees"}.Label())
	require.Equal(t, "Tees", Category{Name: "Tees", DisplayName: "  "}.Label())
}

func TestCategoryValidate(t *testing.T) {
	t.Parallel()

	self := "c1"
	cases := map[string]Category{
		"missing id":   {Name: "Tees", Slug: "tees"},
		"missing slug": {ID: "c1", Name: "Tees"},
		"missing name": {ID: "c1", Slug: "tees"},
		"own parent":   {ID: "c1", Name: "Tees", Slug: "tees", ParentID: &self},
	}
	for name, c := range cases {
		require.ErrorIs(t, c.Validate(), ErrInvalidRecord, name)
	}

	require.NoError(t, Category{ID: "c1", Name: "Tees", Slug: "tees"}.Validate())
}

func TestCategoryParent(t *testing.T) {
	t.Parallel()

	parent := "root"
	require.True(t, Category{ID: "root"}.IsRoot())
	require.Equal(t, "root", Category{ID: "c", ParentID: &parent}.Parent())
	require.False(t, Category{ID: "c", ParentID: &parent}.IsRoot())
}

func TestCollectionValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Collection{ID: "1", Name: "Summer", Slug: "summer"}.Validate())
	require.ErrorIs(t, Collection{ID: "1", Name: "Summer"}.Validate(), ErrInvalidRecord)
}
