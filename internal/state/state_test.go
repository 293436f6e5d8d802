package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/catalog/internal/domain"
)

func TestJSONFieldsEncodesEachMenu(t *testing.T) {
	t.Parallel()

	fields, err := jsonFields(map[string]domain.NavigationMenu{
		"women": {Title: "Women", BaseSlug: "women"},
		"men":   {Title: "Men", BaseSlug: "men"},
	})
	require.NoError(t, err)
	require.Len(t, fields, 2)

	var menu domain.NavigationMenu
	require.NoError(t, json.Unmarshal([]byte(fields["women"].(string)), &menu))
	require.Equal(t, "Women", menu.Title)
}

func TestJSONFieldsEmpty(t *testing.T) {
	t.Parallel()

	fields, err := jsonFields(map[string]domain.NavigationMenu{})
	require.NoError(t, err)
	require.Empty(t, fields)
}
