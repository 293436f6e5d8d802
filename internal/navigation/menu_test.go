package navigation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/catalog/internal/domain"
)

func storefrontCatalog() []domain.Category {
	women := category("women", "Women", "", 1)
	men := category("men", "Men", "", 2)
	archive := category("archive", "Archive", "", 0)
	archive.ShowInNavigation = false

	clothing := category("women-clothing", "Clothing", "women", 1)
	shoes := category("women-shoes", "Shoes", "women", 2)
	shoes.IsFeatured = true
	shoes.Description = "<p>Step <b>out</b> in style</p>"
	sale := category("women-sale", "Sale", "women", 3)
	sale.ShowInNavigation = false

	dresses := category("dresses", "Dresses", "women-clothing", 2)
	tops := category("tops", "Tops", "women-clothing", 1)
	hiddenTops := category("hidden-tops", "Hidden Tops", "women-clothing", 3)
	hiddenTops.ShowInNavigation = false
	clearance := category("clearance", "Clearance", "women-sale", 1)

	menShirts := category("men-shirts", "Shirts", "men", 1)
	menShirts.DisplayName = "Shirts & Polos"

	return []domain.Category{
		women, men, archive,
		clothing, shoes, sale,
		dresses, tops, hiddenTops, clearance,
		menShirts,
	}
}

func TestBuildNavigationMenuSectionsAndItems(t *testing.T) {
	t.Parallel()

	menu, ok := NewBuilder(DefaultOptions()).BuildNavigationMenu(storefrontCatalog(), "Women")
	require.True(t, ok)
	require.Equal(t, "Women", menu.Title)
	require.Equal(t, "women", menu.BaseSlug)

	require.Equal(t, []domain.MenuSection{
		{Title: "CLOTHING", Items: []domain.MenuItem{
			{Title: "Tops", Slug: "tops"},
			{Title: "Dresses", Slug: "dresses"},
		}},
		{Title: "SHOES", Items: []domain.MenuItem{
			{Title: "Shoes", Slug: "women-shoes"},
		}},
	}, menu.Sections)
}

func TestBuildNavigationMenuVisibility(t *testing.T) {
	t.Parallel()

	menus := NewBuilder(DefaultOptions()).BuildAllRootMenus(storefrontCatalog())
	require.NotContains(t, menus, "archive")

	raw, err := json.Marshal(menus)
	require.NoError(t, err)
	for _, hidden := range []string{"archive", "women-sale", "clearance", "hidden-tops", "SALE"} {
		require.NotContains(t, string(raw), hidden)
	}
}

func TestBuildNavigationMenuFeaturedChild(t *testing.T) {
	t.Parallel()

	menu, ok := NewBuilder(DefaultOptions()).BuildNavigationMenu(storefrontCatalog(), "women")
	require.True(t, ok)
	require.Equal(t, domain.FeaturedPanel{
		Title:    "Shoes",
		Subtitle: "Step out in style",
		Image:    DefaultFallbackImage,
	}, menu.Featured)
}

func TestBuildNavigationMenuFeaturedFallsBackToRoot(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.FallbackSubtitle = "Shop now"

	menu, ok := NewBuilder(opts).BuildNavigationMenu(storefrontCatalog(), "men")
	require.True(t, ok)
	require.Equal(t, "Men", menu.Featured.Title)
	require.Equal(t, "Shop now", menu.Featured.Subtitle)
	require.Equal(t, "SHIRTS & POLOS", menu.Sections[0].Title)
}

func TestBuildNavigationMenuItemCap(t *testing.T) {
	t.Parallel()

	categories := []domain.Category{
		category("root", "Root", "", 0),
		category("section", "Section", "root", 0),
	}
	for i := 0; i < 15; i++ {
		categories = append(categories, category(fmt.Sprintf("leaf-%02d", i), fmt.Sprintf("Leaf %02d", i), "section", i))
	}

	menu, ok := NewBuilder(DefaultOptions()).BuildNavigationMenu(categories, "root")
	require.True(t, ok)
	require.Len(t, menu.Sections, 1)
	require.Len(t, menu.Sections[0].Items, 10)
	for i, item := range menu.Sections[0].Items {
		require.Equal(t, fmt.Sprintf("leaf-%02d", i), item.Slug)
	}
}

func TestBuildNavigationMenuRootFallback(t *testing.T) {
	t.Parallel()

	categories := []domain.Category{
		category("footwear", "Footwear", "", 2),
		category("apparel", "Apparel", "", 1),
	}
	builder := NewBuilder(DefaultOptions())

	women, ok := builder.BuildNavigationMenu(categories, "women")
	require.True(t, ok)
	require.Equal(t, "apparel", women.BaseSlug)

	men, ok := builder.BuildNavigationMenu(categories, "men")
	require.True(t, ok)
	require.Equal(t, "footwear", men.BaseSlug)

	_, ok = builder.BuildNavigationMenu(categories, "kids")
	require.False(t, ok)
}

func TestBuildNavigationMenuSecondaryFallbackOutOfRange(t *testing.T) {
	t.Parallel()

	categories := []domain.Category{category("apparel", "Apparel", "", 1)}

	_, ok := NewBuilder(DefaultOptions()).BuildNavigationMenu(categories, "men")
	require.False(t, ok)
}

func TestBuildNavigationMenuFallbackSkipsClaimedRoots(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(DefaultOptions())

	categories := []domain.Category{
		category("kids", "Kids", "", 0),
		category("women", "Women", "", 1),
	}
	women, ok := builder.BuildNavigationMenu(categories, "women")
	require.True(t, ok)
	require.Equal(t, "women", women.BaseSlug)

	_, ok = builder.BuildNavigationMenu(categories, "men")
	require.False(t, ok, "men must not reuse the root claimed by women")

	categories = []domain.Category{
		category("kids", "Kids", "", 0),
		category("men", "Men", "", 1),
	}
	primary := builder.BuildPrimaryMenus(categories)
	require.Equal(t, "kids", primary["women"].BaseSlug)
	require.Equal(t, "men", primary["men"].BaseSlug)
}

func TestBuildNavigationMenuSectionWithOnlyHiddenChildren(t *testing.T) {
	t.Parallel()

	belts := category("belts", "Belts", "accessories", 1)
	belts.ShowInNavigation = false
	bags := category("bags", "Bags", "accessories", 2)
	bags.ShowInNavigation = false

	categories := []domain.Category{
		category("women", "Women", "", 1),
		category("accessories", "Accessories", "women", 1),
		belts, bags,
	}

	menu, ok := NewBuilder(DefaultOptions()).BuildNavigationMenu(categories, "women")
	require.True(t, ok)
	require.Equal(t, []domain.MenuSection{{
		Title: "ACCESSORIES",
		Items: []domain.MenuItem{{Title: "Accessories", Slug: "accessories"}},
	}}, menu.Sections)
}

func TestBuildNavigationMenuEmptyCatalog(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(DefaultOptions())
	_, ok := builder.BuildNavigationMenu(nil, "women")
	require.False(t, ok)
	require.Empty(t, builder.BuildAllRootMenus(nil))
	require.Empty(t, builder.BuildPrimaryMenus(nil))
}

func TestBuildNavigationMenuDeterministic(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(DefaultOptions())
	first, err := json.Marshal(builder.BuildAllRootMenus(storefrontCatalog()))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := json.Marshal(builder.BuildAllRootMenus(storefrontCatalog()))
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestBuildAllRootMenusKeyedBySlug(t *testing.T) {
	t.Parallel()

	menus := NewBuilder(DefaultOptions()).BuildAllRootMenus(storefrontCatalog())
	require.Len(t, menus, 2)
	require.Equal(t, "Women", menus["women"].Title)
	require.Equal(t, "Men", menus["men"].Title)
}

func TestBuildPrimaryMenusCustomKeys(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(Options{PrimaryKey: "ladies", SecondaryKey: "gents"})
	menus := builder.BuildPrimaryMenus(storefrontCatalog())
	require.Len(t, menus, 2)
	require.Equal(t, "women", menus["ladies"].BaseSlug)
	require.Equal(t, "men", menus["gents"].BaseSlug)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", PlainText("   "))
	require.Equal(t, "Soft cotton tees", PlainText("  Soft   cotton\n tees "))
	require.Equal(t, "New season picks", PlainText("<div><h2>New season</h2><script>x()</script> picks</div>"))
}
