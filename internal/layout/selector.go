// Package layout arranges the home page collections into card shapes.
package layout

import "storefront/catalog/internal/domain"

const (
	heroSlots = 2
	gridSlots = 4

	// cardLimit is the number of collections that ever get a card; the
	// rest are reported through the view-all marker.
	cardLimit = heroSlots + gridSlots + 1
)

// Select maps the collections onto card shapes purely by position. The
// shape sequence depends only on len(collections).
func Select(collections []domain.Collection) domain.LayoutPlan {
	count := len(collections)
	if count == 0 {
		return domain.LayoutPlan{Empty: true, Cards: []domain.LayoutCard{}}
	}

	cards := make([]domain.LayoutCard, 0, min(count, cardLimit))
	for i := 0; i < min(count, heroSlots); i++ {
		cards = append(cards, domain.LayoutCard{
			Shape:      domain.CardShapeHero,
			Collection: collections[i],
			Priority:   i == 0,
		})
	}

	switch {
	case count == 3:
		cards = append(cards, domain.LayoutCard{Shape: domain.CardShapeMedium, Collection: collections[2]})
	case count > 3:
		for i := heroSlots; i < min(count, heroSlots+gridSlots); i++ {
			cards = append(cards, domain.LayoutCard{Shape: domain.CardShapeGrid, Collection: collections[i]})
		}
	}

	if count >= cardLimit {
		cards = append(cards, domain.LayoutCard{
			Shape:      domain.CardShapeSpotlight,
			Collection: collections[cardLimit-1],
		})
	}

	plan := domain.LayoutPlan{Cards: cards}
	if count > cardLimit {
		plan.ViewAll = &domain.ViewAllMarker{Remaining: count - cardLimit}
	}
	return plan
}
