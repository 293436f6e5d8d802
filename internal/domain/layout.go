package domain

// CardShape is a fixed presentational slot for a collection.
type CardShape string

const (
	CardShapeHero      CardShape = "hero"
	CardShapeMedium    CardShape = "medium"
	CardShapeGrid      CardShape = "grid"
	CardShapeSpotlight CardShape = "spotlight"
)

func (s CardShape) String() string {
	return string(s)
}

// LayoutCard places one collection into a card shape. Priority marks eager
// image loading and is only ever set on the first hero.
type LayoutCard struct {
	Shape      CardShape  `json:"shape"`
	Collection Collection `json:"collection"`
	Priority   bool       `json:"priority,omitempty"`
}

// ViewAllMarker reports how many collections were left out of the cards.
type ViewAllMarker struct {
	Remaining int `json:"remaining"`
}

type LayoutPlan struct {
	Empty   bool           `json:"empty"`
	Cards   []LayoutCard   `json:"cards"`
	ViewAll *ViewAllMarker `json:"view_all,omitempty"`
}

// Shapes returns the card shape sequence of the plan.
func (p LayoutPlan) Shapes() []CardShape {
	shapes := make([]CardShape, 0, len(p.Cards))
	for _, card := range p.Cards {
		shapes = append(shapes, card.Shape)
	}
	return shapes
}

// CollectionsIn returns the collections placed in cards of the given shape, in order.
func (p LayoutPlan) CollectionsIn(shape CardShape) []Collection {
	var out []Collection
	for _, card := range p.Cards {
		if card.Shape == shape {
			out = append(out, card.Collection)
		}
	}
	return out
}
