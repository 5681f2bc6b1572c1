package recipe

import "time"

// Recipe is the normalized representation of an imported recipe.
type Recipe struct {
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	Tags      []string  `json:"tags"`
	Steps     []string  `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ingredient is a single structured ingredient belonging to a recipe.
type Ingredient struct {
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroceryItem mirrors an ingredient on the shopping list. Aisle assignment
// and purchase state are managed by the shopping-list features downstream;
// at extraction time both start empty.
type GroceryItem struct {
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Details   string    `json:"details"`
	Aisle     string    `json:"aisle"`
	Purchased bool      `json:"purchased"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExtractionResult is the payload produced by one extraction run.
type ExtractionResult struct {
	Recipe       Recipe        `json:"recipe"`
	Ingredients  []Ingredient  `json:"ingredients"`
	GroceryItems []GroceryItem `json:"groceryItems"`
}

// MaxTags caps how many tags a recipe carries so UI consumption stays
// predictable.
const MaxTags = 3

// GroceryItems projects ingredients into grocery items 1:1. The returned
// slice always has the same length as the input.
func GroceryItems(ingredients []Ingredient) []GroceryItem {
	items := make([]GroceryItem, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, GroceryItem{
			Name:      ing.Name,
			Amount:    ing.Amount,
			Details:   ing.Details,
			CreatedAt: ing.CreatedAt,
		})
	}
	return items
}

// TruncateTags returns at most MaxTags tags, preserving order.
func TruncateTags(tags []string) []string {
	if len(tags) > MaxTags {
		return tags[:MaxTags]
	}
	return tags
}
