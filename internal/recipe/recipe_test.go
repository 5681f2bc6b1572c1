package recipe

import (
	"testing"
	"time"
)

func TestGroceryItems(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ingredients := []Ingredient{
		{Name: "rice", Amount: "2 cups", CreatedAt: now},
		{Name: "garlic", Amount: "4 cloves", Details: "minced", CreatedAt: now},
	}

	items := GroceryItems(ingredients)
	if len(items) != len(ingredients) {
		t.Fatalf("Expected %d grocery items, got %d", len(ingredients), len(items))
	}
	for i, item := range items {
		if item.Name != ingredients[i].Name || item.Amount != ingredients[i].Amount || item.Details != ingredients[i].Details {
			t.Errorf("Item %d does not mirror its ingredient: %+v vs %+v", i, item, ingredients[i])
		}
		if item.Aisle != "" || item.Purchased {
			t.Errorf("Item %d should start with empty aisle and unpurchased, got %+v", i, item)
		}
	}

	if items := GroceryItems(nil); len(items) != 0 {
		t.Errorf("Expected empty projection for nil input, got %d items", len(items))
	}
}

func TestTruncateTags(t *testing.T) {
	tags := []string{"dinner", "italian", "pasta", "quick", "weeknight"}
	got := TruncateTags(tags)
	if len(got) != MaxTags {
		t.Fatalf("Expected %d tags, got %d", MaxTags, len(got))
	}
	if got[0] != "dinner" || got[2] != "pasta" {
		t.Errorf("Expected order preserved, got %v", got)
	}

	short := []string{"dinner"}
	if got := TruncateTags(short); len(got) != 1 {
		t.Errorf("Expected short slice untouched, got %v", got)
	}
}
