package recipe_test

import (
	"context"
	"path/filepath"
	"testing"

	"recipeclip/internal/database"
	"recipeclip/internal/recipe"
)

func newTestRepo(t *testing.T) *recipe.Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return recipe.NewRepository(db.SQL)
}

func sampleResult(title string) *recipe.ExtractionResult {
	ingredients := []recipe.Ingredient{{Name: "rice", Amount: "2 cups"}}
	return &recipe.ExtractionResult{
		Recipe:       recipe.Recipe{Title: title, Steps: []string{"Cook the rice"}},
		Ingredients:  ingredients,
		GroceryItems: recipe.GroceryItems(ingredients),
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("SaveAndGet", func(t *testing.T) {
		id, err := repo.Save(ctx, "https://example.com/garlic-rice", sampleResult("Garlic Rice"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		stored, err := repo.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored == nil {
			t.Fatal("Expected stored recipe, got nil")
		}
		if stored.SourceURL != "https://example.com/garlic-rice" {
			t.Errorf("Unexpected source URL: %s", stored.SourceURL)
		}
		if stored.Result.Recipe.Title != "Garlic Rice" {
			t.Errorf("Unexpected title: %s", stored.Result.Recipe.Title)
		}
		if len(stored.Result.Ingredients) != 1 || len(stored.Result.GroceryItems) != 1 {
			t.Errorf("Expected ingredients and grocery items round-tripped, got %+v", stored.Result)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		stored, err := repo.Get(ctx, 9999)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored != nil {
			t.Errorf("Expected nil for missing ID, got %+v", stored)
		}
	})

	t.Run("ListAndCount", func(t *testing.T) {
		if _, err := repo.Save(ctx, "https://example.com/tacos", sampleResult("Tacos")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		stored, err := repo.List(ctx, 10)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(stored) != 2 {
			t.Fatalf("Expected 2 stored recipes, got %d", len(stored))
		}

		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected count 2, got %d", count)
		}
	})
}
