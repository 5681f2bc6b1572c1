package heuristic

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse test HTML: %v", err)
	}
	return d
}

func TestExtract(t *testing.T) {
	t.Run("BareHeadingAndIngredientList", func(t *testing.T) {
		html := `<html><body>
			<h1>Garlic Rice</h1>
			<ul class="ingredients">
				<li>2 cups rice</li>
				<li>4 cloves garlic</li>
				<li>1 tbsp butter</li>
			</ul>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com/garlic-rice")

		if ex.Title != "Garlic Rice" {
			t.Errorf("Expected title 'Garlic Rice', got '%s'", ex.Title)
		}
		if len(ex.IngredientLines) != 3 {
			t.Fatalf("Expected 3 ingredient lines, got %d", len(ex.IngredientLines))
		}
	})

	t.Run("SpecificSelectorBeatsGeneric", func(t *testing.T) {
		html := `<html><body>
			<h1>My Food Blog</h1>
			<div class="recipe-title">Lemon Bars</div>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if ex.Title != "Lemon Bars" {
			t.Errorf("Expected the recipe-title marker to win, got '%s'", ex.Title)
		}
	})

	t.Run("TrivialTitleSkipped", func(t *testing.T) {
		html := `<html><head><title>Slow Cooker Chili</title></head><body><h1>Hi</h1></body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if ex.Title != "Slow Cooker Chili" {
			t.Errorf("Expected fallthrough past the 2-char h1, got '%s'", ex.Title)
		}
	})

	t.Run("ListProbesDoNotMerge", func(t *testing.T) {
		html := `<html><body>
			<ul class="recipe-ingredients"><li>1 cup flour</li></ul>
			<ul class="ingredients"><li>should not appear</li></ul>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if len(ex.IngredientLines) != 1 {
			t.Fatalf("Expected 1 line from the first matching probe, got %d", len(ex.IngredientLines))
		}
		if ex.IngredientLines[0] != "1 cup flour" {
			t.Errorf("Unexpected line '%s'", ex.IngredientLines[0])
		}
	})

	t.Run("StepsStripOrdinalsAndNoise", func(t *testing.T) {
		html := `<html><body>
			<div class="instructions">
				<li>1. Heat the oil in a large pan</li>
				<li>2) Stir</li>
				<li>3. Simmer for twenty minutes</li>
			</div>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if len(ex.Steps) != 2 {
			t.Fatalf("Expected 2 steps after noise filtering, got %d: %v", len(ex.Steps), ex.Steps)
		}
		if ex.Steps[0] != "Heat the oil in a large pan" {
			t.Errorf("Expected ordinal prefix stripped, got '%s'", ex.Steps[0])
		}
	})

	t.Run("TagsDedupedAndCapped", func(t *testing.T) {
		html := `<html><body>
			<span itemprop="recipeCategory">Dinner</span>
			<div class="tags">
				<a>dinner</a><a>Quick</a><a>Vegan</a><a>Budget</a>
			</div>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if len(ex.Tags) != 3 {
			t.Fatalf("Expected 3 tags, got %d: %v", len(ex.Tags), ex.Tags)
		}
		if ex.Tags[0] != "Dinner" {
			t.Errorf("Expected 'Dinner' first, got '%s'", ex.Tags[0])
		}
	})

	t.Run("CaptionNeedsLength", func(t *testing.T) {
		html := `<html><head>
			<meta name="description" content="short">
		</head><body>
			<p class="recipe-description">A rich and hearty stew for cold evenings.</p>
		</body></html>`

		ex := Extract(doc(t, html), "https://example.com")
		if ex.Caption != "A rich and hearty stew for cold evenings." {
			t.Errorf("Expected the longer description to win, got '%s'", ex.Caption)
		}
	})
}

func TestDiscoverImage(t *testing.T) {
	t.Run("OpenGraphPreferred", func(t *testing.T) {
		html := `<html><head>
			<meta property="og:image" content="https://cdn.example.com/og.jpg">
		</head><body>
			<img class="recipe-photo" src="/local.jpg">
		</body></html>`

		got := DiscoverImage(doc(t, html), "https://example.com/r")
		if got != "https://cdn.example.com/og.jpg" {
			t.Errorf("Expected og:image, got '%s'", got)
		}
	})

	t.Run("RelativePathResolved", func(t *testing.T) {
		html := `<html><body><img class="hero-shot" src="/images/pie.jpg"></body></html>`

		got := DiscoverImage(doc(t, html), "https://example.com/recipes/pie")
		if got != "https://example.com/images/pie.jpg" {
			t.Errorf("Expected resolved absolute URL, got '%s'", got)
		}
	})

	t.Run("NothingFound", func(t *testing.T) {
		html := `<html><body><img src="/plain.jpg"></body></html>`

		if got := DiscoverImage(doc(t, html), "https://example.com"); got != "" {
			t.Errorf("Expected empty, got '%s'", got)
		}
	})
}
