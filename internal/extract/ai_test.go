package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// mockTextGenerator is a mock implementation of llm.TextGenerator.
type mockTextGenerator struct {
	response    string
	shouldError bool
	lastPrompt  string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.shouldError {
		return "", errors.New("model error")
	}
	return m.response, nil
}

const aiTestResponse = `{
	"recipe": {
		"title": "Mock Pie",
		"image": "https://cdn.example.com/pie.jpg",
		"caption": "A pie assembled by a model",
		"tags": ["dessert"],
		"steps": ["Bake until golden"],
		"createdAt": "2024-01-01T00:00:00Z"
	},
	"ingredients": [
		{"name": "apple", "amount": "3", "details": "sliced", "createdAt": "2024-01-01T00:00:00Z"}
	],
	"groceryItems": []
}`

func TestAIExtractor(t *testing.T) {
	ctx := context.Background()
	pageHTML := `<html><body><h1>Pie</h1><p>Some pie content for the model.</p></body></html>`

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{response: aiTestResponse}
		result, err := NewAIExtractor(gen).Extract(ctx, pageHTML, "https://example.com/pie")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Recipe.Title != "Mock Pie" {
			t.Errorf("Expected title 'Mock Pie', got '%s'", result.Recipe.Title)
		}
		// The model returned no grocery items; they are reprojected.
		if len(result.GroceryItems) != 1 {
			t.Fatalf("Expected grocery items reprojected from ingredients, got %d", len(result.GroceryItems))
		}
		if result.GroceryItems[0].Name != "apple" {
			t.Errorf("Expected grocery item 'apple', got '%s'", result.GroceryItems[0].Name)
		}
		if result.GroceryItems[0].Purchased {
			t.Error("Expected grocery item to start unpurchased")
		}
	})

	t.Run("PromptCarriesPageTextAndImage", func(t *testing.T) {
		html := `<html><head>
			<meta property="og:image" content="https://cdn.example.com/suggested.jpg">
			<script>evil()</script>
		</head><body>
			<p>Whisk the eggs thoroughly.</p>
			<footer>Copyright</footer>
		</body></html>`

		gen := &mockTextGenerator{response: aiTestResponse}
		if _, err := NewAIExtractor(gen).Extract(ctx, html, "https://example.com"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !strings.Contains(gen.lastPrompt, "Whisk the eggs thoroughly.") {
			t.Error("Expected page text in the prompt")
		}
		if !strings.Contains(gen.lastPrompt, "https://cdn.example.com/suggested.jpg") {
			t.Error("Expected the suggested image in the prompt")
		}
		if strings.Contains(gen.lastPrompt, "evil()") {
			t.Error("Expected script content stripped from the prompt")
		}
		if strings.Contains(gen.lastPrompt, "Copyright") {
			t.Error("Expected footer content stripped from the prompt")
		}
	})

	t.Run("ModelCallFails", func(t *testing.T) {
		gen := &mockTextGenerator{shouldError: true}
		_, err := NewAIExtractor(gen).Extract(ctx, pageHTML, "https://example.com")
		if err == nil {
			t.Fatal("Expected an error")
		}
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			t.Error("A failed model call must not be reported as an ExtractionError")
		}
	})

	t.Run("IrrecoverableResponse", func(t *testing.T) {
		gen := &mockTextGenerator{response: "there is no recipe here"}
		_, err := NewAIExtractor(gen).Extract(ctx, pageHTML, "https://example.com")

		var extractionErr *ExtractionError
		if !errors.As(err, &extractionErr) {
			t.Fatalf("Expected *ExtractionError, got %v", err)
		}
	})
}

func TestCleanPageText(t *testing.T) {
	t.Run("TruncatesToBudget", func(t *testing.T) {
		long := strings.Repeat("word ", 3000)
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>" + long + "</p></body></html>"))
		if err != nil {
			t.Fatalf("Failed to parse: %v", err)
		}

		text := CleanPageText(doc)
		if len(text) > maxPromptChars {
			t.Errorf("Expected text capped at %d chars, got %d", maxPromptChars, len(text))
		}
	})

	t.Run("CollapsesWhitespace", func(t *testing.T) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>a</p>\n\n\t<p>b</p></body></html>"))
		if err != nil {
			t.Fatalf("Failed to parse: %v", err)
		}

		if text := CleanPageText(doc); strings.Contains(text, "\n") || strings.Contains(text, "  ") {
			t.Errorf("Expected collapsed whitespace, got %q", text)
		}
	})
}
