package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recipeclip/internal/heuristic"
	"recipeclip/internal/llm"
	"recipeclip/internal/recipe"
)

// maxPromptChars bounds how much page text goes into the model prompt.
const maxPromptChars = 8000

// noiseSelectors name the parts of a page that never carry recipe content.
// Stripping them saves model tokens.
const noiseSelectors = "script, style, nav, header, footer, aside, iframe, form, noscript, .ads, #ads, .ad, .sidebar, .nav, .menu, .footer, .comments"

// AIExtractor is the fallback path: it sends cleaned page text to a
// language model and defensively parses the response. It is invoked only
// when the fast parser's output fails validation.
type AIExtractor struct {
	textGen llm.TextGenerator
}

// NewAIExtractor creates an AIExtractor backed by the given text generator.
func NewAIExtractor(textGen llm.TextGenerator) *AIExtractor {
	return &AIExtractor{textGen: textGen}
}

// Extract asks the model for a structured recipe. It fails with an
// *ExtractionError when no parseable JSON can be recovered from the
// response; a plain error means the model call itself failed.
func (a *AIExtractor) Extract(ctx context.Context, html, sourceURL string) (*recipe.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	text := CleanPageText(doc)
	suggestedImage := heuristic.DiscoverImage(doc, sourceURL)

	prompt := buildPrompt(text, suggestedImage, time.Now().UTC())

	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	result, err := parseModelResponse(resp)
	if err != nil {
		return nil, err
	}

	// The model is asked for parallel ingredient/grocery structures but is
	// not trusted to keep them parallel.
	if len(result.GroceryItems) != len(result.Ingredients) {
		log.Printf("extract: model returned %d grocery items for %d ingredients, reprojecting",
			len(result.GroceryItems), len(result.Ingredients))
		result.GroceryItems = recipe.GroceryItems(result.Ingredients)
	}
	result.Recipe.Tags = recipe.TruncateTags(result.Recipe.Tags)

	return result, nil
}

// CleanPageText strips non-content elements from the document, collapses
// whitespace, and truncates to the prompt budget.
func CleanPageText(doc *goquery.Document) string {
	doc.Find(noiseSelectors).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.TrimSpace(collapseRe.ReplaceAllString(doc.Find("body").Text(), " "))
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	return text
}

var collapseRe = regexp.MustCompile(`\s+`)

func buildPrompt(pageText, suggestedImage string, now time.Time) string {
	ts := now.Format(time.RFC3339)
	return fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe from the following page text.
Return the result strictly as a single JSON object with this exact structure:
{
  "recipe": {
    "title": "Recipe Title",
    "image": %q,
    "caption": "One or two sentence description",
    "tags": ["tag1", "tag2", "tag3"],
    "steps": ["Step 1 description", "Step 2 description"],
    "createdAt": %q
  },
  "ingredients": [
    {"name": "ingredient name", "amount": "quantity with unit", "details": "preparation notes", "createdAt": %q}
  ],
  "groceryItems": [
    {"name": "ingredient name", "amount": "quantity with unit", "details": "preparation notes", "aisle": "", "purchased": false, "createdAt": %q}
  ]
}

Rules:
- groceryItems must mirror ingredients one-to-one, with aisle "" and purchased false.
- Use at most 3 tags.
- Keep "image" and "createdAt" exactly as given above unless the page names a better image.
- Return ONLY the raw JSON object. Do not wrap the response in markdown code blocks.

Page text:
%s
`, suggestedImage, ts, ts, ts, pageText)
}

// parseModelResponse recovers an ExtractionResult from a possibly-mangled
// model response: direct parse first, the repair chain second.
func parseModelResponse(resp string) (*recipe.ExtractionResult, error) {
	raw, ok := sliceJSONObject(resp)
	if !ok {
		return nil, &ExtractionError{Raw: resp, Err: fmt.Errorf("no JSON object in response")}
	}

	var result recipe.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &result); err == nil {
		return &result, nil
	}

	repaired := repairJSON(raw)
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, &ExtractionError{Raw: raw, Repaired: repaired, Err: err}
	}
	return &result, nil
}
