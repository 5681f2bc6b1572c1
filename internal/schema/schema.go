// Package schema extracts recipes from JSON-LD structured data embedded in
// recipe pages. Structured data is author-provided and machine-targeted, so
// it is trusted over any heuristic when present.
package schema

import (
	"encoding/json"
	"html"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recipeclip/internal/ingredient"
	"recipeclip/internal/recipe"
)

// FindRecipe scans every ld+json block in document order and returns the
// first object typed as a Recipe, or nil when the page carries none.
// Malformed blocks are skipped; one broken script tag must not abort the
// search.
func FindRecipe(doc *goquery.Document) map[string]any {
	var found map[string]any

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			log.Printf("schema: skipping malformed ld+json block: %v", err)
			return true
		}
		if r := recipeFromValue(data); r != nil {
			found = r
			return false
		}
		return true
	})

	return found
}

// recipeFromValue accepts a decoded JSON-LD value directly typed as Recipe,
// an array containing one, or a @graph collection containing one.
func recipeFromValue(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if r := recipeFromValue(item); r != nil {
					return r
				}
			}
		}
	case []any:
		for _, item := range v {
			if r := recipeFromValue(item); r != nil {
				return r
			}
		}
	}
	return nil
}

// isRecipeType handles @type as a single string or an array of strings,
// matching "recipe" case-insensitively as a substring.
func isRecipeType(typeVal any) bool {
	switch t := typeVal.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "recipe")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "recipe") {
				return true
			}
		}
	}
	return false
}

const minStepLength = 5

// Normalize maps a JSON-LD recipe object into an ExtractionResult.
// Ingredient lines run through the ingredient parser; grocery items are the
// 1:1 projection of the parsed ingredients.
func Normalize(obj map[string]any, now time.Time) *recipe.ExtractionResult {
	rec := recipe.Recipe{
		Title:     stringField(obj, "name", "headline"),
		Image:     imageURL(obj["image"]),
		Caption:   stringField(obj, "description"),
		Tags:      tags(obj),
		Steps:     steps(obj["recipeInstructions"]),
		CreatedAt: now,
	}

	var ingredients []recipe.Ingredient
	if lines, ok := obj["recipeIngredient"].([]any); ok {
		for _, line := range lines {
			s, ok := line.(string)
			if !ok {
				continue
			}
			parsed := ingredient.ParseLine(html.UnescapeString(s))
			ingredients = append(ingredients, recipe.Ingredient{
				Name:      parsed.Name,
				Amount:    parsed.Amount,
				Details:   parsed.Details,
				CreatedAt: now,
			})
		}
	}

	return &recipe.ExtractionResult{
		Recipe:       rec,
		Ingredients:  ingredients,
		GroceryItems: recipe.GroceryItems(ingredients),
	}
}

func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			return strings.TrimSpace(html.UnescapeString(v))
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return strings.TrimSpace(html.UnescapeString(s))
				}
			}
		}
	}
	return ""
}

// imageURL resolves the schema.org image field, which appears in the wild
// as a bare string, an array of strings, an array of ImageObjects, or a
// single object carrying url/@id.
func imageURL(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		for _, item := range img {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		if u, ok := img["url"].(string); ok && u != "" {
			return u
		}
		if u, ok := img["@id"].(string); ok && u != "" {
			return u
		}
	}
	return ""
}

func tags(obj map[string]any) []string {
	var out []string
	for _, key := range []string{"recipeCategory", "recipeCuisine"} {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
		}
	}
	return recipe.TruncateTags(out)
}

// steps flattens recipeInstructions. Each entry may be a plain string, an
// object carrying text/description, or a HowToSection whose itemListElement
// holds further entries. Anything else is dropped, as are near-empty strings.
func steps(v any) []string {
	var out []string
	appendStep := func(s string) {
		s = strings.TrimSpace(html.UnescapeString(s))
		if len(s) >= minStepLength {
			out = append(out, s)
		}
	}

	var walk func(any)
	walk = func(v any) {
		switch inst := v.(type) {
		case string:
			appendStep(inst)
		case []any:
			for _, item := range inst {
				walk(item)
			}
		case map[string]any:
			if list, ok := inst["itemListElement"].([]any); ok {
				for _, item := range list {
					walk(item)
				}
				return
			}
			if s, ok := inst["text"].(string); ok {
				appendStep(s)
				return
			}
			if s, ok := inst["description"].(string); ok {
				appendStep(s)
			}
		}
	}
	walk(v)

	return out
}
