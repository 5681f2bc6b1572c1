// Package extract composes the extraction pipeline: the fast non-AI path,
// the usability gate, and the model-backed fallback.
package extract

import (
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recipeclip/internal/heuristic"
	"recipeclip/internal/ingredient"
	"recipeclip/internal/recipe"
	"recipeclip/internal/schema"
)

// Source names which extractor produced a result.
type Source string

const (
	SourceSchema    Source = "schema"
	SourceHeuristic Source = "heuristic"
	SourceAI        Source = "ai"
)

// FastParse is the best-effort, non-AI extraction attempt: structured data
// when the page carries it, heuristics otherwise. It returns nil only on an
// unexpected internal failure; parse problems never propagate.
func FastParse(html, sourceURL string) (result *recipe.ExtractionResult, source Source) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract: fast parse panic for %s: %v", sourceURL, r)
			result = nil
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("extract: failed to parse document for %s: %v", sourceURL, err)
		return nil, SourceHeuristic
	}

	now := time.Now().UTC()

	if obj := schema.FindRecipe(doc); obj != nil {
		return schema.Normalize(obj, now), SourceSchema
	}

	return fromHeuristics(heuristic.Extract(doc, sourceURL), now), SourceHeuristic
}

func fromHeuristics(h heuristic.Extraction, now time.Time) *recipe.ExtractionResult {
	ingredients := make([]recipe.Ingredient, 0, len(h.IngredientLines))
	for _, line := range h.IngredientLines {
		parsed := ingredient.ParseLine(line)
		ingredients = append(ingredients, recipe.Ingredient{
			Name:      parsed.Name,
			Amount:    parsed.Amount,
			Details:   parsed.Details,
			CreatedAt: now,
		})
	}

	return &recipe.ExtractionResult{
		Recipe: recipe.Recipe{
			Title:     h.Title,
			Image:     h.Image,
			Caption:   h.Caption,
			Tags:      h.Tags,
			Steps:     h.Steps,
			CreatedAt: now,
		},
		Ingredients:  ingredients,
		GroceryItems: recipe.GroceryItems(ingredients),
	}
}

// Usable decides whether an extraction result is worth returning. A title
// alone is not a recipe, but either ingredients or steps alone is enough;
// some pages only enumerate one.
func Usable(res *recipe.ExtractionResult) bool {
	return res != nil &&
		len(res.Recipe.Title) > 3 &&
		(len(res.Ingredients) > 0 || len(res.Recipe.Steps) > 0)
}
