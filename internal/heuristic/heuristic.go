// Package heuristic pulls recipe fields out of pages that carry no
// structured data. Every field is probed with an ordered list of selector
// patterns, most semantically specific first, and the first non-trivial
// match wins.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipeclip/internal/recipe"
)

// Extraction is the best-effort output of a heuristic pass. Fields default
// to empty; the extractor itself never fails.
type Extraction struct {
	Title           string
	Caption         string
	Image           string
	Tags            []string
	IngredientLines []string
	Steps           []string
}

const (
	minTitleLength   = 4
	minCaptionLength = 11
	minStepLength    = 10
)

// textProbe returns one candidate string from the document, or "".
type textProbe func(*goquery.Document) string

// listProbe returns candidate list entries from the document.
type listProbe func(*goquery.Document) []string

var titleProbes = []textProbe{
	selectionText(`[itemprop="name"]`),
	selectionText(`.recipe-title`),
	selectionText(`.entry-title`),
	selectionText(`h1.title`),
	selectionText(`h1`),
	selectionText(`title`),
}

var captionProbes = []textProbe{
	metaContent(`meta[name="description"]`),
	metaContent(`meta[property="og:description"]`),
	selectionText(`[itemprop="description"]`),
	selectionText(`.recipe-description`),
	selectionText(`.recipe-summary`),
	selectionText(`.summary`),
}

var ingredientProbes = []listProbe{
	selectionTexts(`[itemprop="recipeIngredient"]`),
	selectionTexts(`[itemprop="ingredients"]`),
	selectionTexts(`.recipe-ingredients li`),
	selectionTexts(`.ingredient-list li`),
	selectionTexts(`.ingredients li`),
	selectionTexts(`ul.ingredients li`),
	selectionTexts(`li.ingredient`),
}

var stepProbes = []listProbe{
	selectionTexts(`[itemprop="recipeInstructions"] li`),
	selectionTexts(`.recipe-instructions li`),
	selectionTexts(`.recipe-directions li`),
	selectionTexts(`.instructions li`),
	selectionTexts(`.directions li`),
	selectionTexts(`.method li`),
	selectionTexts(`ol li`),
}

// tagSelectors are collected rather than short-circuited: category and
// cuisine markers plus explicit tag links all contribute.
var tagSelectors = []string{
	`[itemprop="recipeCategory"]`,
	`[itemprop="recipeCuisine"]`,
	`.recipe-category a`,
	`.category a`,
	`a[rel="tag"]`,
	`.tags a`,
}

var ordinalPrefixRe = regexp.MustCompile(`^\s*\d+\s*[.)]\s*`)

// Extract probes the document for every recipe field and returns whatever
// it finds.
func Extract(doc *goquery.Document, sourceURL string) Extraction {
	return Extraction{
		Title:           firstText(doc, titleProbes, minTitleLength),
		Caption:         firstText(doc, captionProbes, minCaptionLength),
		Image:           DiscoverImage(doc, sourceURL),
		Tags:            extractTags(doc),
		IngredientLines: firstList(doc, ingredientProbes),
		Steps:           extractSteps(doc),
	}
}

// firstText runs probes in priority order and keeps the first value longer
// than the trivial threshold.
func firstText(doc *goquery.Document, probes []textProbe, minLen int) string {
	for _, probe := range probes {
		if s := probe(doc); len(s) >= minLen {
			return s
		}
	}
	return ""
}

// firstList stops at the first probe yielding one or more entries. Results
// from different probes are never merged.
func firstList(doc *goquery.Document, probes []listProbe) []string {
	for _, probe := range probes {
		if items := probe(doc); len(items) > 0 {
			return items
		}
	}
	return nil
}

func extractSteps(doc *goquery.Document) []string {
	var steps []string
	for _, raw := range firstList(doc, stepProbes) {
		s := strings.TrimSpace(ordinalPrefixRe.ReplaceAllString(raw, ""))
		if len(s) >= minStepLength {
			steps = append(steps, s)
		}
	}
	return steps
}

func extractTags(doc *goquery.Document) []string {
	seen := map[string]bool{}
	var tags []string
	for _, sel := range tagSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			tag := normalizeSpace(s.Text())
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				return
			}
			seen[key] = true
			tags = append(tags, tag)
		})
	}
	return recipe.TruncateTags(tags)
}

func selectionText(selector string) textProbe {
	return func(doc *goquery.Document) string {
		return normalizeSpace(doc.Find(selector).First().Text())
	}
}

func metaContent(selector string) textProbe {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return normalizeSpace(content)
	}
}

func selectionTexts(selector string) listProbe {
	return func(doc *goquery.Document) []string {
		var items []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if t := normalizeSpace(s.Text()); t != "" {
				items = append(items, t)
			}
		})
		return items
	}
}

var spaceRe = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
