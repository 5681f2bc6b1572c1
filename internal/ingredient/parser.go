package ingredient

import (
	"regexp"
	"strings"
)

// Parsed is the decomposition of one free-text ingredient line.
type Parsed struct {
	Name    string
	Amount  string
	Details string

	// Alternatives holds substitution suggestions found in the line
	// ("pasta like shells, rigatoni, or bowtie"). They are parsed but not
	// yet part of the outward-facing ingredient record.
	Alternatives []string
}

// unitWords is the fixed measurement vocabulary, including common
// abbreviations and plurals.
var unitWords = map[string]bool{
	"cup": true, "cups": true,
	"tbsp": true, "tbsps": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "tsps": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"g": true, "gram": true, "grams": true,
	"kg": true, "kilogram": true, "kilograms": true,
	"mg": true, "ml": true, "milliliter": true, "milliliters": true,
	"l": true, "liter": true, "liters": true, "litre": true, "litres": true,
	"qt": true, "quart": true, "quarts": true,
	"pt": true, "pint": true, "pints": true,
	"gal": true, "gallon": true, "gallons": true,
	"pinch": true, "pinches": true, "dash": true, "dashes": true,
	"clove": true, "cloves": true,
	"can": true, "cans": true,
	"slice": true, "slices": true,
	"stick": true, "sticks": true,
	"bunch": true, "bunches": true,
	"package": true, "packages": true, "pkg": true,
	"piece": true, "pieces": true,
	"head": true, "heads": true,
	"sprig": true, "sprigs": true,
	"stalk": true, "stalks": true,
	"handful": true, "handfuls": true,
	"degrees": true, "fahrenheit": true, "celsius": true,
}

// prepWords mark preparation methods that go into the details field.
var prepWords = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"grated": true, "shredded": true, "peeled": true, "crushed": true,
	"melted": true, "softened": true, "beaten": true, "sifted": true,
	"drained": true, "rinsed": true, "toasted": true, "roasted": true,
	"cooked": true, "cubed": true, "julienned": true, "trimmed": true,
	"halved": true, "quartered": true, "zested": true, "juiced": true,
	"divided": true, "thawed": true, "whisked": true, "mashed": true,
	"crumbled": true, "packed": true,
	"fresh": true, "frozen": true, "optional": true,
}

// descriptorWords are adjectives that stay attached to the name. A word
// present in both vocabularies counts as preparation because prepWords is
// checked first.
var descriptorWords = map[string]bool{
	"fresh": true, "organic": true, "ripe": true,
	"large": true, "small": true, "medium": true, "jumbo": true, "baby": true,
	"whole": true, "raw": true, "lean": true,
	"sweet": true, "hot": true, "cold": true, "warm": true,
	"unsalted": true, "salted": true,
	"boneless": true, "skinless": true,
	"light": true, "dark": true, "dried": true, "ground": true,
	"thick": true, "thin": true, "extra-virgin": true,
}

var (
	quantityRe = regexp.MustCompile(`[0-9¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞][0-9\s/.¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞-]*`)
	altCueRe   = regexp.MustCompile(`(?i)\b(such as|like|preferably|or)\b`)
	orSplitRe  = regexp.MustCompile(`(?i)\bor\b`)
)

// ParseLine decomposes one free-text ingredient line into amount, name and
// preparation details. It never fails: a line that resists decomposition
// comes back whole in Name.
func ParseLine(line string) Parsed {
	working := strings.TrimSpace(line)

	amount, working := extractAmount(working)
	alternatives, working := extractAlternatives(working)

	var nameTokens, detailTokens []string
	seen := map[string]bool{}
	for _, tok := range strings.Fields(working) {
		word := strings.Trim(tok, ",.;:()")
		key := strings.ToLower(word)
		if word == "" || seen[key] {
			continue
		}
		seen[key] = true
		switch {
		case prepWords[key]:
			detailTokens = append(detailTokens, word)
		case descriptorWords[key]:
			nameTokens = append(nameTokens, word)
		default:
			nameTokens = append(nameTokens, word)
		}
	}

	name := strings.Join(nameTokens, " ")
	if name == "" {
		name = strings.TrimSpace(line)
	}

	return Parsed{
		Name:         name,
		Amount:       amount,
		Details:      strings.Join(detailTokens, " "),
		Alternatives: alternatives,
	}
}

// extractAmount pulls the first quantity run (digits, spaces, slashes and
// fraction glyphs) plus an immediately following unit word out of the line.
func extractAmount(s string) (string, string) {
	loc := quantityRe.FindStringIndex(s)
	if loc == nil {
		return "", s
	}

	qty := strings.TrimSpace(s[loc[0]:loc[1]])
	before := strings.TrimSpace(s[:loc[0]])
	after := strings.TrimSpace(s[loc[1]:])

	amount := qty
	if fields := strings.Fields(after); len(fields) > 0 {
		unit := strings.Trim(fields[0], ".,")
		if unitWords[strings.ToLower(unit)] {
			amount = qty + " " + unit
			after = strings.TrimSpace(strings.TrimPrefix(after, fields[0]))
		}
	}

	rest := strings.TrimSpace(before + " " + after)
	return amount, rest
}

// extractAlternatives removes a substitution phrase ("like X, Y or Z") from
// the line and returns the suggested alternatives it named.
func extractAlternatives(s string) ([]string, string) {
	loc := altCueRe.FindStringIndex(s)
	if loc == nil {
		return nil, s
	}

	tail := orSplitRe.ReplaceAllString(s[loc[1]:], ",")
	var alts []string
	for _, part := range strings.Split(tail, ",") {
		if p := strings.Trim(part, " .,;"); p != "" {
			alts = append(alts, p)
		}
	}

	return alts, strings.TrimSpace(s[:loc[0]])
}
