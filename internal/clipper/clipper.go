// Package clipper imports recipes from the web. It fetches a page, looks
// for schema.org Recipe structured data (JSON-LD first, microdata as a
// fallback) and maps it into the catalog's recipe model.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"whiskplan/internal/domain"
)

// ErrNoRecipe is returned when a page carries no recognizable recipe markup.
var ErrNoRecipe = fmt.Errorf("no recipe structured data found")

// Clipper fetches and extracts recipes from URLs.
type Clipper struct {
	client *http.Client
}

func New() *Clipper {
	return &Clipper{client: &http.Client{Timeout: 15 * time.Second}}
}

// ClipURL fetches the URL and extracts its recipe. The returned recipe has
// a fresh id and DateAdded stamp and is ready to be added to the catalog.
func (c *Clipper) ClipURL(ctx context.Context, url string) (domain.Recipe, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	return Extract(doc, url)
}

// Extract pulls a recipe out of an already-parsed document.
func Extract(doc *goquery.Document, url string) (domain.Recipe, error) {
	raw, ok := findJSONLD(doc)
	if !ok {
		raw, ok = findMicrodata(doc)
	}
	if !ok {
		return domain.Recipe{}, fmt.Errorf("%w at %s", ErrNoRecipe, url)
	}

	rec := raw.toRecipe()
	rec.ID = domain.NewID()
	rec.SourceURL = url
	rec.DateAdded = domain.Timestamp()
	if rec.Title == "" {
		rec.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return rec, nil
}

func (c *Clipper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	doc.Find("script:not([type='application/ld+json']), style, nav, footer, iframe").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return doc, nil
}

// rawRecipe mirrors the schema.org Recipe fields we care about. Several
// fields appear in the wild as either a scalar or an array, so they decode
// through tolerant wrapper types.
type rawRecipe struct {
	Type         flexStrings   `json:"@type"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Image        flexStrings   `json:"image"`
	Yield        flexStrings   `json:"recipeYield"`
	PrepTime     string        `json:"prepTime"`
	CookTime     string        `json:"cookTime"`
	TotalTime    string        `json:"totalTime"`
	Ingredients  flexStrings   `json:"recipeIngredient"`
	Instructions []instruction `json:"recipeInstructions"`
	Cuisine      flexStrings   `json:"recipeCuisine"`
	Keywords     flexStrings   `json:"keywords"`
	Nutrition    *rawNutrition `json:"nutrition"`
}

type rawNutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"proteinContent"`
	Carbs    string `json:"carbohydrateContent"`
	Fat      string `json:"fatContent"`
	Fiber    string `json:"fiberContent"`
	Sugar    string `json:"sugarContent"`
	Sodium   string `json:"sodiumContent"`
}

// flexStrings decodes a JSON value that may be a string, number, or array
// of either, into a flat string slice.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flatten(v)
	return nil
}

func flatten(v interface{}) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case []interface{}:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]interface{}:
		// image objects and similar carry the value under "url" or "name"
		if s, ok := t["url"].(string); ok {
			return []string{s}
		}
		if s, ok := t["name"].(string); ok {
			return []string{s}
		}
	}
	return nil
}

// instruction decodes either a plain string or a HowToStep object.
type instruction struct {
	Text string
}

func (in *instruction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		in.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Text != "" {
		in.Text = obj.Text
	} else {
		in.Text = obj.Name
	}
	return nil
}

func (r rawRecipe) isRecipe() bool {
	for _, t := range r.Type {
		if strings.EqualFold(t, "Recipe") {
			return true
		}
	}
	return false
}

// findJSONLD scans ld+json script blocks for a Recipe node, looking inside
// @graph containers and top-level arrays as well.
func findJSONLD(doc *goquery.Document) (rawRecipe, bool) {
	var found rawRecipe
	ok := false
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		for _, candidate := range decodeLD([]byte(s.Text())) {
			if candidate.isRecipe() {
				found, ok = candidate, true
				return false
			}
		}
		return true
	})
	return found, ok
}

func decodeLD(data []byte) []rawRecipe {
	var single struct {
		rawRecipe
		Graph []rawRecipe `json:"@graph"`
	}
	if err := json.Unmarshal(data, &single); err == nil {
		return append([]rawRecipe{single.rawRecipe}, single.Graph...)
	}
	var many []rawRecipe
	if err := json.Unmarshal(data, &many); err == nil {
		return many
	}
	return nil
}

// findMicrodata handles the older itemscope/itemprop markup.
func findMicrodata(doc *goquery.Document) (rawRecipe, bool) {
	scope := doc.Find("[itemtype*='schema.org/Recipe']").First()
	if scope.Length() == 0 {
		return rawRecipe{}, false
	}

	var raw rawRecipe
	raw.Type = flexStrings{"Recipe"}
	raw.Name = strings.TrimSpace(scope.Find("[itemprop='name']").First().Text())
	raw.Description = strings.TrimSpace(scope.Find("[itemprop='description']").First().Text())
	scope.Find("[itemprop='recipeIngredient'], [itemprop='ingredients']").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			raw.Ingredients = append(raw.Ingredients, text)
		}
	})
	scope.Find("[itemprop='recipeInstructions']").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			raw.Instructions = append(raw.Instructions, instruction{Text: text})
		}
	})
	if y := strings.TrimSpace(scope.Find("[itemprop='recipeYield']").First().Text()); y != "" {
		raw.Yield = flexStrings{y}
	}
	return raw, raw.Name != "" || len(raw.Ingredients) > 0
}

func (r rawRecipe) toRecipe() domain.Recipe {
	ready := parseDurationMinutes(r.TotalTime)
	if ready == 0 {
		ready = parseDurationMinutes(r.PrepTime) + parseDurationMinutes(r.CookTime)
	}
	rec := domain.Recipe{
		Title:          strings.TrimSpace(r.Name),
		Description:    strings.TrimSpace(r.Description),
		Servings:       parseServings(r.Yield),
		ReadyInMinutes: ready,
		CuisineTypes:   r.Cuisine,
		DishTypes:      r.Keywords,
	}
	if len(r.Image) > 0 {
		rec.Image = r.Image[0]
	}
	if rec.Servings <= 0 {
		rec.Servings = 1
	}
	for _, line := range r.Ingredients {
		rec.Ingredients = append(rec.Ingredients, parseIngredient(line))
	}
	for _, step := range r.Instructions {
		if text := strings.TrimSpace(step.Text); text != "" {
			rec.Instructions = append(rec.Instructions, text)
		}
	}
	if r.Nutrition != nil {
		rec.NutritionalInfo = &domain.NutritionalInfo{
			Calories: leadingNumber(r.Nutrition.Calories),
			Protein:  leadingNumber(r.Nutrition.Protein),
			Carbs:    leadingNumber(r.Nutrition.Carbs),
			Fat:      leadingNumber(r.Nutrition.Fat),
			Fiber:    leadingNumber(r.Nutrition.Fiber),
			Sugar:    leadingNumber(r.Nutrition.Sugar),
			Sodium:   leadingNumber(r.Nutrition.Sodium),
		}
	}
	return rec
}

var (
	numberRe   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	durationRe = regexp.MustCompile(`(?i)PT(?:(\d+)H)?(?:(\d+)M)?`)
)

func parseServings(yield flexStrings) int {
	for _, y := range yield {
		if m := numberRe.FindString(y); m != "" {
			if n, err := strconv.Atoi(strings.SplitN(m, ".", 2)[0]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// parseDurationMinutes converts an ISO 8601 duration like PT1H30M to
// minutes. Unparseable input yields zero.
func parseDurationMinutes(iso string) int {
	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

func leadingNumber(s string) float64 {
	m := numberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	return v
}

// knownUnits covers the measurement words ingredient lines typically lead
// with. Anything else is treated as part of the ingredient name.
var knownUnits = map[string]string{
	"cup": "cup", "cups": "cups",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp",
	"gram": "g", "grams": "g", "g": "g",
	"kilogram": "kg", "kilograms": "kg", "kg": "kg",
	"ounce": "oz", "ounces": "oz", "oz": "oz",
	"pound": "lb", "pounds": "lb", "lb": "lb", "lbs": "lb",
	"milliliter": "ml", "milliliters": "ml", "ml": "ml",
	"liter": "l", "liters": "l", "l": "l",
	"pinch": "pinch", "clove": "clove", "cloves": "cloves",
	"slice": "slice", "slices": "slices",
	"can": "can", "cans": "cans",
}

// parseIngredient best-effort-parses a free-text line like "2 cups flour"
// into amount, unit and name, keeping the original text either way.
func parseIngredient(line string) domain.Ingredient {
	ing := domain.Ingredient{
		ID:       domain.NewID(),
		Name:     strings.TrimSpace(line),
		Original: strings.TrimSpace(line),
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ing
	}
	amount, ok := parseAmount(fields[0])
	if !ok {
		return ing
	}
	ing.Amount = amount
	rest := fields[1:]

	if unit, ok := knownUnits[strings.ToLower(rest[0])]; ok && len(rest) > 1 {
		ing.Unit = unit
		rest = rest[1:]
	}
	ing.Name = strings.Join(rest, " ")
	return ing
}

// parseAmount accepts decimals ("1.5") and simple fractions ("1/2").
func parseAmount(token string) (float64, bool) {
	if num, den, ok := strings.Cut(token, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d, true
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
