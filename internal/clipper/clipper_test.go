package clipper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

const jsonLDPage = `<html><head><title>Fallback Title</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Classic Pancakes",
  "description": "Fluffy weekend pancakes.",
  "image": ["https://example.com/pancakes.jpg"],
  "recipeYield": "4 servings",
  "prepTime": "PT10M",
  "cookTime": "PT20M",
  "recipeCuisine": "American",
  "recipeIngredient": ["2 cups flour", "1/2 tsp salt", "1.5 cups milk", "butter for the pan"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Mix the dry ingredients."},
    "Add milk and whisk.",
    {"@type": "HowToStep", "name": "Cook until golden."}
  ],
  "nutrition": {
    "@type": "NutritionInformation",
    "calories": "240 calories",
    "proteinContent": "7 g",
    "carbohydrateContent": "38 g",
    "fatContent": "6 g",
    "sodiumContent": "410 mg"
  }
}
</script></head><body></body></html>`

func TestExtractJSONLD(t *testing.T) {
	rec, err := Extract(docFromHTML(t, jsonLDPage), "https://example.com/r")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.Title != "Classic Pancakes" {
		t.Errorf("Expected title Classic Pancakes, got %q", rec.Title)
	}
	if rec.Servings != 4 {
		t.Errorf("Expected 4 servings, got %d", rec.Servings)
	}
	if rec.ReadyInMinutes != 30 {
		t.Errorf("Expected 30 minutes from prep+cook, got %d", rec.ReadyInMinutes)
	}
	if rec.Image != "https://example.com/pancakes.jpg" {
		t.Errorf("Expected image URL, got %q", rec.Image)
	}
	if rec.SourceURL != "https://example.com/r" {
		t.Errorf("Expected source URL recorded, got %q", rec.SourceURL)
	}
	if rec.ID == "" || rec.DateAdded == "" {
		t.Error("Expected fresh id and DateAdded stamp")
	}

	if len(rec.Instructions) != 3 {
		t.Fatalf("Expected 3 instructions, got %d", len(rec.Instructions))
	}
	if rec.Instructions[2] != "Cook until golden." {
		t.Errorf("Expected HowToStep name fallback, got %q", rec.Instructions[2])
	}

	if rec.NutritionalInfo == nil {
		t.Fatal("Expected nutrition parsed")
	}
	if rec.NutritionalInfo.Calories != 240 || rec.NutritionalInfo.Sodium != 410 {
		t.Errorf("Expected calories 240 and sodium 410, got %+v", rec.NutritionalInfo)
	}
}

func TestExtractIngredientParsing(t *testing.T) {
	rec, err := Extract(docFromHTML(t, jsonLDPage), "https://example.com/r")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rec.Ingredients) != 4 {
		t.Fatalf("Expected 4 ingredients, got %d", len(rec.Ingredients))
	}

	flour := rec.Ingredients[0]
	if flour.Amount != 2 || flour.Unit != "cups" || flour.Name != "flour" {
		t.Errorf("Expected 2 cups flour, got %+v", flour)
	}
	if flour.Original != "2 cups flour" {
		t.Errorf("Expected original text kept, got %q", flour.Original)
	}

	salt := rec.Ingredients[1]
	if salt.Amount != 0.5 || salt.Unit != "tsp" || salt.Name != "salt" {
		t.Errorf("Expected 0.5 tsp salt from the fraction, got %+v", salt)
	}

	milk := rec.Ingredients[2]
	if milk.Amount != 1.5 || milk.Unit != "cups" {
		t.Errorf("Expected 1.5 cups milk, got %+v", milk)
	}

	// No leading number: the whole line stays as the name.
	butter := rec.Ingredients[3]
	if butter.Name != "butter for the pan" || butter.Amount != 0 {
		t.Errorf("Expected unparsed line kept verbatim, got %+v", butter)
	}
}

func TestExtractGraphContainer(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@context": "https://schema.org", "@graph": [
	  {"@type": "WebSite", "name": "Some Blog"},
	  {"@type": "Recipe", "name": "Graph Soup", "recipeYield": 2,
	   "recipeIngredient": ["1 onion"]}
	]}
	</script></head><body></body></html>`

	rec, err := Extract(docFromHTML(t, html), "https://example.com/g")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rec.Title != "Graph Soup" {
		t.Errorf("Expected recipe found inside @graph, got %q", rec.Title)
	}
	if rec.Servings != 2 {
		t.Errorf("Expected numeric yield parsed, got %d", rec.Servings)
	}
}

func TestExtractMicrodataFallback(t *testing.T) {
	html := `<html><body>
	<div itemscope itemtype="https://schema.org/Recipe">
	  <h1 itemprop="name">Microdata Muffins</h1>
	  <span itemprop="recipeYield">12 muffins</span>
	  <li itemprop="recipeIngredient">3 cups flour</li>
	  <li itemprop="recipeIngredient">1 cup sugar</li>
	  <p itemprop="recipeInstructions">Mix and bake.</p>
	</div></body></html>`

	rec, err := Extract(docFromHTML(t, html), "https://example.com/m")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rec.Title != "Microdata Muffins" {
		t.Errorf("Expected microdata title, got %q", rec.Title)
	}
	if rec.Servings != 12 {
		t.Errorf("Expected 12 servings, got %d", rec.Servings)
	}
	if len(rec.Ingredients) != 2 {
		t.Errorf("Expected 2 ingredients, got %d", len(rec.Ingredients))
	}
}

func TestExtractNoRecipe(t *testing.T) {
	html := `<html><head><title>Just a Blog Post</title></head><body><p>No recipe here.</p></body></html>`
	if _, err := Extract(docFromHTML(t, html), "https://example.com/none"); err == nil {
		t.Fatal("Expected an error for a page without recipe markup")
	}
}

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		iso  string
		want int
	}{
		{"PT30M", 30},
		{"PT1H", 60},
		{"PT1H30M", 90},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := parseDurationMinutes(tc.iso); got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.iso, tc.want, got)
		}
	}
}
