package plan

import "strings"

// categoryKeywords drives shopping-list classification. First matching
// category wins; order matters.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Produce", []string{
		"lettuce", "tomato", "onion", "garlic", "potato", "carrot",
		"apple", "banana", "spinach", "broccoli",
	}},
	{"Dairy & Eggs", []string{"milk", "cheese", "butter", "yogurt", "cream", "egg"}},
	{"Meat & Seafood", []string{"chicken", "beef", "pork", "fish", "salmon", "shrimp", "turkey"}},
	{"Pantry", []string{"flour", "sugar", "rice", "pasta", "oil", "salt", "pepper", "spice"}},
	{"Frozen", []string{"frozen"}},
	{"Bakery", []string{"bread", "roll", "bagel"}},
	{"Beverages", []string{"juice", "water", "soda", "coffee", "tea"}},
}

// categorizeIngredient classifies an ingredient name by keyword substring
// match. Unmatched ingredients land in "Other".
func categorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, cat := range categoryKeywords {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return "Other"
}
