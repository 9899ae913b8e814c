package domain

// Ingredient is a single recipe ingredient. Name and Unit together key
// shopping-list aggregation; Original keeps the free-text form for display.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"originalString"`
}

// NutritionalInfo holds per-recipe nutrition at the recipe's native
// serving count. Grams throughout except Calories and Sodium (mg).
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Recipe is the catalog entry owned by the recipe store. The plan engine
// only ever references recipes by ID and treats them as read-only.
type Recipe struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Image           string           `json:"image,omitempty"`
	Servings        int              `json:"servings"`
	ReadyInMinutes  int              `json:"readyInMinutes"`
	Instructions    []string         `json:"instructions"`
	Ingredients     []Ingredient     `json:"ingredients"`
	CuisineTypes    []string         `json:"cuisineTypes"`
	DishTypes       []string         `json:"dishTypes"`
	Diets           []string         `json:"diets"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	PricePerServing float64          `json:"pricePerServing,omitempty"`
	SourceURL       string           `json:"sourceUrl,omitempty"`
	SourceName      string           `json:"sourceName,omitempty"`
	DateAdded       string           `json:"dateAdded"`
	LastViewed      string           `json:"lastViewed,omitempty"`
}

// RecipeRating is a single 1-5 rating. One rating per recipe; the latest
// overwrites any earlier one.
type RecipeRating struct {
	RecipeID  string `json:"recipeId"`
	Rating    int    `json:"rating"`
	Review    string `json:"review,omitempty"`
	DateRated string `json:"dateRated"`
}

// SearchQuery records a free-text search and its filters for history and
// for keying the search-result cache.
type SearchQuery struct {
	Query     string        `json:"query"`
	Filters   SearchFilters `json:"filters"`
	Timestamp string        `json:"timestamp"`
}

// SearchFilters narrows a recipe search. Zero values mean "no constraint".
type SearchFilters struct {
	Cuisines     []string `json:"cuisines,omitempty"`
	Diets        []string `json:"diets,omitempty"`
	Intolerances []string `json:"intolerances,omitempty"`
	MaxReadyTime int      `json:"maxReadyTime,omitempty"`
	MinCalories  int      `json:"minCalories,omitempty"`
	MaxCalories  int      `json:"maxCalories,omitempty"`
	MaxPrice     float64  `json:"maxPrice,omitempty"`
}
