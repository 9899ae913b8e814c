// Package recipes owns the recipe catalog: the recipes themselves plus
// favorites, ratings, view history and the search-result cache.
package recipes

import "whiskplan/internal/domain"

// Cache holds caller-managed search results keyed by query string.
type Cache struct {
	SearchResults map[string][]string `json:"searchResults"`
	LastUpdated   map[string]string   `json:"lastUpdated"`
}

// State is the recipe store's full persisted state.
type State struct {
	Recipes        map[string]domain.Recipe       `json:"recipes"`
	Favorites      []string                       `json:"favorites"`
	SearchHistory  []domain.SearchQuery           `json:"searchHistory"`
	Ratings        map[string]domain.RecipeRating `json:"ratings"`
	RecentlyViewed []string                       `json:"recentlyViewed"`
	Cache          Cache                          `json:"cache"`
}

// DefaultState returns the empty state used when nothing has been persisted.
func DefaultState() State {
	return State{
		Recipes: make(map[string]domain.Recipe),
		Ratings: make(map[string]domain.RecipeRating),
		Cache: Cache{
			SearchResults: make(map[string][]string),
			LastUpdated:   make(map[string]string),
		},
	}
}
