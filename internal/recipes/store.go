package recipes

import (
	"encoding/json"
	"strings"
	"sync"

	"whiskplan/internal/domain"
	"whiskplan/internal/logger"
)

// StorageKey is the fixed persistence key for the recipe store's snapshot.
const StorageKey = "whiskplan-recipes"

const (
	maxRecentlyViewed = 20
	maxSearchHistory  = 50
)

// Compile-time interface check.
var _ domain.RecipeResolver = (*Store)(nil)

// Store is the authoritative owner of recipe state. All reads are
// synchronous in-memory lookups; every mutation is mirrored to the
// key-value port, where a failure is logged and never rolls back.
type Store struct {
	mu    sync.RWMutex
	state State
	kv    domain.KeyValue
	log   *logger.Logger
}

// NewStore loads the persisted snapshot from kv, falling back to the empty
// default state when the key is absent or unreadable.
func NewStore(kv domain.KeyValue, log *logger.Logger) *Store {
	s := &Store{state: DefaultState(), kv: kv, log: log}

	data, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Error("loading recipe state: %v", err)
		return s
	}
	if ok {
		if err := json.Unmarshal(data, &s.state); err != nil {
			log.Error("decoding recipe state, starting empty: %v", err)
			s.state = DefaultState()
		}
	}
	if s.state.Recipes == nil {
		s.state = DefaultState()
	}
	return s
}

// persist mirrors the current state. Callers hold the lock.
func (s *Store) persist() {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error("encoding recipe state: %v", err)
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.log.Error("persisting recipe state: %v", err)
	}
}

// Add inserts or replaces a recipe.
func (s *Store) Add(rec domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Recipes[rec.ID] = rec
	s.log.Debug("added recipe %s (%q)", rec.ID, rec.Title)
	s.persist()
}

// AddMany inserts or replaces a batch of recipes.
func (s *Store) AddMany(recs []domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		s.state.Recipes[rec.ID] = rec
	}
	s.persist()
}

// Update replaces an existing recipe. Unknown ids are a no-op.
func (s *Store) Update(rec domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Recipes[rec.ID]; !ok {
		return
	}
	s.state.Recipes[rec.ID] = rec
	s.persist()
}

// Remove deletes a recipe and prunes it from favorites and recently-viewed.
// Meal-plan slots referencing the id are left untouched; walks over the plan
// skip unresolvable recipes instead.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Recipes[id]; !ok {
		return
	}
	delete(s.state.Recipes, id)
	s.state.Favorites = without(s.state.Favorites, id)
	s.state.RecentlyViewed = without(s.state.RecentlyViewed, id)
	s.persist()
}

// ToggleFavorite adds the id to favorites, or removes it if present.
func (s *Store) ToggleFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fav := range s.state.Favorites {
		if fav == id {
			s.state.Favorites = without(s.state.Favorites, id)
			s.persist()
			return
		}
	}
	s.state.Favorites = append(s.state.Favorites, id)
	s.persist()
}

// IsFavorite reports whether the id is favorited.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fav := range s.state.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}

// Rate records a rating for a recipe. The latest rating overwrites any
// earlier one.
func (s *Store) Rate(rating domain.RecipeRating) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rating.DateRated == "" {
		rating.DateRated = domain.Timestamp()
	}
	s.state.Ratings[rating.RecipeID] = rating
	s.persist()
}

// Rating returns the recorded rating for a recipe, if any.
func (s *Store) Rating(id string) (domain.RecipeRating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.state.Ratings[id]
	return r, ok
}

// RecordView moves the id to the front of the recently-viewed list, capped
// and de-duplicated, and stamps the recipe's LastViewed.
func (s *Store) RecordView(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewed := without(s.state.RecentlyViewed, id)
	if len(viewed) > maxRecentlyViewed-1 {
		viewed = viewed[:maxRecentlyViewed-1]
	}
	s.state.RecentlyViewed = append([]string{id}, viewed...)

	if rec, ok := s.state.Recipes[id]; ok {
		rec.LastViewed = domain.Timestamp()
		s.state.Recipes[id] = rec
	}
	s.persist()
}

// Resolve implements domain.RecipeResolver.
func (s *Store) Resolve(id string) (domain.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.state.Recipes[id]
	return rec, ok
}

// Get is a convenience alias for Resolve.
func (s *Store) Get(id string) (domain.Recipe, bool) {
	return s.Resolve(id)
}

// Count returns the number of recipes in the catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Recipes)
}

// FavoriteRecipes returns the favorited recipes that still exist.
func (s *Store) FavoriteRecipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Recipe
	for _, id := range s.state.Favorites {
		if rec, ok := s.state.Recipes[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// RecentlyViewedRecipes returns the view history, most recent first.
func (s *Store) RecentlyViewedRecipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Recipe
	for _, id := range s.state.RecentlyViewed {
		if rec, ok := s.state.Recipes[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// AddSearchQuery records a search in the bounded history.
func (s *Store) AddSearchQuery(q domain.SearchQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.state.SearchHistory
	if len(history) > maxSearchHistory-1 {
		history = history[:maxSearchHistory-1]
	}
	s.state.SearchHistory = append([]domain.SearchQuery{q}, history...)
	s.persist()
}

// ClearSearchHistory empties the search history.
func (s *Store) ClearSearchHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchHistory = nil
	s.persist()
}

// CacheSearchResults stores the recipe ids for a query with a timestamp.
func (s *Store) CacheSearchResults(query string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cache.SearchResults[query] = append([]string(nil), ids...)
	s.state.Cache.LastUpdated[query] = domain.Timestamp()
	s.persist()
}

// CachedSearchResults returns the cached ids for a query, if any.
func (s *Store) CachedSearchResults(query string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.state.Cache.SearchResults[query]
	return ids, ok
}

// ClearCache drops all cached search results.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cache = Cache{
		SearchResults: make(map[string][]string),
		LastUpdated:   make(map[string]string),
	}
	s.persist()
}

// Search matches the query case-insensitively against titles, descriptions,
// ingredient names and cuisine tags. Any field matching qualifies.
func (s *Store) Search(query string) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []domain.Recipe
	for _, rec := range s.state.Recipes {
		if matchesQuery(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesQuery(rec domain.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(rec.Title), q) {
		return true
	}
	if rec.Description != "" && strings.Contains(strings.ToLower(rec.Description), q) {
		return true
	}
	for _, ing := range rec.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	for _, cuisine := range rec.CuisineTypes {
		if strings.Contains(strings.ToLower(cuisine), q) {
			return true
		}
	}
	return false
}

// ByDiet returns recipes carrying the diet tag (exact, case-insensitive).
func (s *Store) ByDiet(diet string) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Recipe
	for _, rec := range s.state.Recipes {
		if containsFold(rec.Diets, diet) {
			out = append(out, rec)
		}
	}
	return out
}

// ByCuisine returns recipes carrying the cuisine tag (exact,
// case-insensitive).
func (s *Store) ByCuisine(cuisine string) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Recipe
	for _, rec := range s.state.Recipes {
		if containsFold(rec.CuisineTypes, cuisine) {
			out = append(out, rec)
		}
	}
	return out
}

// Reset restores the empty default state. Confirmation of destructive
// operations is the caller's concern.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = DefaultState()
	s.persist()
}

func containsFold(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
