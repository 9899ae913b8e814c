// Package prefs owns the user's dietary, cooking and budget preferences.
package prefs

import (
	"encoding/json"
	"sync"

	"whiskplan/internal/domain"
	"whiskplan/internal/logger"
)

// StorageKey is the fixed persistence key for the preference snapshot.
const StorageKey = "whiskplan-prefs"

// MealsPerWeek is the fixed planning assumption used for weekly budget
// estimates: 3 meals a day over 7 days.
const MealsPerWeek = 21

// State is the preference store's persisted state.
type State struct {
	Preferences         domain.Preferences    `json:"preferences"`
	Budget              domain.BudgetSettings `json:"budget"`
	OnboardingCompleted bool                  `json:"onboardingCompleted"`
}

// DefaultState returns the state used when nothing has been persisted.
func DefaultState() State {
	return State{
		Preferences: domain.Preferences{
			Dietary:     domain.DietaryPreferences{},
			ServingSize: 2,
			CookingTime: domain.CookingMedium,
			SkillLevel:  domain.SkillIntermediate,
		},
		Budget: domain.BudgetSettings{
			WeeklyBudget:    100,
			PricePerServing: 10,
			Currency:        "USD",
		},
	}
}

// Store owns preference state. Mutations mirror to the key-value port with
// log-only failure handling, matching the other stores.
type Store struct {
	mu       sync.RWMutex
	state    State
	kv       domain.KeyValue
	log      *logger.Logger
	validate *settingsValidator
}

// NewStore loads the persisted snapshot, falling back to defaults.
func NewStore(kv domain.KeyValue, log *logger.Logger) *Store {
	return newStore(kv, log, DefaultState())
}

// NewStoreWithDefaults is NewStore with configured budget values replacing
// the built-in budget defaults. Persisted snapshots still win.
func NewStoreWithDefaults(kv domain.KeyValue, log *logger.Logger, budget domain.BudgetSettings) *Store {
	def := DefaultState()
	if budget.WeeklyBudget > 0 {
		def.Budget.WeeklyBudget = budget.WeeklyBudget
	}
	if budget.PricePerServing > 0 {
		def.Budget.PricePerServing = budget.PricePerServing
	}
	if budget.Currency != "" {
		def.Budget.Currency = budget.Currency
	}
	return newStore(kv, log, def)
}

func newStore(kv domain.KeyValue, log *logger.Logger, def State) *Store {
	s := &Store{state: def, kv: kv, log: log, validate: newSettingsValidator()}

	data, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Error("loading preference state: %v", err)
		return s
	}
	if ok {
		if err := json.Unmarshal(data, &s.state); err != nil {
			log.Error("decoding preference state, using defaults: %v", err)
			s.state = def
		}
	}
	return s
}

func (s *Store) persist() {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error("encoding preference state: %v", err)
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.log.Error("persisting preference state: %v", err)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	out.Preferences.Dietary = cloneDietary(s.state.Preferences.Dietary)
	return out
}

// Budget returns the current budget settings.
func (s *Store) Budget() domain.BudgetSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Budget
}

// DietaryList identifies one of the set-like dietary preference lists.
type DietaryList string

const (
	ListRestrictions        DietaryList = "restrictions"
	ListAllergies           DietaryList = "allergies"
	ListCuisinePreferences  DietaryList = "cuisinePreferences"
	ListDislikedIngredients DietaryList = "dislikedIngredients"
)

func (s *Store) dietaryList(list DietaryList) *[]string {
	d := &s.state.Preferences.Dietary
	switch list {
	case ListRestrictions:
		return &d.Restrictions
	case ListAllergies:
		return &d.Allergies
	case ListCuisinePreferences:
		return &d.CuisinePreferences
	case ListDislikedIngredients:
		return &d.DislikedIngredients
	}
	return nil
}

// AddDietary appends value to the named list if absent.
func (s *Store) AddDietary(list DietaryList, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.dietaryList(list)
	if target == nil {
		return
	}
	for _, v := range *target {
		if v == value {
			return
		}
	}
	*target = append(*target, value)
	s.persist()
}

// RemoveDietary removes value from the named list. Absent values no-op.
func (s *Store) RemoveDietary(list DietaryList, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.dietaryList(list)
	if target == nil {
		return
	}
	kept := (*target)[:0:0]
	for _, v := range *target {
		if v != value {
			kept = append(kept, v)
		}
	}
	*target = kept
	s.persist()
}

// SetCookingPrefs updates the cooking-time, skill and serving-size
// preferences. Values are stored even when invalid; Validate surfaces the
// violations for the caller to display.
func (s *Store) SetCookingPrefs(cookingTime domain.CookingTime, skill domain.SkillLevel, servingSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Preferences.CookingTime = cookingTime
	s.state.Preferences.SkillLevel = skill
	s.state.Preferences.ServingSize = servingSize
	s.persist()
}

// SetBudget updates the budget settings. Invalid values are stored too; the
// caller is responsible for blocking confirmation on validation failures.
func (s *Store) SetBudget(budget domain.BudgetSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Budget = budget
	s.persist()
}

// CompleteOnboarding marks onboarding as done.
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.OnboardingCompleted = true
	s.persist()
}

// OnboardingCompleted reports whether onboarding has been completed.
func (s *Store) OnboardingCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.OnboardingCompleted
}

// Validate returns human-readable violations for the current preferences.
// An empty slice means everything checks out.
func (s *Store) Validate() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.validate.check(s.state.Preferences, s.state.Budget)
}

// EstimatedWeeklyBudget projects a week of meals at the configured
// per-serving price and serving size.
func (s *Store) EstimatedWeeklyBudget() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Budget.PricePerServing * float64(s.state.Preferences.ServingSize) * MealsPerWeek
}

// CookingTimeRange returns the minute range for the preferred cooking time.
func (s *Store) CookingTimeRange() (min, max int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state.Preferences.CookingTime {
	case domain.CookingQuick:
		return 5, 30
	case domain.CookingLong:
		return 60, 180
	default:
		return 30, 60
	}
}

// Reset restores the default state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = DefaultState()
	s.persist()
}

func cloneDietary(d domain.DietaryPreferences) domain.DietaryPreferences {
	return domain.DietaryPreferences{
		Restrictions:        append([]string(nil), d.Restrictions...),
		Allergies:           append([]string(nil), d.Allergies...),
		CuisinePreferences:  append([]string(nil), d.CuisinePreferences...),
		DislikedIngredients: append([]string(nil), d.DislikedIngredients...),
	}
}
