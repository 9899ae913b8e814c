package prefs

import (
	"testing"

	"whiskplan/internal/domain"
	"whiskplan/internal/logger"
	"whiskplan/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(storage.NewMemory(), logger.Discard())
}

func TestDefaults(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()

	if snap.Budget.WeeklyBudget != 100 || snap.Budget.PricePerServing != 10 {
		t.Errorf("Expected $100/$10 budget defaults, got %+v", snap.Budget)
	}
	if snap.Budget.Currency != "USD" {
		t.Errorf("Expected USD default, got %s", snap.Budget.Currency)
	}
	if snap.Preferences.ServingSize != 2 {
		t.Errorf("Expected serving size 2, got %d", snap.Preferences.ServingSize)
	}
	if s.OnboardingCompleted() {
		t.Error("Expected onboarding incomplete by default")
	}
}

func TestConfiguredDefaults(t *testing.T) {
	s := NewStoreWithDefaults(storage.NewMemory(), logger.Discard(), domain.BudgetSettings{
		WeeklyBudget: 150, PricePerServing: 7, Currency: "EUR",
	})
	b := s.Budget()
	if b.WeeklyBudget != 150 || b.PricePerServing != 7 || b.Currency != "EUR" {
		t.Errorf("Expected configured defaults, got %+v", b)
	}
}

func TestDietaryLists(t *testing.T) {
	s := newTestStore(t)

	t.Run("AddIsSetLike", func(t *testing.T) {
		s.AddDietary(ListAllergies, "peanuts")
		s.AddDietary(ListAllergies, "peanuts")
		if got := s.Snapshot().Preferences.Dietary.Allergies; len(got) != 1 {
			t.Errorf("Expected one entry after duplicate add, got %v", got)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s.AddDietary(ListRestrictions, "vegan")
		s.RemoveDietary(ListRestrictions, "vegan")
		if got := s.Snapshot().Preferences.Dietary.Restrictions; len(got) != 0 {
			t.Errorf("Expected empty restrictions, got %v", got)
		}
	})

	t.Run("RemoveAbsentIsNoOp", func(t *testing.T) {
		s.RemoveDietary(ListDislikedIngredients, "cilantro")
	})
}

func TestValidation(t *testing.T) {
	s := newTestStore(t)

	t.Run("DefaultsAreValid", func(t *testing.T) {
		if violations := s.Validate(); len(violations) != 0 {
			t.Errorf("Expected no violations, got %v", violations)
		}
	})

	t.Run("InvalidValuesAreStoredButFlagged", func(t *testing.T) {
		s.SetCookingPrefs(domain.CookingQuick, domain.SkillBeginner, 99)
		s.SetBudget(domain.BudgetSettings{WeeklyBudget: -5, PricePerServing: 0, Currency: "DOLLARS"})

		if s.Snapshot().Preferences.ServingSize != 99 {
			t.Error("Expected invalid serving size to be stored anyway")
		}

		violations := s.Validate()
		want := []string{
			"Serving size must be between 1 and 12",
			"Weekly budget must be greater than 0",
			"Price per serving must be greater than 0",
			"Currency must be a valid 3-letter code",
		}
		for _, msg := range want {
			if !contains(violations, msg) {
				t.Errorf("Expected violation %q, got %v", msg, violations)
			}
		}
	})
}

func TestEstimatedWeeklyBudget(t *testing.T) {
	s := newTestStore(t)
	// $10 per serving x 2 servings x 21 meals.
	if got := s.EstimatedWeeklyBudget(); got != 420 {
		t.Errorf("Expected 420, got %v", got)
	}
}

func TestCookingTimeRange(t *testing.T) {
	s := newTestStore(t)
	cases := []struct {
		pref     domain.CookingTime
		min, max int
	}{
		{domain.CookingQuick, 5, 30},
		{domain.CookingMedium, 30, 60},
		{domain.CookingLong, 60, 180},
	}
	for _, tc := range cases {
		s.SetCookingPrefs(tc.pref, domain.SkillIntermediate, 2)
		min, max := s.CookingTimeRange()
		if min != tc.min || max != tc.max {
			t.Errorf("%s: expected %d-%d, got %d-%d", tc.pref, tc.min, tc.max, min, max)
		}
	}
}

func TestOnboardingAndReload(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv, logger.Discard())
	s.CompleteOnboarding()
	s.SetBudget(domain.BudgetSettings{WeeklyBudget: 80, PricePerServing: 4, Currency: "GBP"})

	reloaded := NewStore(kv, logger.Discard())
	if !reloaded.OnboardingCompleted() {
		t.Error("Expected onboarding flag to survive reload")
	}
	if b := reloaded.Budget(); b.WeeklyBudget != 80 || b.Currency != "GBP" {
		t.Errorf("Expected budget to survive reload, got %+v", b)
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
