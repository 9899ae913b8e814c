package analyzer

import (
	"strings"
	"testing"

	"whiskplan/internal/domain"
)

func priced(id string, price float64) domain.Recipe {
	return domain.Recipe{ID: id, Title: id, Servings: 2, PricePerServing: price}
}

func TestAnalyzeBudget(t *testing.T) {
	budget := domain.BudgetSettings{WeeklyBudget: 210, PricePerServing: 10, Currency: "USD"}

	t.Run("UnpricedRecipesExcludedFromAverage", func(t *testing.T) {
		recs := []domain.Recipe{priced("a", 8), priced("b", 12), {ID: "c", Title: "c", Servings: 2}}
		a := AnalyzeBudget(recs, budget)
		if a.AverageCostPerServing != 10 {
			t.Errorf("Expected average 10 over priced recipes only, got %v", a.AverageCostPerServing)
		}
		if len(a.OverBudgetRecipes) != 1 || a.OverBudgetRecipes[0].ID != "b" {
			t.Errorf("Expected only b over budget, got %+v", a.OverBudgetRecipes)
		}
		if a.WeeklyProjection != 210 {
			t.Errorf("Expected weekly projection 210, got %v", a.WeeklyProjection)
		}
	})

	t.Run("ExactBudgetIsOnTrack", func(t *testing.T) {
		a := AnalyzeBudget([]domain.Recipe{priced("a", 10)}, budget)
		if a.BudgetUtilization != 100 {
			t.Fatalf("Expected 100%% utilization, got %v", a.BudgetUtilization)
		}
		if a.Status != "On Track" {
			t.Errorf("Expected On Track at exactly 100%%, got %s", a.Status)
		}
	})

	t.Run("JustOverBudgetIsSlightlyOver", func(t *testing.T) {
		a := AnalyzeBudget([]domain.Recipe{priced("a", 10.01)}, budget)
		if a.Status != "Slightly Over" {
			t.Errorf("Expected Slightly Over just past 100%%, got %s (%.2f%%)", a.Status, a.BudgetUtilization)
		}
	})

	t.Run("StatusTiers", func(t *testing.T) {
		cases := []struct {
			price  float64
			status string
		}{
			{6, "Under Budget"},
			{8, "Under Budget"},
			{9, "On Track"},
			{11, "Slightly Over"},
			{12, "Slightly Over"},
			{15, "Over Budget"},
		}
		for _, tc := range cases {
			a := AnalyzeBudget([]domain.Recipe{priced("a", tc.price)}, budget)
			if a.Status != tc.status {
				t.Errorf("Price %v: expected %s, got %s", tc.price, tc.status, a.Status)
			}
		}
	})

	t.Run("HighUtilizationRecommendations", func(t *testing.T) {
		a := AnalyzeBudget([]domain.Recipe{priced("a", 15)}, budget)
		if len(a.Recommendations) == 0 {
			t.Fatal("Expected recommendations over 120%")
		}
		if !strings.Contains(a.Recommendations[0], "simpler recipes") {
			t.Errorf("Expected simpler-recipes suggestion, got %q", a.Recommendations[0])
		}
	})

	t.Run("LowUtilizationRecommendations", func(t *testing.T) {
		a := AnalyzeBudget([]domain.Recipe{priced("a", 5)}, budget)
		found := false
		for _, rec := range a.Recommendations {
			if strings.Contains(rec, "premium") {
				found = true
			}
		}
		if !found {
			t.Error("Expected premium-ingredients suggestion under 70%")
		}
	})

	t.Run("ManyOverBudgetSuggestsPriceFilter", func(t *testing.T) {
		recs := []domain.Recipe{priced("a", 12), priced("b", 13), priced("c", 5)}
		a := AnalyzeBudget(recs, budget)
		found := false
		for _, rec := range a.Recommendations {
			if strings.Contains(rec, "maximum price") {
				found = true
			}
		}
		if !found {
			t.Error("Expected price-filter suggestion when over 30% of recipes exceed budget")
		}
	})

	t.Run("EmptySet", func(t *testing.T) {
		a := AnalyzeBudget(nil, budget)
		if a.AverageCostPerServing != 0 || a.BudgetUtilization != 0 {
			t.Errorf("Expected zero analysis for empty set, got %+v", a)
		}
		if a.Status != "Under Budget" {
			t.Errorf("Expected Under Budget at zero utilization, got %s", a.Status)
		}
	})
}

func TestCheckBudgetConflicts(t *testing.T) {
	recipes := []domain.Recipe{
		priced("steak", 12),
		priced("soup", 3),
		priced("rice", 1),
	}

	t.Run("NoFavoritesNoConflict", func(t *testing.T) {
		c := CheckBudgetConflicts(recipes, nil, 100)
		if c.HasConflicts {
			t.Error("Expected no conflict without locked recipes")
		}
	})

	t.Run("ExpensiveFavoriteExceedsAllowance", func(t *testing.T) {
		// Allowance at $100/week is $100/21 ~= $4.76; steak at $12 conflicts.
		c := CheckBudgetConflicts(recipes, []string{"steak"}, 100)
		if !c.HasConflicts {
			t.Fatal("Expected a conflict")
		}
		if len(c.ConflictingRecipes) != 1 || c.ConflictingRecipes[0].ID != "steak" {
			t.Errorf("Expected steak to conflict, got %+v", c.ConflictingRecipes)
		}
	})

	t.Run("WeeklyLockedCostExceedsBudget", func(t *testing.T) {
		// soup + rice = $4/day = $28/week against a $25 candidate budget.
		c := CheckBudgetConflicts(recipes, []string{"soup", "rice"}, 25)
		if !c.HasConflicts {
			t.Fatal("Expected weekly-cost conflict")
		}
		if c.WeeklyLockedCost != 28 {
			t.Errorf("Expected weekly locked cost 28, got %v", c.WeeklyLockedCost)
		}
	})

	t.Run("AffordableFavoritesPass", func(t *testing.T) {
		c := CheckBudgetConflicts(recipes, []string{"soup", "rice"}, 100)
		if c.HasConflicts {
			t.Errorf("Expected no conflict, got %+v", c)
		}
	})
}
