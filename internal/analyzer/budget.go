package analyzer

import (
	"fmt"

	"whiskplan/internal/domain"
)

// MealsPerWeek assumes three meals per day across seven days.
const MealsPerWeek = 21

// BudgetAnalysis summarizes how a recipe set sits against budget settings.
type BudgetAnalysis struct {
	TotalCost             float64         `json:"totalCost"`
	AverageCostPerServing float64         `json:"averageCostPerServing"`
	OverBudgetRecipes     []domain.Recipe `json:"overBudgetRecipes"`
	BudgetUtilization     float64         `json:"budgetUtilization"` // percent
	WeeklyProjection      float64         `json:"weeklyProjection"`
	Status                string          `json:"status"`
	SavingsOpportunities  []string        `json:"savingsOpportunities"`
	Recommendations       []string        `json:"recommendations"`
}

// BudgetConflict is the projected impact of a candidate weekly budget on
// the user's locked (favorited) recipes.
type BudgetConflict struct {
	LockedRecipes      []domain.Recipe `json:"lockedRecipes"`
	LockedCost         float64         `json:"lockedCost"`
	WeeklyLockedCost   float64         `json:"weeklyLockedCost"`
	PerMealAllowance   float64         `json:"perMealAllowance"`
	ConflictingRecipes []domain.Recipe `json:"conflictingRecipes"`
	HasConflicts       bool            `json:"hasConflicts"`
}

// AnalyzeBudget compares a recipe set against budget settings. Recipes
// without a price are excluded from the average rather than counted as
// zero. The weekly projection assumes the average serving cost across all
// 21 meals of a week.
func AnalyzeBudget(recipes []domain.Recipe, budget domain.BudgetSettings) BudgetAnalysis {
	var analysis BudgetAnalysis

	var priced []domain.Recipe
	for _, rec := range recipes {
		if rec.PricePerServing > 0 {
			priced = append(priced, rec)
			analysis.TotalCost += rec.PricePerServing
		}
	}
	if len(priced) > 0 {
		analysis.AverageCostPerServing = analysis.TotalCost / float64(len(priced))
	}

	for _, rec := range priced {
		if rec.PricePerServing > budget.PricePerServing {
			analysis.OverBudgetRecipes = append(analysis.OverBudgetRecipes, rec)
		}
	}

	if budget.PricePerServing > 0 {
		analysis.BudgetUtilization = analysis.AverageCostPerServing / budget.PricePerServing * 100
	}
	analysis.WeeklyProjection = analysis.AverageCostPerServing * MealsPerWeek

	switch {
	case analysis.BudgetUtilization <= 80:
		analysis.Status = "Under Budget"
	case analysis.BudgetUtilization <= 100:
		analysis.Status = "On Track"
	case analysis.BudgetUtilization <= 120:
		analysis.Status = "Slightly Over"
	default:
		analysis.Status = "Over Budget"
	}

	if n := len(analysis.OverBudgetRecipes); n > 0 {
		analysis.SavingsOpportunities = append(analysis.SavingsOpportunities,
			fmt.Sprintf("%d recipes exceed your per-serving budget", n))
	}
	if analysis.BudgetUtilization > 100 {
		analysis.SavingsOpportunities = append(analysis.SavingsOpportunities,
			fmt.Sprintf("Average cost exceeds budget by %.0f%%", analysis.BudgetUtilization-100))
	}
	if analysis.WeeklyProjection > budget.WeeklyBudget {
		analysis.SavingsOpportunities = append(analysis.SavingsOpportunities,
			fmt.Sprintf("Weekly projection exceeds budget by $%.2f", analysis.WeeklyProjection-budget.WeeklyBudget))
	}

	switch {
	case analysis.BudgetUtilization > 120:
		analysis.Recommendations = append(analysis.Recommendations,
			"Consider simpler recipes with fewer expensive ingredients",
			"Look for recipes with seasonal or bulk ingredients")
	case analysis.BudgetUtilization > 100:
		analysis.Recommendations = append(analysis.Recommendations,
			"Try substituting expensive ingredients with budget alternatives")
	case analysis.BudgetUtilization < 70:
		analysis.Recommendations = append(analysis.Recommendations,
			"You have room to explore premium ingredients",
			"Consider recipes with higher-quality proteins")
	}
	if float64(len(analysis.OverBudgetRecipes)) > float64(len(recipes))*0.3 {
		analysis.Recommendations = append(analysis.Recommendations,
			"Filter recipes by maximum price to stay within budget")
	}

	return analysis
}

// CheckBudgetConflicts projects whether a candidate weekly budget can
// accommodate the user's favorited recipes. Favorites are treated as
// locked; the weekly projection assumes one serving of each per day.
func CheckBudgetConflicts(recipes []domain.Recipe, favorites []string, candidateWeeklyBudget float64) BudgetConflict {
	favoriteSet := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		favoriteSet[id] = true
	}

	var conflict BudgetConflict
	for _, rec := range recipes {
		if !favoriteSet[rec.ID] {
			continue
		}
		conflict.LockedRecipes = append(conflict.LockedRecipes, rec)
		conflict.LockedCost += rec.PricePerServing
	}

	conflict.WeeklyLockedCost = conflict.LockedCost * 7
	conflict.PerMealAllowance = candidateWeeklyBudget / MealsPerWeek

	for _, rec := range conflict.LockedRecipes {
		if rec.PricePerServing > conflict.PerMealAllowance {
			conflict.ConflictingRecipes = append(conflict.ConflictingRecipes, rec)
		}
	}
	conflict.HasConflicts = len(conflict.ConflictingRecipes) > 0 ||
		conflict.WeeklyLockedCost > candidateWeeklyBudget

	return conflict
}
