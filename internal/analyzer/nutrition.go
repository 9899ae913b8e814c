// Package analyzer provides pure derived-value functions over recipes and
// budget settings. It owns no state; callers supply recipe and preference
// snapshots and get back deterministic analyses.
package analyzer

import (
	"math"

	"whiskplan/internal/domain"
)

// Reference daily intake values for a 2000-calorie diet.
const (
	dailyCalories = 2000
	dailyProtein  = 50   // grams
	dailyCarbs    = 300  // grams
	dailyFat      = 65   // grams
	dailyFiber    = 25   // grams
	dailySodium   = 2300 // milligrams
)

// MacroPercentages is the calorie share of each macronutrient. Percentages
// are rounded independently and may not sum to exactly 100.
type MacroPercentages struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// DailyValues expresses each nutrient as a percentage of the reference
// daily intake.
type DailyValues struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
	Sodium   int `json:"sodium"`
}

// HealthRating buckets a recipe's heuristic health score.
type HealthRating struct {
	Rating      string `json:"rating"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// ScaleNutrition adjusts a recipe's nutrition to a target serving count.
// Every field scales linearly by target over the recipe's native servings.
// Calories and sodium round to whole numbers, gram values to one decimal.
// Returns false when the recipe has no nutrition info or no serving count.
func ScaleNutrition(rec domain.Recipe, servings int) (domain.NutritionalInfo, bool) {
	if rec.NutritionalInfo == nil || rec.Servings <= 0 || servings <= 0 {
		return domain.NutritionalInfo{}, false
	}
	n := *rec.NutritionalInfo
	multiplier := float64(servings) / float64(rec.Servings)
	return domain.NutritionalInfo{
		Calories: math.Round(n.Calories * multiplier),
		Protein:  round1(n.Protein * multiplier),
		Carbs:    round1(n.Carbs * multiplier),
		Fat:      round1(n.Fat * multiplier),
		Fiber:    round1(n.Fiber * multiplier),
		Sugar:    round1(n.Sugar * multiplier),
		Sodium:   math.Round(n.Sodium * multiplier),
	}, true
}

// MacroBreakdown computes the calorie share of protein, carbs and fat at
// 4, 4 and 9 calories per gram respectively.
func MacroBreakdown(n domain.NutritionalInfo) MacroPercentages {
	proteinCals := n.Protein * 4
	carbsCals := n.Carbs * 4
	fatCals := n.Fat * 9
	total := proteinCals + carbsCals + fatCals
	if total <= 0 {
		return MacroPercentages{}
	}
	return MacroPercentages{
		Protein: int(math.Round(proteinCals / total * 100)),
		Carbs:   int(math.Round(carbsCals / total * 100)),
		Fat:     int(math.Round(fatCals / total * 100)),
	}
}

// DailyValuePercentages expresses the given nutrition against the
// reference daily intake.
func DailyValuePercentages(n domain.NutritionalInfo) DailyValues {
	return DailyValues{
		Calories: int(math.Round(n.Calories / dailyCalories * 100)),
		Protein:  int(math.Round(n.Protein / dailyProtein * 100)),
		Carbs:    int(math.Round(n.Carbs / dailyCarbs * 100)),
		Fat:      int(math.Round(n.Fat / dailyFat * 100)),
		Fiber:    int(math.Round(n.Fiber / dailyFiber * 100)),
		Sodium:   int(math.Round(n.Sodium / dailySodium * 100)),
	}
}

// RateHealth scores nutrition on a 0-6 heuristic: fiber-to-carbs ratio,
// protein share of calories, sodium density, and absolute calorie count.
func RateHealth(n domain.NutritionalInfo) HealthRating {
	score := 0

	if n.Carbs > 0 {
		fiberRatio := n.Fiber / n.Carbs
		if fiberRatio > 0.1 {
			score += 2
		} else if fiberRatio > 0.05 {
			score++
		}
	}

	if n.Calories > 0 {
		proteinRatio := n.Protein / (n.Calories / 4)
		if proteinRatio > 0.2 {
			score += 2
		} else if proteinRatio > 0.15 {
			score++
		}

		sodiumPer100Cal := n.Sodium / n.Calories * 100
		if sodiumPer100Cal < 50 {
			score += 2
		} else if sodiumPer100Cal < 100 {
			score++
		}
	}

	if n.Calories < 400 {
		score++
	}

	switch {
	case score >= 5:
		return HealthRating{Rating: "Excellent", Score: score, Description: "Nutritionally well-balanced"}
	case score >= 3:
		return HealthRating{Rating: "Good", Score: score, Description: "Good nutritional profile"}
	case score >= 1:
		return HealthRating{Rating: "Fair", Score: score, Description: "Moderate nutritional value"}
	default:
		return HealthRating{Rating: "Poor", Score: score, Description: "Consider nutritional improvements"}
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
