package domain

// CookingTime buckets preferred cooking duration.
type CookingTime string

const (
	CookingQuick  CookingTime = "quick"
	CookingMedium CookingTime = "medium"
	CookingLong   CookingTime = "long"
)

// SkillLevel describes the user's cooking experience.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// DietaryPreferences are set-like lists edited with add-if-absent and
// remove-by-value semantics.
type DietaryPreferences struct {
	Restrictions        []string `json:"restrictions"`
	Allergies           []string `json:"allergies"`
	CuisinePreferences  []string `json:"cuisinePreferences"`
	DislikedIngredients []string `json:"dislikedIngredients"`
}

// Preferences holds the user's cooking preferences.
type Preferences struct {
	Dietary     DietaryPreferences `json:"dietary"`
	ServingSize int                `json:"servingSize"`
	CookingTime CookingTime        `json:"cookingTime"`
	SkillLevel  SkillLevel         `json:"skillLevel"`
}

// BudgetSettings holds the user's budget configuration. PricePerServing is
// the per-meal budget threshold; Currency is a 3-letter code.
type BudgetSettings struct {
	WeeklyBudget    float64 `json:"weeklyBudget"`
	PricePerServing float64 `json:"pricePerServing"`
	Currency        string  `json:"currency"`
}
