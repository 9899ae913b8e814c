package domain

// MealType identifies a slot within a day. Breakfast, lunch and dinner hold
// at most one meal; snacks hold any number.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// Valid reports whether mt is one of the four known meal types.
func (mt MealType) Valid() bool {
	switch mt {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// MealSlot is a single meal assignment. Slot ids are regenerated whenever a
// meal moves, so an id identifies a placement rather than the meal itself.
// A slot with neither RecipeID nor CustomMeal is represented by absence.
type MealSlot struct {
	ID         string `json:"id"`
	RecipeID   string `json:"recipeId,omitempty"`
	CustomMeal string `json:"customMeal,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Servings   int    `json:"servings,omitempty"` // overrides the recipe's native count when set
}

// DayPlan holds the meals for one calendar date.
type DayPlan struct {
	Date      string     `json:"date"`
	Breakfast *MealSlot  `json:"breakfast,omitempty"`
	Lunch     *MealSlot  `json:"lunch,omitempty"`
	Dinner    *MealSlot  `json:"dinner,omitempty"`
	Snacks    []MealSlot `json:"snacks,omitempty"`
}

// Clone returns a deep copy of the day plan.
func (d DayPlan) Clone() DayPlan {
	out := DayPlan{Date: d.Date}
	if d.Breakfast != nil {
		b := *d.Breakfast
		out.Breakfast = &b
	}
	if d.Lunch != nil {
		l := *d.Lunch
		out.Lunch = &l
	}
	if d.Dinner != nil {
		dn := *d.Dinner
		out.Dinner = &dn
	}
	if len(d.Snacks) > 0 {
		out.Snacks = append([]MealSlot(nil), d.Snacks...)
	}
	return out
}

// WeekPlan is a Monday-anchored 7-day container of day plans. Days is
// sparse: only dates with at least one meal have an entry.
type WeekPlan struct {
	ID           string             `json:"id"`
	StartDate    string             `json:"startDate"` // always a Monday
	EndDate      string             `json:"endDate"`   // always StartDate+6
	Days         map[string]DayPlan `json:"days"`
	Title        string             `json:"title,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Budget       float64            `json:"budget,omitempty"`
	DateCreated  string             `json:"dateCreated"`
	LastModified string             `json:"lastModified"`
}

// Clone returns a deep copy of the week plan.
func (w WeekPlan) Clone() WeekPlan {
	out := w
	out.Days = make(map[string]DayPlan, len(w.Days))
	for date, day := range w.Days {
		out.Days[date] = day.Clone()
	}
	return out
}

// ShoppingListItem is one aggregated ingredient line.
type ShoppingListItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	Unit           string   `json:"unit"`
	Category       string   `json:"category"`
	Checked        bool     `json:"checked"`
	EstimatedPrice float64  `json:"estimatedPrice,omitempty"`
	RecipeIDs      []string `json:"recipeIds"`
}

// ShoppingList is a derived snapshot of a week plan's ingredients.
// Regeneration creates a whole new list rather than patching an old one.
type ShoppingList struct {
	ID                 string             `json:"id"`
	WeekPlanID         string             `json:"weekPlanId"`
	Items              []ShoppingListItem `json:"items"`
	TotalEstimatedCost float64            `json:"totalEstimatedCost"`
	DateGenerated      string             `json:"dateGenerated"`
	LastModified       string             `json:"lastModified"`
}

// Clone returns a deep copy of the shopping list.
func (l ShoppingList) Clone() ShoppingList {
	out := l
	out.Items = make([]ShoppingListItem, len(l.Items))
	for i, item := range l.Items {
		item.RecipeIDs = append([]string(nil), item.RecipeIDs...)
		out.Items[i] = item
	}
	return out
}

// TemplateBody is a week plan stripped of identity and dates, suitable for
// re-instantiation at an arbitrary week.
type TemplateBody struct {
	Days   map[string]DayPlan `json:"days"`
	Title  string             `json:"title,omitempty"`
	Notes  string             `json:"notes,omitempty"`
	Budget float64            `json:"budget,omitempty"`
}

// Clone returns a deep copy of the template body.
func (b TemplateBody) Clone() TemplateBody {
	out := b
	out.Days = make(map[string]DayPlan, len(b.Days))
	for date, day := range b.Days {
		out.Days[date] = day.Clone()
	}
	return out
}

// MealPlanTemplate is a reusable week-plan snapshot.
type MealPlanTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	WeekPlan    TemplateBody `json:"weekPlan"`
	Tags        []string     `json:"tags"`
	IsPublic    bool         `json:"isPublic"`
	DateCreated string       `json:"dateCreated"`
}

// Clone returns a deep copy of the template.
func (t MealPlanTemplate) Clone() MealPlanTemplate {
	out := t
	out.WeekPlan = t.WeekPlan.Clone()
	out.Tags = append([]string(nil), t.Tags...)
	return out
}

// PlanSettings carries the plan engine's presentation defaults.
type PlanSettings struct {
	DefaultMealTimes         map[string]string `json:"defaultMealTimes"`
	ShoppingCategories       []string          `json:"shoppingCategories"`
	AutoGenerateShoppingList bool              `json:"autoGenerateShoppingList"`
}
