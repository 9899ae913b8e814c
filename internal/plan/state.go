// Package plan implements the meal-plan engine: week plans, shopping lists
// and templates, mutated exclusively through pure state transitions.
package plan

import "whiskplan/internal/domain"

// State is the engine's full persisted state. Values are treated as
// immutable: Apply returns a new State and never mutates its input.
type State struct {
	CurrentWeekPlanID string                             `json:"currentWeekPlanId,omitempty"`
	WeekPlans         map[string]domain.WeekPlan         `json:"weekPlans"`
	ShoppingLists     map[string]domain.ShoppingList     `json:"shoppingLists"`
	Templates         map[string]domain.MealPlanTemplate `json:"templates"`
	Settings          domain.PlanSettings                `json:"settings"`
}

// DefaultState returns the empty engine state.
func DefaultState() State {
	return State{
		WeekPlans:     make(map[string]domain.WeekPlan),
		ShoppingLists: make(map[string]domain.ShoppingList),
		Templates:     make(map[string]domain.MealPlanTemplate),
		Settings: domain.PlanSettings{
			DefaultMealTimes: map[string]string{
				"breakfast": "08:00",
				"lunch":     "12:00",
				"dinner":    "18:00",
			},
			ShoppingCategories: []string{
				"Produce", "Dairy & Eggs", "Meat & Seafood", "Pantry",
				"Frozen", "Bakery", "Beverages", "Other",
			},
			AutoGenerateShoppingList: true,
		},
	}
}

// withWeekPlan returns a copy of s with one week plan replaced. Only the
// touched map is re-allocated.
func (s State) withWeekPlan(plan domain.WeekPlan) State {
	out := s
	out.WeekPlans = make(map[string]domain.WeekPlan, len(s.WeekPlans)+1)
	for id, p := range s.WeekPlans {
		out.WeekPlans[id] = p
	}
	out.WeekPlans[plan.ID] = plan
	return out
}

func (s State) withShoppingList(list domain.ShoppingList) State {
	out := s
	out.ShoppingLists = make(map[string]domain.ShoppingList, len(s.ShoppingLists)+1)
	for id, l := range s.ShoppingLists {
		out.ShoppingLists[id] = l
	}
	out.ShoppingLists[list.ID] = list
	return out
}

func (s State) withTemplate(tpl domain.MealPlanTemplate) State {
	out := s
	out.Templates = make(map[string]domain.MealPlanTemplate, len(s.Templates)+1)
	for id, t := range s.Templates {
		out.Templates[id] = t
	}
	out.Templates[tpl.ID] = tpl
	return out
}
