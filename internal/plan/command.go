package plan

import "whiskplan/internal/domain"

// Target identifies a slot position within a week plan.
type Target struct {
	WeekPlanID string          `json:"weekPlanId"`
	Date       string          `json:"date"`
	MealType   domain.MealType `json:"mealType"`
}

// SlotRef identifies a specific placed meal.
type SlotRef struct {
	Target
	MealID string `json:"mealId"`
}

// Command is a single atomic state transition. Apply either fully applies a
// command or returns the input state unchanged.
type Command interface{ isCommand() }

// WeekPlanUpdates is a partial patch for a week plan's own fields. Nil
// fields are left untouched.
type WeekPlanUpdates struct {
	Title  *string
	Notes  *string
	Budget *float64
}

// SlotUpdates is a partial patch for a meal slot. Nil fields are left
// untouched.
type SlotUpdates struct {
	Notes      *string
	Servings   *int
	CustomMeal *string
}

// CreateWeekPlan inserts a fully-built week plan and makes it current.
type CreateWeekPlan struct{ Plan domain.WeekPlan }

// UpdateWeekPlan patches a week plan's title, notes or budget.
type UpdateWeekPlan struct {
	ID      string
	Updates WeekPlanUpdates
}

// DeleteWeekPlan removes a week plan and its derived shopping lists.
type DeleteWeekPlan struct{ ID string }

// SetCurrentWeekPlan switches the current plan.
type SetCurrentWeekPlan struct{ ID string }

// AddMeal places a built meal slot: overwrite for breakfast/lunch/dinner,
// append for snacks.
type AddMeal struct {
	WeekPlanID string
	Date       string
	MealType   domain.MealType
	Meal       domain.MealSlot
}

// RemoveMeal clears a slot. For snacks an empty MealID clears the whole
// list; for the singular meals MealID is ignored.
type RemoveMeal struct {
	WeekPlanID string
	Date       string
	MealType   domain.MealType
	MealID     string
}

// UpdateMeal patches an existing slot matched by id.
type UpdateMeal struct {
	WeekPlanID string
	Date       string
	MealType   domain.MealType
	MealID     string
	Updates    SlotUpdates
}

// MoveMeal extracts the source slot and re-inserts a freshly-identified copy
// at the destination.
type MoveMeal struct {
	From SlotRef
	To   Target
}

// ShoppingListUpdates is a partial patch for a shopping list. Nil fields are
// left untouched.
type ShoppingListUpdates struct {
	Items              *[]domain.ShoppingListItem
	TotalEstimatedCost *float64
}

// PutShoppingList stores a freshly generated shopping list.
type PutShoppingList struct{ List domain.ShoppingList }

// UpdateShoppingList patches a stored list's items or estimated cost.
type UpdateShoppingList struct {
	ID      string
	Updates ShoppingListUpdates
}

// ToggleShoppingItem flips an item's checked flag.
type ToggleShoppingItem struct{ ListID, ItemID string }

// CreateTemplate stores a week-plan snapshot.
type CreateTemplate struct{ Template domain.MealPlanTemplate }

// DeleteTemplate removes a template.
type DeleteTemplate struct{ ID string }

// SetSettings replaces the engine's presentation settings.
type SetSettings struct{ Settings domain.PlanSettings }

// Reset restores the empty default state.
type Reset struct{}

func (CreateWeekPlan) isCommand()     {}
func (UpdateWeekPlan) isCommand()     {}
func (DeleteWeekPlan) isCommand()     {}
func (SetCurrentWeekPlan) isCommand() {}
func (AddMeal) isCommand()            {}
func (RemoveMeal) isCommand()         {}
func (UpdateMeal) isCommand()         {}
func (MoveMeal) isCommand()           {}
func (PutShoppingList) isCommand()    {}
func (UpdateShoppingList) isCommand() {}
func (ToggleShoppingItem) isCommand() {}
func (CreateTemplate) isCommand()     {}
func (DeleteTemplate) isCommand()     {}
func (SetSettings) isCommand()        {}
func (Reset) isCommand()              {}

// Apply is the pure transition function. Commands referencing a missing
// plan, date, slot or item return the state unchanged rather than erroring.
func Apply(s State, cmd Command) State {
	switch c := cmd.(type) {
	case CreateWeekPlan:
		out := s.withWeekPlan(c.Plan)
		out.CurrentWeekPlanID = c.Plan.ID
		return out
	case UpdateWeekPlan:
		return applyUpdateWeekPlan(s, c)
	case DeleteWeekPlan:
		return applyDeleteWeekPlan(s, c)
	case SetCurrentWeekPlan:
		if _, ok := s.WeekPlans[c.ID]; !ok {
			return s
		}
		out := s
		out.CurrentWeekPlanID = c.ID
		return out
	case AddMeal:
		return applyAddMeal(s, c)
	case RemoveMeal:
		return applyRemoveMeal(s, c)
	case UpdateMeal:
		return applyUpdateMeal(s, c)
	case MoveMeal:
		return applyMoveMeal(s, c)
	case PutShoppingList:
		return s.withShoppingList(c.List)
	case UpdateShoppingList:
		return applyUpdateShoppingList(s, c)
	case ToggleShoppingItem:
		return applyToggleShoppingItem(s, c)
	case CreateTemplate:
		return s.withTemplate(c.Template)
	case DeleteTemplate:
		return applyDeleteTemplate(s, c)
	case SetSettings:
		out := s
		out.Settings = c.Settings
		return out
	case Reset:
		return DefaultState()
	}
	return s
}

func applyUpdateWeekPlan(s State, c UpdateWeekPlan) State {
	plan, ok := s.WeekPlans[c.ID]
	if !ok {
		return s
	}
	plan = plan.Clone()
	if c.Updates.Title != nil {
		plan.Title = *c.Updates.Title
	}
	if c.Updates.Notes != nil {
		plan.Notes = *c.Updates.Notes
	}
	if c.Updates.Budget != nil {
		plan.Budget = *c.Updates.Budget
	}
	plan.LastModified = domain.Timestamp()
	return s.withWeekPlan(plan)
}

func applyDeleteWeekPlan(s State, c DeleteWeekPlan) State {
	if _, ok := s.WeekPlans[c.ID]; !ok {
		return s
	}
	out := s
	out.WeekPlans = make(map[string]domain.WeekPlan, len(s.WeekPlans))
	for id, p := range s.WeekPlans {
		if id != c.ID {
			out.WeekPlans[id] = p
		}
	}
	// Shopping lists are derived from the plan and go with it.
	out.ShoppingLists = make(map[string]domain.ShoppingList, len(s.ShoppingLists))
	for id, l := range s.ShoppingLists {
		if l.WeekPlanID != c.ID {
			out.ShoppingLists[id] = l
		}
	}
	if out.CurrentWeekPlanID == c.ID {
		out.CurrentWeekPlanID = ""
	}
	return out
}

// dateInPlan reports whether an ISO date falls inside the plan's week.
// Lexicographic comparison is exact for the YYYY-MM-DD form.
func dateInPlan(plan domain.WeekPlan, date string) bool {
	return date >= plan.StartDate && date <= plan.EndDate
}

// placeMeal inserts a meal into a day: append for snacks, overwrite for the
// singular meal types.
func placeMeal(day domain.DayPlan, mt domain.MealType, meal domain.MealSlot) domain.DayPlan {
	switch mt {
	case domain.MealSnacks:
		day.Snacks = append(day.Snacks, meal)
	case domain.MealBreakfast:
		day.Breakfast = &meal
	case domain.MealLunch:
		day.Lunch = &meal
	case domain.MealDinner:
		day.Dinner = &meal
	}
	return day
}

func applyAddMeal(s State, c AddMeal) State {
	plan, ok := s.WeekPlans[c.WeekPlanID]
	if !ok || !c.MealType.Valid() || !dateInPlan(plan, c.Date) {
		return s
	}

	plan = plan.Clone()
	day, ok := plan.Days[c.Date]
	if !ok {
		day = domain.DayPlan{Date: c.Date}
	}
	plan.Days[c.Date] = placeMeal(day, c.MealType, c.Meal)
	plan.LastModified = domain.Timestamp()
	return s.withWeekPlan(plan)
}

func applyRemoveMeal(s State, c RemoveMeal) State {
	plan, ok := s.WeekPlans[c.WeekPlanID]
	if !ok {
		return s
	}
	day, ok := plan.Days[c.Date]
	if !ok {
		return s
	}

	plan = plan.Clone()
	day = plan.Days[c.Date]

	switch c.MealType {
	case domain.MealSnacks:
		if c.MealID == "" {
			if len(day.Snacks) == 0 {
				return s
			}
			day.Snacks = nil
		} else {
			kept := day.Snacks[:0:0]
			for _, snack := range day.Snacks {
				if snack.ID != c.MealID {
					kept = append(kept, snack)
				}
			}
			if len(kept) == len(day.Snacks) {
				return s
			}
			day.Snacks = kept
		}
	case domain.MealBreakfast:
		if day.Breakfast == nil {
			return s
		}
		day.Breakfast = nil
	case domain.MealLunch:
		if day.Lunch == nil {
			return s
		}
		day.Lunch = nil
	case domain.MealDinner:
		if day.Dinner == nil {
			return s
		}
		day.Dinner = nil
	default:
		return s
	}

	plan.Days[c.Date] = day
	plan.LastModified = domain.Timestamp()
	return s.withWeekPlan(plan)
}

func patchSlot(slot domain.MealSlot, updates SlotUpdates) domain.MealSlot {
	if updates.Notes != nil {
		slot.Notes = *updates.Notes
	}
	if updates.Servings != nil {
		slot.Servings = *updates.Servings
	}
	if updates.CustomMeal != nil {
		slot.CustomMeal = *updates.CustomMeal
	}
	return slot
}

func applyUpdateMeal(s State, c UpdateMeal) State {
	plan, ok := s.WeekPlans[c.WeekPlanID]
	if !ok {
		return s
	}
	if _, ok := plan.Days[c.Date]; !ok {
		return s
	}

	plan = plan.Clone()
	day := plan.Days[c.Date]

	switch c.MealType {
	case domain.MealSnacks:
		matched := false
		for i, snack := range day.Snacks {
			if snack.ID == c.MealID {
				day.Snacks[i] = patchSlot(snack, c.Updates)
				matched = true
			}
		}
		if !matched {
			return s
		}
	case domain.MealBreakfast:
		if day.Breakfast == nil || day.Breakfast.ID != c.MealID {
			return s
		}
		patched := patchSlot(*day.Breakfast, c.Updates)
		day.Breakfast = &patched
	case domain.MealLunch:
		if day.Lunch == nil || day.Lunch.ID != c.MealID {
			return s
		}
		patched := patchSlot(*day.Lunch, c.Updates)
		day.Lunch = &patched
	case domain.MealDinner:
		if day.Dinner == nil || day.Dinner.ID != c.MealID {
			return s
		}
		patched := patchSlot(*day.Dinner, c.Updates)
		day.Dinner = &patched
	default:
		return s
	}

	plan.Days[c.Date] = day
	plan.LastModified = domain.Timestamp()
	return s.withWeekPlan(plan)
}

// extractSlot pulls the referenced meal out of a day, returning the updated
// day. ok is false when the reference does not match anything.
func extractSlot(day domain.DayPlan, mt domain.MealType, mealID string) (domain.DayPlan, domain.MealSlot, bool) {
	switch mt {
	case domain.MealSnacks:
		for i, snack := range day.Snacks {
			if snack.ID == mealID {
				day.Snacks = append(append(day.Snacks[:0:0], day.Snacks[:i]...), day.Snacks[i+1:]...)
				return day, snack, true
			}
		}
	case domain.MealBreakfast:
		if day.Breakfast != nil && day.Breakfast.ID == mealID {
			meal := *day.Breakfast
			day.Breakfast = nil
			return day, meal, true
		}
	case domain.MealLunch:
		if day.Lunch != nil && day.Lunch.ID == mealID {
			meal := *day.Lunch
			day.Lunch = nil
			return day, meal, true
		}
	case domain.MealDinner:
		if day.Dinner != nil && day.Dinner.ID == mealID {
			meal := *day.Dinner
			day.Dinner = nil
			return day, meal, true
		}
	}
	return day, domain.MealSlot{}, false
}

func applyMoveMeal(s State, c MoveMeal) State {
	fromPlan, ok := s.WeekPlans[c.From.WeekPlanID]
	if !ok || !c.To.MealType.Valid() {
		return s
	}
	if _, ok := fromPlan.Days[c.From.Date]; !ok {
		return s
	}

	samePlan := c.From.WeekPlanID == c.To.WeekPlanID

	toPlan := fromPlan
	if !samePlan {
		toPlan, ok = s.WeekPlans[c.To.WeekPlanID]
		if !ok {
			return s
		}
	}
	if !dateInPlan(toPlan, c.To.Date) {
		return s
	}

	fromPlan = fromPlan.Clone()
	fromDay, meal, ok := extractSlot(fromPlan.Days[c.From.Date], c.From.MealType, c.From.MealID)
	if !ok {
		return s
	}
	fromPlan.Days[c.From.Date] = fromDay
	fromPlan.LastModified = domain.Timestamp()

	// The destination slot is a new placement, never the same identity.
	meal.ID = domain.NewID()

	if samePlan {
		toDay, ok := fromPlan.Days[c.To.Date]
		if !ok {
			toDay = domain.DayPlan{Date: c.To.Date}
		}
		fromPlan.Days[c.To.Date] = placeMeal(toDay, c.To.MealType, meal)
		return s.withWeekPlan(fromPlan)
	}

	toPlan = toPlan.Clone()
	toDay, ok := toPlan.Days[c.To.Date]
	if !ok {
		toDay = domain.DayPlan{Date: c.To.Date}
	}
	toPlan.Days[c.To.Date] = placeMeal(toDay, c.To.MealType, meal)
	toPlan.LastModified = domain.Timestamp()

	return s.withWeekPlan(fromPlan).withWeekPlan(toPlan)
}

func applyUpdateShoppingList(s State, c UpdateShoppingList) State {
	list, ok := s.ShoppingLists[c.ID]
	if !ok {
		return s
	}
	list = list.Clone()
	if c.Updates.Items != nil {
		list.Items = append([]domain.ShoppingListItem(nil), *c.Updates.Items...)
	}
	if c.Updates.TotalEstimatedCost != nil {
		list.TotalEstimatedCost = *c.Updates.TotalEstimatedCost
	}
	list.LastModified = domain.Timestamp()
	return s.withShoppingList(list)
}

func applyToggleShoppingItem(s State, c ToggleShoppingItem) State {
	list, ok := s.ShoppingLists[c.ListID]
	if !ok {
		return s
	}
	list = list.Clone()
	for i, item := range list.Items {
		if item.ID == c.ItemID {
			list.Items[i].Checked = !item.Checked
			list.LastModified = domain.Timestamp()
			return s.withShoppingList(list)
		}
	}
	return s
}

func applyDeleteTemplate(s State, c DeleteTemplate) State {
	if _, ok := s.Templates[c.ID]; !ok {
		return s
	}
	out := s
	out.Templates = make(map[string]domain.MealPlanTemplate, len(s.Templates))
	for id, t := range s.Templates {
		if id != c.ID {
			out.Templates[id] = t
		}
	}
	return out
}
