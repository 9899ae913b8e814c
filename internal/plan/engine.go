package plan

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"whiskplan/internal/domain"
	"whiskplan/internal/logger"
)

// StorageKey is the fixed persistence key for the engine's snapshot.
const StorageKey = "whiskplan-meal-plans"

// DragType distinguishes the two kinds of draggable items.
type DragType string

const (
	// DragRecipe drags a catalog recipe not yet placed in a plan.
	DragRecipe DragType = "recipe"
	// DragMeal drags an existing placed meal.
	DragMeal DragType = "meal"
)

// DragPayload is the structured description of what is being dragged.
// Exactly one of RecipeID or MealSlot is set, according to Type.
type DragPayload struct {
	Type     DragType `json:"type"`
	RecipeID string   `json:"recipeId,omitempty"`
	MealSlot *SlotRef `json:"mealSlot,omitempty"`
}

// NutritionSummary is the week-level nutrition rollup.
type NutritionSummary struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Engine is the authoritative mutator of week-plan, shopping-list and
// template state. Every mutation goes through the pure Apply transition;
// the engine adds recipe resolution, persistence mirroring and logging.
type Engine struct {
	mu      sync.RWMutex
	state   State
	recipes domain.RecipeResolver
	kv      domain.KeyValue
	log     *logger.Logger
}

// NewEngine loads the persisted snapshot from kv, falling back to the empty
// default state.
func NewEngine(recipes domain.RecipeResolver, kv domain.KeyValue, log *logger.Logger) *Engine {
	e := &Engine{state: DefaultState(), recipes: recipes, kv: kv, log: log}

	data, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Error("loading meal-plan state: %v", err)
		return e
	}
	if ok {
		if err := json.Unmarshal(data, &e.state); err != nil {
			log.Error("decoding meal-plan state, starting empty: %v", err)
			e.state = DefaultState()
		}
	}
	if e.state.WeekPlans == nil {
		e.state = DefaultState()
	}
	return e
}

// dispatch applies one command and mirrors the result. Persistence failures
// are logged and never roll back the in-memory state.
func (e *Engine) dispatch(cmd Command) {
	e.state = Apply(e.state, cmd)

	data, err := json.Marshal(e.state)
	if err != nil {
		e.log.Error("encoding meal-plan state: %v", err)
		return
	}
	if err := e.kv.Set(StorageKey, data); err != nil {
		e.log.Error("persisting meal-plan state: %v", err)
	}
}

// CreateWeekPlan creates an empty plan for the week containing the given
// date, normalized to Monday, and makes it current. Returns the new id.
func (e *Engine) CreateWeekPlan(anyDateInWeek, title string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := domain.WeekStart(anyDateInWeek)
	if title == "" {
		title = fmt.Sprintf("Week of %s", start)
	}
	now := domain.Timestamp()
	plan := domain.WeekPlan{
		ID:           domain.NewID(),
		StartDate:    start,
		EndDate:      domain.WeekEnd(start),
		Days:         make(map[string]domain.DayPlan),
		Title:        title,
		DateCreated:  now,
		LastModified: now,
	}
	e.dispatch(CreateWeekPlan{Plan: plan})
	e.log.Debug("created week plan %s starting %s", plan.ID, start)
	return plan.ID
}

// UpdateWeekPlan patches a plan's title, notes or budget.
func (e *Engine) UpdateWeekPlan(id string, updates WeekPlanUpdates) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(UpdateWeekPlan{ID: id, Updates: updates})
}

// DeleteWeekPlan removes a plan together with its shopping lists.
func (e *Engine) DeleteWeekPlan(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(DeleteWeekPlan{ID: id})
}

// SetCurrentWeekPlan switches the current plan. Unknown ids no-op.
func (e *Engine) SetCurrentWeekPlan(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(SetCurrentWeekPlan{ID: id})
}

// AddMealToSlot resolves the recipe and places a fresh slot. Unresolvable
// recipe ids are a silent no-op. Zero servings defaults to the recipe's
// native serving count.
func (e *Engine) AddMealToSlot(weekPlanID, date string, mealType domain.MealType, recipeID string, servings int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.recipes.Resolve(recipeID)
	if !ok {
		e.log.Debug("add meal skipped, recipe %s not found", recipeID)
		return
	}
	if servings <= 0 {
		servings = rec.Servings
	}
	meal := domain.MealSlot{
		ID:       domain.NewID(),
		RecipeID: recipeID,
		Servings: servings,
	}
	e.dispatch(AddMeal{WeekPlanID: weekPlanID, Date: date, MealType: mealType, Meal: meal})
}

// RemoveMealFromSlot clears a slot; see RemoveMeal for the mealID rules.
func (e *Engine) RemoveMealFromSlot(weekPlanID, date string, mealType domain.MealType, mealID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(RemoveMeal{WeekPlanID: weekPlanID, Date: date, MealType: mealType, MealID: mealID})
}

// UpdateMealSlot patches an existing slot matched by id.
func (e *Engine) UpdateMealSlot(weekPlanID, date string, mealType domain.MealType, mealID string, updates SlotUpdates) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(UpdateMeal{WeekPlanID: weekPlanID, Date: date, MealType: mealType, MealID: mealID, Updates: updates})
}

// MoveMeal relocates an existing meal. The destination slot gets a fresh id.
func (e *Engine) MoveMeal(from SlotRef, to Target) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(MoveMeal{From: from, To: to})
}

// HandleDrop bridges drag semantics to the mutation primitives: a recipe
// payload places a new meal, a meal payload moves the existing one. It
// performs no validity filtering; that is the reconciler's job.
func (e *Engine) HandleDrop(payload DragPayload, target Target) {
	switch payload.Type {
	case DragRecipe:
		if payload.RecipeID != "" {
			e.AddMealToSlot(target.WeekPlanID, target.Date, target.MealType, payload.RecipeID, 0)
		}
	case DragMeal:
		if payload.MealSlot != nil {
			e.MoveMeal(*payload.MealSlot, target)
		}
	}
}

// effectiveServings returns the slot's override if set, else the recipe's
// native count.
func effectiveServings(meal domain.MealSlot, rec domain.Recipe) int {
	if meal.Servings > 0 {
		return meal.Servings
	}
	return rec.Servings
}

func dayMealSlots(day domain.DayPlan) []domain.MealSlot {
	var out []domain.MealSlot
	for _, slot := range []*domain.MealSlot{day.Breakfast, day.Lunch, day.Dinner} {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return append(out, day.Snacks...)
}

type aggregatedItem struct {
	name      string
	unit      string
	amount    float64
	category  string
	recipeIDs []string
}

// GenerateShoppingList walks every meal in the plan, scales each recipe's
// ingredients by the slot's effective servings, and aggregates by
// (name, unit). It always creates a brand-new list; the returned id is
// empty when the plan does not exist. Cost estimation is a separate pricing
// pass and is left at zero here.
func (e *Engine) GenerateShoppingList(weekPlanID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan, ok := e.state.WeekPlans[weekPlanID]
	if !ok {
		return ""
	}

	aggregate := make(map[string]*aggregatedItem)
	for _, day := range plan.Days {
		for _, meal := range dayMealSlots(day) {
			if meal.RecipeID == "" {
				continue
			}
			rec, ok := e.recipes.Resolve(meal.RecipeID)
			if !ok || rec.Servings <= 0 {
				// Deleted recipes keep their slots but contribute nothing.
				continue
			}
			multiplier := float64(effectiveServings(meal, rec)) / float64(rec.Servings)

			for _, ing := range rec.Ingredients {
				key := ing.Name + "\x00" + ing.Unit
				item, ok := aggregate[key]
				if !ok {
					item = &aggregatedItem{
						name:     ing.Name,
						unit:     ing.Unit,
						category: categorizeIngredient(ing.Name),
					}
					aggregate[key] = item
				}
				item.amount += ing.Amount * multiplier
				if !containsID(item.recipeIDs, meal.RecipeID) {
					item.recipeIDs = append(item.recipeIDs, meal.RecipeID)
				}
			}
		}
	}

	items := make([]domain.ShoppingListItem, 0, len(aggregate))
	for _, agg := range aggregate {
		items = append(items, domain.ShoppingListItem{
			ID:        domain.NewID(),
			Name:      agg.name,
			Amount:    math.Round(agg.amount*100) / 100,
			Unit:      agg.unit,
			Category:  agg.category,
			RecipeIDs: agg.recipeIDs,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})

	now := domain.Timestamp()
	list := domain.ShoppingList{
		ID:            domain.NewID(),
		WeekPlanID:    weekPlanID,
		Items:         items,
		DateGenerated: now,
		LastModified:  now,
	}
	e.dispatch(PutShoppingList{List: list})
	e.log.Debug("generated shopping list %s for plan %s (%d items)", list.ID, weekPlanID, len(items))
	return list.ID
}

// ToggleShoppingItem flips an item's checked flag.
func (e *Engine) ToggleShoppingItem(listID, itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(ToggleShoppingItem{ListID: listID, ItemID: itemID})
}

// UpdateShoppingList patches a list's items or estimated cost in place,
// leaving nil fields untouched.
func (e *Engine) UpdateShoppingList(listID string, updates ShoppingListUpdates) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(UpdateShoppingList{ID: listID, Updates: updates})
}

// CreateTemplate snapshots a plan's days, title, notes and budget under a
// name. Returns the template id, or empty when the plan does not exist.
func (e *Engine) CreateTemplate(weekPlanID, name, description string, tags []string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan, ok := e.state.WeekPlans[weekPlanID]
	if !ok {
		return ""
	}
	tpl := domain.MealPlanTemplate{
		ID:          domain.NewID(),
		Name:        name,
		Description: description,
		WeekPlan: domain.TemplateBody{
			Days:   plan.Days,
			Title:  plan.Title,
			Notes:  plan.Notes,
			Budget: plan.Budget,
		}.Clone(),
		Tags:        append([]string(nil), tags...),
		DateCreated: domain.Timestamp(),
	}
	e.dispatch(CreateTemplate{Template: tpl})
	return tpl.ID
}

// ApplyTemplate instantiates a new week plan from a template, anchored to
// the Monday of the given date, and makes it current. The snapshot's day
// contents are copied as-is, meal slot ids included; callers treating slot
// ids as globally unique should not apply the same template twice.
func (e *Engine) ApplyTemplate(templateID, startDate string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tpl, ok := e.state.Templates[templateID]
	if !ok {
		return ""
	}
	start := domain.WeekStart(startDate)
	now := domain.Timestamp()
	plan := domain.WeekPlan{
		ID:           domain.NewID(),
		StartDate:    start,
		EndDate:      domain.WeekEnd(start),
		Days:         tpl.WeekPlan.Clone().Days,
		Title:        tpl.WeekPlan.Title,
		Notes:        tpl.WeekPlan.Notes,
		Budget:       tpl.WeekPlan.Budget,
		DateCreated:  now,
		LastModified: now,
	}
	e.dispatch(CreateWeekPlan{Plan: plan})
	return plan.ID
}

// DeleteTemplate removes a template.
func (e *Engine) DeleteTemplate(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(DeleteTemplate{ID: id})
}

// UpdateSettings replaces the engine's presentation settings.
func (e *Engine) UpdateSettings(settings domain.PlanSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(SetSettings{Settings: settings})
}

// Reset restores the empty default state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(Reset{})
}

// WeekPlan returns a deep copy of the plan with the given id.
func (e *Engine) WeekPlan(id string) (domain.WeekPlan, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	plan, ok := e.state.WeekPlans[id]
	if !ok {
		return domain.WeekPlan{}, false
	}
	return plan.Clone(), true
}

// CurrentWeekPlan returns the current plan, if one is set.
func (e *Engine) CurrentWeekPlan() (domain.WeekPlan, bool) {
	e.mu.RLock()
	id := e.state.CurrentWeekPlanID
	e.mu.RUnlock()
	if id == "" {
		return domain.WeekPlan{}, false
	}
	return e.WeekPlan(id)
}

// WeekPlanForDate returns the plan whose week contains the given date.
func (e *Engine) WeekPlanForDate(date string) (domain.WeekPlan, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	start := domain.WeekStart(date)
	for _, plan := range e.state.WeekPlans {
		if plan.StartDate == start {
			return plan.Clone(), true
		}
	}
	return domain.WeekPlan{}, false
}

// ShoppingList returns the list with the given id.
func (e *Engine) ShoppingList(id string) (domain.ShoppingList, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	list, ok := e.state.ShoppingLists[id]
	if !ok {
		return domain.ShoppingList{}, false
	}
	return list.Clone(), true
}

// ShoppingListForWeekPlan returns the most recently generated list for a
// plan. Lists are independent snapshots, so several may exist.
func (e *Engine) ShoppingListForWeekPlan(weekPlanID string) (domain.ShoppingList, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var best domain.ShoppingList
	found := false
	for _, list := range e.state.ShoppingLists {
		if list.WeekPlanID != weekPlanID {
			continue
		}
		if !found || list.DateGenerated > best.DateGenerated {
			best = list
			found = true
		}
	}
	if !found {
		return domain.ShoppingList{}, false
	}
	return best.Clone(), true
}

// Template returns the template with the given id.
func (e *Engine) Template(id string) (domain.MealPlanTemplate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tpl, ok := e.state.Templates[id]
	if !ok {
		return domain.MealPlanTemplate{}, false
	}
	return tpl.Clone(), true
}

// DayMeals returns the day plan for a date within a plan.
func (e *Engine) DayMeals(weekPlanID, date string) (domain.DayPlan, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	plan, ok := e.state.WeekPlans[weekPlanID]
	if !ok {
		return domain.DayPlan{}, false
	}
	day, ok := plan.Days[date]
	if !ok {
		return domain.DayPlan{}, false
	}
	return day.Clone(), true
}

// WeekNutrition recomputes the week's nutrition rollup from current state,
// scaling each meal by its servings ratio. Meals whose recipe lacks
// nutrition info, or cannot be resolved, are skipped.
func (e *Engine) WeekNutrition(weekPlanID string) NutritionSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var total NutritionSummary
	plan, ok := e.state.WeekPlans[weekPlanID]
	if !ok {
		return total
	}
	for _, day := range plan.Days {
		for _, meal := range dayMealSlots(day) {
			rec, ok := e.resolveMeal(meal)
			if !ok || rec.NutritionalInfo == nil {
				continue
			}
			multiplier := float64(effectiveServings(meal, rec)) / float64(rec.Servings)
			total.Calories += rec.NutritionalInfo.Calories * multiplier
			total.Protein += rec.NutritionalInfo.Protein * multiplier
			total.Carbs += rec.NutritionalInfo.Carbs * multiplier
			total.Fat += rec.NutritionalInfo.Fat * multiplier
		}
	}
	return total
}

// WeekBudget recomputes the week's total cost: pricePerServing times
// effective servings for every meal. Recipes without a price are skipped.
func (e *Engine) WeekBudget(weekPlanID string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var total float64
	plan, ok := e.state.WeekPlans[weekPlanID]
	if !ok {
		return 0
	}
	for _, day := range plan.Days {
		for _, meal := range dayMealSlots(day) {
			rec, ok := e.resolveMeal(meal)
			if !ok || rec.PricePerServing <= 0 {
				continue
			}
			total += rec.PricePerServing * float64(effectiveServings(meal, rec))
		}
	}
	return total
}

func (e *Engine) resolveMeal(meal domain.MealSlot) (domain.Recipe, bool) {
	if meal.RecipeID == "" {
		return domain.Recipe{}, false
	}
	rec, ok := e.recipes.Resolve(meal.RecipeID)
	if !ok || rec.Servings <= 0 {
		return domain.Recipe{}, false
	}
	return rec, true
}

// WeekDates returns the 7 consecutive dates starting at startDate.
func (e *Engine) WeekDates(startDate string) []string {
	return domain.WeekDates(startDate)
}

// Settings returns the engine's presentation settings.
func (e *Engine) Settings() domain.PlanSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Settings
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
