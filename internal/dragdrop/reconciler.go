// Package dragdrop decides whether a drag-and-drop gesture is a valid plan
// mutation and, when it is, translates it into a single engine call. The
// reconciler holds no plan state, only the transient "what is being dragged".
package dragdrop

import (
	"sync"

	"whiskplan/internal/logger"
	"whiskplan/internal/plan"
)

// Dropper is the slice of the meal-plan engine the reconciler needs.
type Dropper interface {
	HandleDrop(payload plan.DragPayload, target plan.Target)
}

// Reconciler tracks an in-flight drag and applies confirmed drops.
type Reconciler struct {
	mu      sync.Mutex
	payload *plan.DragPayload
	engine  Dropper
	log     *logger.Logger
}

func New(engine Dropper, log *logger.Logger) *Reconciler {
	return &Reconciler{engine: engine, log: log}
}

// StartDrag records the payload of a newly started drag, replacing any
// previous one.
func (r *Reconciler) StartDrag(payload plan.DragPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := payload
	r.payload = &p
}

// Dragging reports whether a drag is in progress.
func (r *Reconciler) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payload != nil
}

// CurrentPayload returns the in-flight payload, if any.
func (r *Reconciler) CurrentPayload() (plan.DragPayload, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.payload == nil {
		return plan.DragPayload{}, false
	}
	return *r.payload, true
}

// EndDrag cancels the in-flight drag without mutating any plan.
func (r *Reconciler) EndDrag() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = nil
}

// IsValidTarget reports whether dropping the in-flight payload on target
// would be accepted. Pure with respect to plan state: a recipe drag is
// valid anywhere, a meal drag is valid anywhere except its own origin slot.
func (r *Reconciler) IsValidTarget(target plan.Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return validTarget(r.payload, target)
}

func validTarget(payload *plan.DragPayload, target plan.Target) bool {
	if payload == nil {
		return false
	}
	switch payload.Type {
	case plan.DragRecipe:
		return payload.RecipeID != ""
	case plan.DragMeal:
		if payload.MealSlot == nil {
			return false
		}
		origin := payload.MealSlot.Target
		return origin.WeekPlanID != target.WeekPlanID ||
			origin.Date != target.Date ||
			origin.MealType != target.MealType
	}
	return false
}

// Drop confirms the drag on target. A valid drop delegates to the engine;
// an invalid one only clears the transient state. Returns whether a
// mutation was dispatched.
func (r *Reconciler) Drop(target plan.Target) bool {
	r.mu.Lock()
	payload := r.payload
	r.payload = nil
	r.mu.Unlock()

	if !validTarget(payload, target) {
		if payload != nil {
			r.log.Debug("rejected drop of %s onto %s/%s", payload.Type, target.Date, target.MealType)
		}
		return false
	}
	r.engine.HandleDrop(*payload, target)
	return true
}
