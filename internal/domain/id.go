package domain

import "github.com/google/uuid"

// NewID returns a fresh unique id for recipes, slots, plans, lists and
// templates.
func NewID() string {
	return uuid.NewString()
}
