package domain

// RecipeResolver turns a recipe id into recipe data. Implementations must
// tolerate unknown ids by returning ok=false; callers never assume a recipe
// exists.
type RecipeResolver interface {
	Resolve(id string) (Recipe, bool)
}

// KeyValue is the persistence port. State snapshots are serialized as JSON
// and stored under a fixed key per store. Get returns ok=false when the key
// has never been written; the caller falls back to its default state.
type KeyValue interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
