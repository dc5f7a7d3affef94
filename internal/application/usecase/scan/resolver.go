package scan

import "github.com/budgetsnap/backend/internal/domain/entity"

// BuiltinFallbackLabel is the resolver fallback when no category set was
// supplied and the built-in enumeration is in effect.
const BuiltinFallbackLabel = "other"

// ConfiguredFallbackLabel is the resolver fallback when resolving against
// a caller-supplied category set.
const ConfiguredFallbackLabel = "Miscellaneous"

// Resolver maps AI-suggested category labels onto a known category set.
// Matching is exact and case-sensitive; anything unrecognized maps to the
// fallback label.
type Resolver struct {
	available map[string]struct{}
	fallback  string
}

// NewResolver builds a resolver over the given category names. An empty
// set falls back to the built-in category enumeration with "other" as the
// fallback label.
func NewResolver(available []string) *Resolver {
	fallback := ConfiguredFallbackLabel
	if len(available) == 0 {
		available = entity.BuiltinCategories
		fallback = BuiltinFallbackLabel
	}
	set := make(map[string]struct{}, len(available))
	for _, name := range available {
		set[name] = struct{}{}
	}
	return &Resolver{available: set, fallback: fallback}
}

// Resolve returns the suggested label when it names a known category, the
// fallback label otherwise.
func (r *Resolver) Resolve(suggested string) string {
	if _, ok := r.available[suggested]; ok {
		return suggested
	}
	return r.fallback
}

// Fallback returns the resolver's fallback label.
func (r *Resolver) Fallback() string {
	return r.fallback
}
