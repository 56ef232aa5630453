package binding

import (
	"slices"

	"recipe-resolver/internal/common"
	"recipe-resolver/internal/recipe"
)

// Sources maps a component id to the ordered getters read from it.
//
// In the Direct table the key is the component whose declared variable the
// getters read. In the Redirection table the key is the owner component whose
// exposed property the getters read.
type Sources map[string][]recipe.Getter

// ByProperty maps a property key to its Sources.
type ByProperty map[string]Sources

// Table maps an embedded instance id to its properties.
type Table map[string]ByProperty

// Key identifies one property of one embedded instance.
type Key struct {
	Instance string
	Property string
}

// String returns "instance.property".
func (k Key) String() string {
	return k.Instance + "." + k.Property
}

// Add appends getters under component, skipping getters already present.
func (s Sources) Add(component string, getters ...recipe.Getter) {
	current := s[component]
	for _, g := range getters {
		if !containsGetter(current, g) {
			current = append(current, g)
		}
	}

	s[component] = current
}

// Merge adds every getter of other into s.
func (s Sources) Merge(other Sources) {
	for _, component := range common.SortedKeys(other) {
		s.Add(component, other[component]...)
	}
}

// Count returns the total number of getters.
func (s Sources) Count() int {
	n := 0
	for _, getters := range s {
		n += len(getters)
	}

	return n
}

// Add appends getters to (instance, property, component), creating rows as
// needed and skipping duplicates.
func (t Table) Add(instance, property, component string, getters ...recipe.Getter) {
	t.ensure(instance, property).Add(component, getters...)
}

// ensure returns the Sources row for (instance, property), creating it empty.
func (t Table) ensure(instance, property string) Sources {
	byProperty, ok := t[instance]
	if !ok {
		byProperty = ByProperty{}
		t[instance] = byProperty
	}

	sources, ok := byProperty[property]
	if !ok {
		sources = Sources{}
		byProperty[property] = sources
	}

	return sources
}

// Lookup returns the Sources row for (instance, property), or nil.
func (t Table) Lookup(instance, property string) Sources {
	return t[instance][property]
}

// Merge adds every row of other into t. Merging is a set union: it is
// commutative and associative up to getter order.
func (t Table) Merge(other Table) {
	for _, instance := range common.SortedKeys(other) {
		for _, property := range common.SortedKeys(other[instance]) {
			t.ensure(instance, property).Merge(other[instance][property])
		}
	}
}

// Keys returns every (instance, property) pair in ascending order.
func (t Table) Keys() []Key {
	var keys []Key

	for _, instance := range common.SortedKeys(t) {
		for _, property := range common.SortedKeys(t[instance]) {
			keys = append(keys, Key{Instance: instance, Property: property})
		}
	}

	return keys
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for instance, byProperty := range t {
		outByProperty := make(ByProperty, len(byProperty))
		for property, sources := range byProperty {
			outSources := make(Sources, len(sources))
			for component, getters := range sources {
				outSources[component] = slices.Clone(getters)
			}

			outByProperty[property] = outSources
		}

		out[instance] = outByProperty
	}

	return out
}

func containsGetter(getters []recipe.Getter, g recipe.Getter) bool {
	return slices.ContainsFunc(getters, g.Equal)
}
