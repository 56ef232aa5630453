package binding

import (
	"recipe-resolver/internal/common"
)

// Resolved is the published, read-only result of resolution. Maps returned
// by its accessors are shared and must not be modified.
type Resolved struct {
	variables    map[string]map[string]struct{}
	properties   Table
	redirections Table
}

// IsVariable reports whether ident is a declared variable of component.
// Unknown components have no variables.
func (r *Resolved) IsVariable(component, ident string) bool {
	_, ok := r.variables[component][ident]
	return ok
}

// PropertiesOf returns the direct sources of every bound property of
// instance, or nil if the instance has no bindings.
func (r *Resolved) PropertiesOf(instance string) ByProperty {
	return r.properties[instance]
}

// RedirectionsOf returns the redirection hops of every redirected property of
// instance, including every intermediate hop crossed while resolving it.
func (r *Resolved) RedirectionsOf(instance string) ByProperty {
	return r.redirections[instance]
}

// Instances returns every instance with at least one binding, in ascending order.
func (r *Resolved) Instances() []string {
	return common.SortedKeys(r.properties)
}

// Properties returns the full Direct table.
func (r *Resolved) Properties() Table {
	return r.properties
}

// Redirections returns the full augmented Redirection table.
func (r *Resolved) Redirections() Table {
	return r.redirections
}

// Components returns every component id in ascending order.
func (r *Resolved) Components() []string {
	return common.SortedKeys(r.variables)
}

// VariablesOf returns the declared variables of component in ascending order.
func (r *Resolved) VariablesOf(component string) []string {
	return common.SortedKeys(r.variables[component])
}
