package notify

import (
	"slices"

	"recipe-resolver/internal/binding"
	"recipe-resolver/internal/common"
	"recipe-resolver/internal/recipe"
)

// MergePolicy says how a child listening to several notifiers is rebuilt.
type MergePolicy int

const (
	// MergeSingle means exactly one notifier drives the child.
	MergeSingle MergePolicy = iota
	// MergeAny rebuilds the child when any of its notifiers fires.
	MergeAny
)

// String returns a human-readable policy name.
func (p MergePolicy) String() string {
	switch p {
	case MergeSingle:
		return "single"
	case MergeAny:
		return "any"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p MergePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// WiringKind says how a bound extern property receives change notifications.
type WiringKind int

const (
	// WiringLive means the getter reads a declared variable of the embedding
	// component, which owns the notifier and the updater.
	WiringLive WiringKind = iota
	// WiringForward means the getter reads a property the embedding component
	// receives itself; the embedder's notifier and updater are forwarded.
	WiringForward
)

// String returns a human-readable wiring name.
func (k WiringKind) String() string {
	switch k {
	case WiringLive:
		return "live"
	case WiringForward:
		return "forward"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k WiringKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Listenable is a non-extern child that must be rebuilt on change.
type Listenable struct {
	// Trace is the child position from the component root block down.
	Trace []int `yaml:"trace,flow" json:"trace"`
	// Kind is the child kind.
	Kind string `yaml:"kind" json:"kind"`
	// Notifiers are the getters whose changes rebuild the child, deduplicated.
	Notifiers []string `yaml:"notifiers" json:"notifiers"`
	// Merge combines several notifiers.
	Merge MergePolicy `yaml:"merge" json:"merge"`
}

// Wiring describes how one getter bound to an extern property is notified.
type Wiring struct {
	Instance string     `yaml:"instance" json:"instance"`
	Property string     `yaml:"property" json:"property"`
	Getter   string     `yaml:"getter" json:"getter"`
	Kind     WiringKind `yaml:"kind" json:"kind"`
	// Through lists the owners whose properties the binding is redirected
	// through; each must forward the notifier to its inner instance.
	Through []string `yaml:"through,omitempty" json:"through,omitempty"`
}

// ComponentPlan is the notification plan of one component.
type ComponentPlan struct {
	Component   string       `yaml:"component" json:"component"`
	Listenables []Listenable `yaml:"listenables,omitempty" json:"listenables,omitempty"`
	Wirings     []Wiring     `yaml:"wirings,omitempty" json:"wirings,omitempty"`
}

// Plan is the notification plan of a whole recipe.
type Plan struct {
	Components []ComponentPlan `yaml:"components" json:"components"`
}

// Build computes the notification plan of every component of m, visiting
// components in the given order.
func Build(m *recipe.Model, resolved *binding.Resolved, order []string) *Plan {
	plan := &Plan{Components: make([]ComponentPlan, 0, len(order))}

	for _, id := range order {
		c, ok := m.Component(id)
		if !ok {
			continue
		}

		plan.Components = append(plan.Components, buildComponent(c, resolved))
	}

	return plan
}

func buildComponent(c *recipe.Component, resolved *binding.Resolved) ComponentPlan {
	cp := ComponentPlan{Component: c.ID}

	_ = c.Walk(func(trace []int, child *recipe.Child) error {
		switch child.Kind {
		case recipe.ChildText, recipe.ChildInput:
			if l, ok := listenable(trace, child); ok {
				cp.Listenables = append(cp.Listenables, l)
			}

		case recipe.ChildExtern:
			cp.Wirings = append(cp.Wirings, wirings(c.ID, child.Extern, resolved)...)
		}

		return nil
	})

	return cp
}

func listenable(trace []int, child *recipe.Child) (Listenable, bool) {
	var notifiers []string

	for _, g := range child.Reads() {
		if s := g.String(); !slices.Contains(notifiers, s) {
			notifiers = append(notifiers, s)
		}
	}

	if common.IsEmpty(notifiers) {
		return Listenable{}, false
	}

	merge := MergeSingle
	if common.IsMultiple(notifiers) {
		merge = MergeAny
	}

	return Listenable{
		Trace:     slices.Clone(trace),
		Kind:      child.Kind.String(),
		Notifiers: notifiers,
		Merge:     merge,
	}, true
}

func wirings(component string, ext *recipe.Extern, resolved *binding.Resolved) []Wiring {
	var out []Wiring

	redirections := resolved.RedirectionsOf(ext.ID)

	for _, property := range ext.PropertyKeys() {
		through := common.SortedKeys(redirections[property])

		for _, g := range recipe.Getters(ext.Properties[property]) {
			w := Wiring{
				Instance: ext.ID,
				Property: property,
				Getter:   g.String(),
				Kind:     WiringForward,
				Through:  through,
			}
			if resolved.IsVariable(component, g.Ident) {
				w.Kind = WiringLive
			}

			out = append(out, w)
		}
	}

	return out
}
