package recipe

import (
	"slices"

	"recipe-resolver/internal/common"
)

// Model is the structural description of a set of components compiled together.
type Model struct {
	Components []Component `yaml:"components"`
}

// Component is a UI component definition: declared state plus a child tree.
type Component struct {
	// ID names the component. Externs refer to components by this id.
	ID string `yaml:"id"`
	// Variables are the declared local state names, in declaration order.
	Variables Variables `yaml:"variables,omitempty"`
	// Children is the ordered child tree.
	Children Children `yaml:"children,omitempty"`
}

// Variables is an ordered list of declared variable names.
type Variables []string

// Contains reports whether name is declared.
func (v Variables) Contains(name string) bool {
	return slices.Contains(v, name)
}

// Children is an ordered list of child nodes.
type Children []Child

// ChildKind represents the variant held by a Child.
type ChildKind int

const (
	ChildUnknown ChildKind = iota
	ChildText              // static or rich content
	ChildInput             // input bound to a change getter
	ChildExtern            // embedded instance of another component
	ChildZone              // nested block of children
)

// String returns a human-readable representation of the ChildKind.
func (k ChildKind) String() string {
	switch k {
	case ChildText:
		return "text"
	case ChildInput:
		return "input"
	case ChildExtern:
		return "extern"
	case ChildZone:
		return "zone"
	default:
		return common.UnknownStr
	}
}

// Child is one node of a component's child tree. Only the fields matching
// Kind are meaningful.
type Child struct {
	Kind ChildKind
	// Content is the displayed expression of a text child.
	Content Expression
	// OnChange is the getter an input child reads and updates.
	OnChange Getter
	// Extern is the embedded instance of an extern child.
	Extern *Extern
	// Children are the nested children of a zone.
	Children Children
}

// Extern is an embedded instance of another component, configured by
// property bindings.
type Extern struct {
	// ID names the embedded component.
	ID string `yaml:"id"`
	// Properties maps property keys to the bound expression.
	Properties map[string]Expression `yaml:"properties,omitempty"`
}

// PropertyKeys returns the bound property keys in ascending order.
func (e *Extern) PropertyKeys() []string {
	return common.SortedKeys(e.Properties)
}

// ExprKind represents the variant held by an Expression.
type ExprKind int

const (
	ExprUnknown ExprKind = iota
	ExprLiteral          // constant text or quantity
	ExprGetter           // read of a variable or property
	ExprList             // items addressed by Quantity(i)
	ExprObject           // fields addressed by Text(key)
)

// String returns a human-readable representation of the ExprKind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "literal"
	case ExprGetter:
		return "getter"
	case ExprList:
		return "list"
	case ExprObject:
		return "object"
	default:
		return common.UnknownStr
	}
}

// Expression is a value tree bound to a property or displayed by a text child.
type Expression struct {
	Kind    ExprKind
	Literal string
	Getter  Getter
	Items   []Expression
	Fields  map[string]Expression
}

// Lit returns a literal expression.
func Lit(value string) Expression {
	return Expression{Kind: ExprLiteral, Literal: value}
}

// Get returns a getter expression.
func Get(g Getter) Expression {
	return Expression{Kind: ExprGetter, Getter: g}
}

// List returns a list expression.
func List(items ...Expression) Expression {
	return Expression{Kind: ExprList, Items: items}
}

// Object returns an object expression.
func Object(fields map[string]Expression) Expression {
	return Expression{Kind: ExprObject, Fields: fields}
}

// Component returns the component with the given id.
func (m *Model) Component(id string) (*Component, bool) {
	for i := range m.Components {
		if m.Components[i].ID == id {
			return &m.Components[i], true
		}
	}

	return nil, false
}

// ComponentIDs returns the ids of every component in declaration order.
func (m *Model) ComponentIDs() []string {
	ids := make([]string, len(m.Components))
	for i := range m.Components {
		ids[i] = m.Components[i].ID
	}

	return ids
}

// ExposedProperties returns, per component id, the property keys bound on
// any extern embedding that component.
func (m *Model) ExposedProperties() map[string]map[string]struct{} {
	exposed := make(map[string]map[string]struct{})

	for i := range m.Components {
		_ = m.Components[i].Walk(func(_ []int, child *Child) error {
			if child.Kind != ChildExtern {
				return nil
			}

			keys, ok := exposed[child.Extern.ID]
			if !ok {
				keys = make(map[string]struct{})
				exposed[child.Extern.ID] = keys
			}

			for key := range child.Extern.Properties {
				keys[key] = struct{}{}
			}

			return nil
		})
	}

	return exposed
}
