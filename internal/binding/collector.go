package binding

import (
	"recipe-resolver/internal/common"
	"recipe-resolver/internal/recipe"
	"recipe-resolver/internal/suggest"
)

// Collection is the output of the collection pass: declared variables per
// component and the two seed tables.
type Collection struct {
	// Variables maps a component id to its declared variable names.
	Variables map[string]map[string]struct{}
	// Exposed maps a component id to the property keys bound on its externs.
	Exposed map[string]map[string]struct{}
	// Direct holds bindings backed by a declared variable of the owner.
	Direct Table
	// Redirections holds bindings backed by an exposed property of the owner.
	Redirections Table
}

// IsVariable reports whether ident is a declared variable of component.
func (c *Collection) IsVariable(component, ident string) bool {
	_, ok := c.Variables[component][ident]
	return ok
}

func (c *Collection) isExposed(component, ident string) bool {
	_, ok := c.Exposed[component][ident]
	return ok
}

// Collect walks every component once and classifies each getter bound to an
// extern property as Direct or Redirection. Getters are classified one by one,
// so a single property may read both a variable and a received property of
// the same owner.
func Collect(m *recipe.Model) (*Collection, error) {
	col := &Collection{
		Variables:    make(map[string]map[string]struct{}, len(m.Components)),
		Exposed:      m.ExposedProperties(),
		Direct:       Table{},
		Redirections: Table{},
	}

	for i := range m.Components {
		c := &m.Components[i]
		if _, dup := col.Variables[c.ID]; dup {
			return nil, &ResolveError{Kind: ErrDuplicateBinding, Component: c.ID}
		}

		variables := make(map[string]struct{}, len(c.Variables))
		for _, name := range c.Variables {
			variables[name] = struct{}{}
		}

		col.Variables[c.ID] = variables
	}

	for i := range m.Components {
		if err := col.collectComponent(&m.Components[i]); err != nil {
			return nil, err
		}
	}

	return col, nil
}

func (col *Collection) collectComponent(c *recipe.Component) error {
	return c.Walk(func(_ []int, child *recipe.Child) error {
		if child.Kind != recipe.ChildExtern {
			return nil
		}

		ext := child.Extern

		for _, property := range ext.PropertyKeys() {
			// Every bound property gets a row, even when bound to literals only.
			col.Direct.ensure(ext.ID, property)

			err := recipe.WalkGetters(ext.Properties[property], func(g recipe.Getter, _ []recipe.Index) error {
				switch {
				case col.IsVariable(c.ID, g.Ident):
					col.Direct.Add(ext.ID, property, c.ID, g)
				case col.isExposed(c.ID, g.Ident):
					col.Redirections.Add(ext.ID, property, c.ID, g)
				default:
					return &ResolveError{
						Kind:       ErrUnresolvedReference,
						Component:  c.ID,
						Ident:      g.Ident,
						Binding:    Key{Instance: ext.ID, Property: property},
						Suggestion: col.suggest(c.ID, g.Ident),
					}
				}

				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// suggest returns the readable identifier of component closest to ident.
func (col *Collection) suggest(component, ident string) string {
	candidates := append(common.SortedKeys(col.Variables[component]), common.SortedKeys(col.Exposed[component])...)

	s, _ := suggest.Closest(ident, candidates)

	return s
}
