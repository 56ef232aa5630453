package recipe

import (
	"fmt"
	"strings"

	"recipe-resolver/internal/diagnostic"
	"recipe-resolver/internal/suggest"
)

// Validate checks the structural consistency of a recipe.
// This is a structural step only; binding resolution reports its own fatal
// errors for references that cannot be followed.
func Validate(m *Model) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("recipe_is_nil", "recipe is nil", "", "")
		return res
	}

	seen := map[string]struct{}{}

	for i := range m.Components {
		c := &m.Components[i]
		if c.ID == "" {
			res.AddError(diagnostic.CodeEmptyComponentID, fmt.Sprintf("component #%d has no id", i), "", "")
			continue
		}

		if _, ok := seen[c.ID]; ok {
			res.AddError(diagnostic.CodeDuplicateComponent, fmt.Sprintf("duplicate component %q", c.ID), c.ID, "")
			continue
		}

		seen[c.ID] = struct{}{}

		validateVariables(res, c)
	}

	exposed := m.ExposedProperties()

	for i := range m.Components {
		validateChildren(res, m, &m.Components[i], exposed)
		res.Merge(validateUsage(&m.Components[i]))
	}

	if _, err := m.EmbeddingOrder(); err != nil {
		res.AddError(diagnostic.CodeEmbeddingCycle, err.Error(), "", "")
	}

	return res
}

func validateVariables(res *diagnostic.Diagnostics, c *Component) {
	declared := map[string]struct{}{}

	for _, name := range c.Variables {
		if _, ok := declared[name]; ok {
			res.AddWarning(diagnostic.CodeDuplicateVariable, fmt.Sprintf("variable %q declared twice", name), c.ID, name)
		}

		declared[name] = struct{}{}
	}
}

// validateChildren reports externs naming unknown components and inputs that
// update something other than declared state or an exposed property.
func validateChildren(
	res *diagnostic.Diagnostics,
	m *Model,
	c *Component,
	exposed map[string]map[string]struct{},
) {
	_ = c.Walk(func(trace []int, child *Child) error {
		switch child.Kind {
		case ChildExtern:
			if _, ok := m.Component(child.Extern.ID); !ok {
				msg := fmt.Sprintf("extern %q does not name a component of this recipe", child.Extern.ID)
				if s, ok := suggest.Closest(child.Extern.ID, m.ComponentIDs()); ok {
					msg += fmt.Sprintf("; did you mean %q?", s)
				}

				res.AddWarning(diagnostic.CodeUnknownComponent, msg, c.ID, tracePath(trace))
			}

		case ChildInput:
			ident := child.OnChange.Ident
			if c.Variables.Contains(ident) {
				return nil
			}

			if _, ok := exposed[c.ID][ident]; ok {
				return nil
			}

			res.AddWarning(diagnostic.CodeInputNotVariable,
				fmt.Sprintf("input updates %q which is neither a variable nor a bound property", ident),
				c.ID, tracePath(trace))
		}

		return nil
	})
}

// validateUsage reports declared variables no child of the component reads.
func validateUsage(c *Component) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	read := map[string]struct{}{}

	_ = c.Walk(func(_ []int, child *Child) error {
		for _, g := range child.Reads() {
			read[g.Ident] = struct{}{}
		}

		return nil
	})

	for _, name := range c.Variables {
		if _, ok := read[name]; !ok {
			res.AddInfo(diagnostic.CodeUnusedVariable, fmt.Sprintf("variable %q is never read", name), c.ID, name)
			read[name] = struct{}{}
		}
	}

	return res
}

// tracePath renders a child trace as "children[0].children[2]".
func tracePath(trace []int) string {
	parts := make([]string, len(trace))
	for i, pos := range trace {
		parts[i] = fmt.Sprintf("children[%d]", pos)
	}

	return strings.Join(parts, ".")
}
