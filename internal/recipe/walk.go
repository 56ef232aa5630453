package recipe

import (
	"errors"

	"recipe-resolver/internal/common"
)

// ErrSkipChildren can be returned by a Walk callback on a zone to skip its
// nested children.
var ErrSkipChildren = errors.New("skip children")

// Walk visits every child of the component depth-first in document order.
// trace holds the child positions from the root block down to the visited
// child; it is only valid during the callback.
func (c *Component) Walk(fn func(trace []int, child *Child) error) error {
	return walkChildren(c.Children, nil, fn)
}

func walkChildren(children Children, trace []int, fn func([]int, *Child) error) error {
	for i := range children {
		child := &children[i]
		at := append(trace, i)

		err := fn(at, child)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}

		if err != nil {
			return err
		}

		if child.Kind == ChildZone {
			if err := walkChildren(child.Children, at, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// WalkGetters visits every getter of expr together with the structural
// index context leading to it from the expression root. Object fields are
// visited in ascending key order.
func WalkGetters(expr Expression, fn func(g Getter, at []Index) error) error {
	return walkExpression(expr, nil, fn)
}

func walkExpression(expr Expression, at []Index, fn func(Getter, []Index) error) error {
	switch expr.Kind {
	case ExprGetter:
		return fn(expr.Getter, at)

	case ExprList:
		for i, item := range expr.Items {
			if err := walkExpression(item, append(at, Quantity(i)), fn); err != nil {
				return err
			}
		}

	case ExprObject:
		for _, key := range common.SortedKeys(expr.Fields) {
			if err := walkExpression(expr.Fields[key], append(at, Key(key)), fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Getters returns every getter of expr in traversal order.
func Getters(expr Expression) []Getter {
	var out []Getter

	_ = WalkGetters(expr, func(g Getter, _ []Index) error {
		out = append(out, g)
		return nil
	})

	return out
}

// Reads returns the getters a child reads directly: its text content, its
// input getter, or every property of an extern. Zones read nothing themselves.
func (c *Child) Reads() []Getter {
	switch c.Kind {
	case ChildText:
		return Getters(c.Content)
	case ChildInput:
		return []Getter{c.OnChange}
	case ChildExtern:
		var out []Getter
		for _, key := range c.Extern.PropertyKeys() {
			out = append(out, Getters(c.Extern.Properties[key])...)
		}

		return out
	default:
		return nil
	}
}
