package recipe

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"recipe-resolver/internal/common"
)

// getterPrefix marks a scalar expression as a getter.
const getterPrefix = "$"

// --- Variables YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Variables.
// Accepts:
//   - Array of names: [items, text]
//   - Mapping of name to format: {items: list, text: text}
func (v *Variables) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string

		err := node.Decode(&names)
		if err != nil {
			return err
		}

		*v = names

		return nil

	case yaml.MappingNode:
		names := make([]string, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			names = append(names, node.Content[i].Value)
		}

		*v = names

		return nil

	default:
		return fmt.Errorf("line %d: expected variable list or mapping, got %v", node.Line, node.Kind)
	}
}

// --- Child YAML methods ---

// yamlChild is the wire form of a child: exactly one key is set.
type yamlChild struct {
	Text   *Expression `yaml:"text,omitempty"`
	Input  *Expression `yaml:"input,omitempty"`
	Extern *Extern     `yaml:"extern,omitempty"`
	Zone   *Children   `yaml:"zone,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Child.
// The child is a mapping with exactly one of text, input, extern or zone.
func (c *Child) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: child must be a mapping with exactly one key", node.Line)
	}

	var raw yamlChild

	err := node.Decode(&raw)
	if err != nil {
		return err
	}

	switch {
	case raw.Text != nil:
		*c = Child{Kind: ChildText, Content: *raw.Text}

	case raw.Input != nil:
		if raw.Input.Kind != ExprGetter {
			return fmt.Errorf("line %d: input must be bound to a getter", node.Line)
		}

		*c = Child{Kind: ChildInput, OnChange: raw.Input.Getter}

	case raw.Extern != nil:
		if raw.Extern.ID == "" {
			return fmt.Errorf("line %d: extern without id", node.Line)
		}

		*c = Child{Kind: ChildExtern, Extern: raw.Extern}

	case raw.Zone != nil:
		*c = Child{Kind: ChildZone, Children: *raw.Zone}

	default:
		return fmt.Errorf("line %d: unknown child kind %q", node.Line, node.Content[0].Value)
	}

	return nil
}

// MarshalYAML implements custom YAML marshaling for Child.
func (c Child) MarshalYAML() (any, error) {
	switch c.Kind {
	case ChildText:
		return yamlChild{Text: &c.Content}, nil
	case ChildInput:
		input := Get(c.OnChange)
		return yamlChild{Input: &input}, nil
	case ChildExtern:
		return yamlChild{Extern: c.Extern}, nil
	case ChildZone:
		return yamlChild{Zone: &c.Children}, nil
	default:
		return nil, fmt.Errorf("cannot marshal child of kind %s", c.Kind)
	}
}

// --- Expression YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Expression.
// Accepts:
//   - Getter: "$items[2].label"
//   - Literal: any other scalar
//   - List: a sequence of expressions
//   - Object: a mapping of keys to expressions
func (e *Expression) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		path, ok := strings.CutPrefix(node.Value, getterPrefix)
		quoted := node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0

		if !ok || quoted {
			*e = Lit(node.Value)
			return nil
		}

		g, err := ParseGetter(path)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*e = Get(g)

		return nil

	case yaml.SequenceNode:
		items := make([]Expression, len(node.Content))
		for i, item := range node.Content {
			if err := items[i].UnmarshalYAML(item); err != nil {
				return err
			}
		}

		*e = List(items...)

		return nil

	case yaml.MappingNode:
		fields := make(map[string]Expression, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if _, dup := fields[key]; dup {
				return fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
			}

			var field Expression
			if err := field.UnmarshalYAML(node.Content[i+1]); err != nil {
				return err
			}

			fields[key] = field
		}

		*e = Object(fields)

		return nil

	case yaml.AliasNode:
		return e.UnmarshalYAML(node.Alias)

	default:
		return errors.New("unsupported expression node")
	}
}

// MarshalYAML implements custom YAML marshaling for Expression.
func (e Expression) MarshalYAML() (any, error) {
	switch e.Kind {
	case ExprLiteral:
		if strings.HasPrefix(e.Literal, getterPrefix) {
			return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: e.Literal}, nil
		}

		return e.Literal, nil
	case ExprGetter:
		return getterPrefix + e.Getter.String(), nil
	case ExprList:
		return e.Items, nil
	case ExprObject:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range common.SortedKeys(e.Fields) {
			value := &yaml.Node{}
			if err := value.Encode(e.Fields[key]); err != nil {
				return nil, err
			}

			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
		}

		return node, nil
	default:
		return nil, fmt.Errorf("cannot marshal expression of kind %s", e.Kind)
	}
}
