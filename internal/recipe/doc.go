// Package recipe provides the structural model of UI components consumed by
// the binding resolver, plus a YAML loader and structural checks.
//
// A recipe lists components. Each component declares local state variables
// and an ordered child tree. Children are text, inputs, zones of nested
// children, or externs: embedded instances of other components configured by
// property bindings.
//
// # Schema Overview
//
//	components:
//	  - id: list
//	    variables: [items]
//	    children:
//	      - extern:
//	          id: row
//	          properties:
//	            value: $items[2]
//	  - id: row
//	    children:
//	      - text: ["Row: ", $value]
//	      - input: $value
//	      - zone:
//	          - extern:
//	              id: label
//	              properties:
//	                caption: $value[0]
//
// # Expressions
//
// Scalars starting with "$" are getters, other scalars are literals. Quoted
// scalars are always literals. Sequences are lists and mappings are objects.
//
// # Getter Syntax
//
// Getters read an identifier narrowed by index steps, outer to inner:
//   - Plain identifier: "items"
//   - Quantity index: "items[2]"
//   - Text key: "user.name"
//   - Mixed: "rows[2].cells[0]"
package recipe
