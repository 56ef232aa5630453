package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
components:
  - id: list
    variables: [items, selected]
    children:
      - text: ["Items: ", $items]
      - input: $selected
      - zone:
          - extern:
              id: row
              properties:
                value: $items[2]
                style:
                  color: red
                  size: $selected.size
  - id: row
    variables:
      hovered: boolean
    children:
      - text: '$not a getter'
`

	m, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, m.Components, 2)

	list := m.Components[0]
	assert.Equal(t, "list", list.ID)
	assert.Equal(t, Variables{"items", "selected"}, list.Variables)
	require.Len(t, list.Children, 3)

	// Rich text
	text := list.Children[0]
	assert.Equal(t, ChildText, text.Kind)
	assert.Equal(t, List(Lit("Items: "), Get(NewGetter("items"))), text.Content)

	// Input
	input := list.Children[1]
	assert.Equal(t, ChildInput, input.Kind)
	assert.Equal(t, NewGetter("selected"), input.OnChange)

	// Zone with extern
	zone := list.Children[2]
	assert.Equal(t, ChildZone, zone.Kind)
	require.Len(t, zone.Children, 1)

	ext := zone.Children[0]
	require.Equal(t, ChildExtern, ext.Kind, spew.Sdump(ext))
	assert.Equal(t, "row", ext.Extern.ID)
	assert.Equal(t, []string{"style", "value"}, ext.Extern.PropertyKeys())
	assert.Equal(t, Get(NewGetter("items", Quantity(2))), ext.Extern.Properties["value"])

	style := ext.Extern.Properties["style"]
	assert.Equal(t, ExprObject, style.Kind)
	assert.Equal(t, Lit("red"), style.Fields["color"])
	assert.Equal(t, Get(NewGetter("selected", Key("size"))), style.Fields["size"])

	// Variables given as a mapping keep their order; quoted scalars are literals.
	row := m.Components[1]
	assert.Equal(t, Variables{"hovered"}, row.Variables)
	assert.Equal(t, Lit("$not a getter"), row.Children[0].Content)
}

func TestParseDefaultsExternProperties(t *testing.T) {
	m, err := Parse([]byte(`
components:
  - id: page
    children:
      - extern:
          id: footer
`))
	require.NoError(t, err)

	ext := m.Components[0].Children[0].Extern
	require.NotNil(t, ext)
	assert.NotNil(t, ext.Properties)
	assert.Empty(t, ext.Properties)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "two kinds on one child",
			yaml: `
components:
  - id: a
    children:
      - text: hello
        input: $x
`,
		},
		{
			name: "unknown child kind",
			yaml: `
components:
  - id: a
    children:
      - button: hello
`,
		},
		{
			name: "input bound to a literal",
			yaml: `
components:
  - id: a
    children:
      - input: hello
`,
		},
		{
			name: "extern without id",
			yaml: `
components:
  - id: a
    children:
      - extern:
          properties:
            x: $y
`,
		},
		{
			name: "malformed getter",
			yaml: `
components:
  - id: a
    children:
      - text: $items[
`,
		},
		{
			name: "variables as scalar",
			yaml: `
components:
  - id: a
    variables: items
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, name := range []string{"list", "form"} {
		t.Run(name, func(t *testing.T) {
			m, err := LoadFile(filepath.Join("..", "..", "examples", name, "recipe.yaml"))
			require.NoError(t, err)

			data, err := Marshal(m)
			require.NoError(t, err)

			again, err := Parse(data)
			require.NoError(t, err, string(data))
			assert.Equal(t, m, again)
		})
	}
}

func TestMarshalQuotesDollarLiterals(t *testing.T) {
	m := &Model{Components: []Component{{
		ID:       "a",
		Children: Children{{Kind: ChildText, Content: Lit("$5")}},
	}}}

	data, err := Marshal(m)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Lit("$5"), again.Components[0].Children[0].Content)
}

func TestWriteFile(t *testing.T) {
	m, err := LoadFile(filepath.Join("..", "..", "examples", "list", "recipe.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(m, path))

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
