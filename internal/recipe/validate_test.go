package recipe

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-resolver/internal/diagnostic"
)

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}

	return out
}

func TestValidateExamples(t *testing.T) {
	for _, name := range []string{"list", "form"} {
		t.Run(name, func(t *testing.T) {
			m, err := LoadFile(filepath.Join("..", "..", "examples", name, "recipe.yaml"))
			require.NoError(t, err)

			res := Validate(m)
			assert.True(t, res.IsValid(), res.Error())
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestValidateNil(t *testing.T) {
	res := Validate(nil)
	assert.False(t, res.IsValid())
	assert.Equal(t, []string{"recipe_is_nil"}, codes(res.Errors))
}

func TestValidateComponentIDs(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "a"},
		{ID: ""},
		{ID: "a"},
	}}

	res := Validate(m)
	assert.Equal(t, []string{diagnostic.CodeEmptyComponentID, diagnostic.CodeDuplicateComponent}, codes(res.Errors))
	assert.Equal(t, "a", res.Errors[1].Component)
}

func TestValidateWarnings(t *testing.T) {
	m := &Model{Components: []Component{
		{
			ID:        "page",
			Variables: Variables{"title", "title"},
			Children: Children{
				{Kind: ChildInput, OnChange: NewGetter("missing")},
				{Kind: ChildZone, Children: Children{
					{Kind: ChildExtern, Extern: &Extern{ID: "ghost", Properties: map[string]Expression{}}},
				}},
			},
		},
	}}

	res := Validate(m)
	require.True(t, res.IsValid(), res.Error())
	assert.Equal(t, []string{
		diagnostic.CodeDuplicateVariable,
		diagnostic.CodeInputNotVariable,
		diagnostic.CodeUnknownComponent,
	}, codes(res.Warnings))
	assert.Equal(t, "children[0]", res.Warnings[1].Path)
	assert.Equal(t, "children[1].children[0]", res.Warnings[2].Path)
	assert.Equal(t, []string{diagnostic.CodeUnusedVariable}, codes(res.Infos))
}

func TestValidateSuggestsComponent(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "page", Children: Children{
			{Kind: ChildExtern, Extern: &Extern{ID: "buton", Properties: map[string]Expression{}}},
		}},
		{ID: "button"},
	}}

	res := Validate(m)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, `did you mean "button"?`)
}

func TestValidateUnusedVariables(t *testing.T) {
	m, err := LoadFile(filepath.Join("..", "..", "examples", "form", "recipe.yaml"))
	require.NoError(t, err)

	res := Validate(m)
	require.True(t, res.IsValid())
	assert.Equal(t, []string{diagnostic.CodeUnusedVariable}, codes(res.Infos))
	assert.Equal(t, "textbox", res.Infos[0].Component)
	assert.Equal(t, "focused", res.Infos[0].Path)
	assert.Equal(t, diagnostic.SeverityInfo, res.All()[0].Severity)
}

func TestValidateInputOnExposedProperty(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "page", Variables: Variables{"name"}, Children: Children{
			{Kind: ChildExtern, Extern: &Extern{ID: "field", Properties: map[string]Expression{
				"value": Get(NewGetter("name")),
			}}},
		}},
		{ID: "field", Children: Children{
			{Kind: ChildInput, OnChange: NewGetter("value")},
		}},
	}}

	res := Validate(m)
	assert.True(t, res.IsValid())
	assert.Empty(t, res.Warnings)
}

func TestValidateEmbeddingCycle(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "a", Children: Children{{Kind: ChildExtern, Extern: &Extern{ID: "b"}}}},
		{ID: "b", Children: Children{{Kind: ChildExtern, Extern: &Extern{ID: "a"}}}},
	}}

	res := Validate(m)
	require.False(t, res.IsValid())
	assert.Equal(t, []string{diagnostic.CodeEmbeddingCycle}, codes(res.Errors))
	assert.Contains(t, res.Error().Error(), "embedding cycle")
}
