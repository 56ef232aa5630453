package binding

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func listExport() *ExportFile {
	return &ExportFile{
		Components: []ExportComponent{
			{ID: "label", Variables: []string{"hovered"}},
			{ID: "list", Variables: []string{"items"}},
			{ID: "row"},
		},
		Instances: []ExportInstance{
			{
				ID: "label",
				Properties: []ExportProperty{
					{Key: "caption", Sources: []ExportSource{{Component: "list", Getters: []string{"items[2][0]"}}}},
				},
				Redirections: []ExportProperty{
					{Key: "caption", Sources: []ExportSource{{Component: "row", Getters: []string{"value[0]"}}}},
				},
			},
			{
				ID: "row",
				Properties: []ExportProperty{
					{Key: "value", Sources: []ExportSource{{Component: "list", Getters: []string{"items[2]"}}}},
				},
			},
		},
	}
}

func TestExport(t *testing.T) {
	resolved, err := sequential().Resolve(context.Background(), loadExample(t, "list"))
	require.NoError(t, err)

	assert.Equal(t, listExport(), resolved.Export())
}

func TestExportYAML(t *testing.T) {
	resolved, err := sequential().Resolve(context.Background(), loadExample(t, "list"))
	require.NoError(t, err)

	data, err := ExportYAML(resolved)
	require.NoError(t, err)

	var got ExportFile
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, listExport(), &got)
	assert.Contains(t, string(data), "- items[2][0]")
}

func TestExportJSON(t *testing.T) {
	resolved, err := sequential().Resolve(context.Background(), loadExample(t, "list"))
	require.NoError(t, err)

	data, err := ExportJSON(resolved)
	require.NoError(t, err)

	var got ExportFile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, listExport(), &got)
}

func TestExportLiteralPropertyHasNoSources(t *testing.T) {
	resolved, err := sequential().Resolve(context.Background(), loadExample(t, "form"))
	require.NoError(t, err)

	data, err := ExportJSON(resolved)
	require.NoError(t, err)

	var got ExportFile
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got.Instances, 2)
	assert.Equal(t, "field", got.Instances[0].ID)
	assert.Equal(t, ExportProperty{Key: "label", Sources: []ExportSource{}}, got.Instances[0].Properties[0])
}
