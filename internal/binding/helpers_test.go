package binding

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"recipe-resolver/internal/recipe"
)

func mustParse(t *testing.T, src string) *recipe.Model {
	t.Helper()

	m, err := recipe.Parse([]byte(src))
	require.NoError(t, err)

	return m
}

func loadExample(t *testing.T, name string) *recipe.Model {
	t.Helper()

	m, err := recipe.LoadFile(filepath.Join("..", "..", "examples", name, "recipe.yaml"))
	require.NoError(t, err)

	return m
}

// render turns sources into component -> getter strings for comparison.
func render(s Sources) map[string][]string {
	if s == nil {
		return nil
	}

	out := make(map[string][]string, len(s))
	for component, getters := range s {
		strs := make([]string, len(getters))
		for i, g := range getters {
			strs[i] = g.String()
		}

		out[component] = strs
	}

	return out
}

func getters(paths ...string) []recipe.Getter {
	out := make([]recipe.Getter, len(paths))
	for i, p := range paths {
		out[i] = recipe.MustParseGetter(p)
	}

	return out
}
