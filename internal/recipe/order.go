package recipe

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrEmbeddingCycle is returned when components embed each other in a loop.
var ErrEmbeddingCycle = errors.New("embedding cycle")

// EmbeddingOrder returns component ids ordered so that every component comes
// after the components it embeds. Externs naming components missing from the
// model are ignored.
//
// The result is deterministic: when several components are available, the one
// declared first wins.
func (m *Model) EmbeddingOrder() ([]string, error) {
	position := make(map[string]int, len(m.Components))
	for i := range m.Components {
		if _, dup := position[m.Components[i].ID]; !dup {
			position[m.Components[i].ID] = i
		}
	}

	order, err := topoSort(len(m.Components), func(i int) []int {
		var deps []int

		_ = m.Components[i].Walk(func(_ []int, child *Child) error {
			if child.Kind != ChildExtern {
				return nil
			}

			if d, ok := position[child.Extern.ID]; ok && !slices.Contains(deps, d) {
				deps = append(deps, d)
			}

			return nil
		})

		return deps
	})
	if errors.Is(err, ErrEmbeddingCycle) {
		stuck := make([]string, len(order))
		for i, idx := range order {
			stuck[i] = m.Components[idx].ID
		}

		return nil, fmt.Errorf("%w through %s", ErrEmbeddingCycle, strings.Join(stuck, ", "))
	}

	if err != nil {
		return nil, err
	}

	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = m.Components[idx].ID
	}

	return ids, nil
}

// topoSort returns indices in dependency order.
//
// Nodes are by index. depsFn(i) yields indices that must come before i.
// When multiple nodes are available, the smallest index is picked. On a cycle
// the returned indices are the nodes that could not be ordered: those on a
// cycle and those depending on one.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		var stuck []int

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return stuck, ErrEmbeddingCycle
	}

	return order, nil
}
