package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := topoSort(3, func(i int) []int {
		switch i {
		case 0:
			return nil
		case 1:
			return []int{0}
		case 2:
			return []int{1}
		default:
			return nil
		}
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	exp := []int{0, 1, 2}
	if len(order) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, order)
	}

	for i := range exp {
		if order[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, order)
		}
	}
}

func TestTopoSort_Cycle(t *testing.T) {
	stuck, err := topoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{1}
		case 1:
			return []int{0}
		default:
			return []int{1}
		}
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	assert.Equal(t, []int{0, 1, 2}, stuck)
}

func TestTopoSort_OutOfRange(t *testing.T) {
	_, err := topoSort(1, func(int) []int { return []int{3} })
	assert.Error(t, err)
}

func TestEmbeddingOrder(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "list", Children: Children{
			{Kind: ChildExtern, Extern: &Extern{ID: "row"}},
			{Kind: ChildExtern, Extern: &Extern{ID: "row"}},
			{Kind: ChildExtern, Extern: &Extern{ID: "external"}},
		}},
		{ID: "row", Children: Children{
			{Kind: ChildZone, Children: Children{
				{Kind: ChildExtern, Extern: &Extern{ID: "label"}},
			}},
		}},
		{ID: "label"},
		{ID: "standalone"},
	}}

	order, err := m.EmbeddingOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"label", "row", "list", "standalone"}, order)
}

func TestEmbeddingOrderSelfEmbedding(t *testing.T) {
	m := &Model{Components: []Component{
		{ID: "tree", Children: Children{{Kind: ChildExtern, Extern: &Extern{ID: "tree"}}}},
	}}

	_, err := m.EmbeddingOrder()
	require.ErrorIs(t, err, ErrEmbeddingCycle)
	assert.Contains(t, err.Error(), "tree")
}
