package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	t.Run("Query", func(t *testing.T) {
		idx := New()
		idx.Add("A", []float32{0, 0})
		idx.Add("B", []float32{1, 0})
		idx.Add("C", []float32{10, 10})

		assert.Equal(t, []string{"A", "B"}, idx.Query([]float32{0, 0}, 2))
		assert.Equal(t, []string{"C", "B", "A"}, idx.Query([]float32{10, 10}, 5))
	})

	t.Run("Search distances", func(t *testing.T) {
		idx := New()
		idx.Add("A", []float32{0, 0})
		idx.Add("B", []float32{3, 4})

		matches := idx.Search([]float32{0, 0}, 2)
		require.Len(t, matches, 2)
		assert.Equal(t, "A", matches[0].ID)
		assert.InDelta(t, 0, matches[0].Distance, 1e-6)
		assert.Equal(t, "B", matches[1].ID)
		assert.InDelta(t, 5, matches[1].Distance, 1e-6)
	})

	t.Run("Ties keep insertion order", func(t *testing.T) {
		idx := New()
		idx.Add("east", []float32{1, 0})
		idx.Add("north", []float32{0, 1})
		idx.Add("west", []float32{-1, 0})
		idx.Add("south", []float32{0, -1})

		assert.Equal(t, []string{"east", "north", "west", "south"}, idx.Query([]float32{0, 0}, 4))
		assert.Equal(t, []string{"east", "north"}, idx.Query([]float32{0, 0}, 2))
	})

	t.Run("Remove", func(t *testing.T) {
		idx := New()
		idx.Add("A", []float32{0})
		idx.Add("B", []float32{1})
		idx.Add("C", []float32{2})

		idx.Remove("B")
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, []string{"A", "C"}, idx.Query([]float32{1}, 3))

		idx.Remove("missing")
		assert.Equal(t, 2, idx.Len())
	})

	t.Run("Remove first match only", func(t *testing.T) {
		idx := New()
		idx.Add("dup", []float32{0})
		idx.Add("dup", []float32{5})

		idx.Remove("dup")
		require.Equal(t, 1, idx.Len())
		assert.InDelta(t, 5, idx.Search([]float32{0}, 1)[0].Distance, 1e-6)
	})

	t.Run("Empty and non-positive k", func(t *testing.T) {
		idx := New()
		assert.Empty(t, idx.Query([]float32{0, 0}, 3))

		idx.Add("A", []float32{0, 0})
		assert.Empty(t, idx.Query([]float32{0, 0}, 0))
		assert.Empty(t, idx.Query([]float32{0, 0}, -1))
	})
}
