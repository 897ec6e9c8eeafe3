package linear

import (
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/internal/knn"
	"github.com/viant/vecstore/vector"
)

var _ index.Index = (*Index)(nil)

// Index is a brute-force vector index. ids and vecs are parallel slices in
// insertion order.
type Index struct {
	ids  []string
	vecs [][]float32
}

// New returns an empty linear index.
func New() *Index {
	return &Index{}
}

// Add appends the pair in O(1).
func (i *Index) Add(id string, vec []float32) {
	i.ids = append(i.ids, id)
	i.vecs = append(i.vecs, vec)
}

// Remove deletes the first entry with the given id, keeping the order of the
// remaining entries.
func (i *Index) Remove(id string) {
	for j := range i.ids {
		if i.ids[j] != id {
			continue
		}
		copy(i.ids[j:], i.ids[j+1:])
		i.ids[len(i.ids)-1] = ""
		i.ids = i.ids[:len(i.ids)-1]
		copy(i.vecs[j:], i.vecs[j+1:])
		i.vecs[len(i.vecs)-1] = nil
		i.vecs = i.vecs[:len(i.vecs)-1]
		return
	}
}

// Search returns the k nearest entries ascending by distance.
func (i *Index) Search(query []float32, k int) []index.Match {
	if k <= 0 || len(i.vecs) == 0 {
		return []index.Match{}
	}
	if k > len(i.vecs) {
		k = len(i.vecs)
	}
	h := knn.NewHeap(k)
	for j, v := range i.vecs {
		h.Offer(j, vector.Euclidean(query, v))
	}
	sorted := h.Sorted()
	out := make([]index.Match, len(sorted))
	for n, c := range sorted {
		out[n] = index.Match{ID: i.ids[c.Rank], Distance: c.Distance}
	}
	return out
}

// Query returns the ids of the k nearest entries, nearest first.
func (i *Index) Query(query []float32, k int) []string {
	return index.IDs(i.Search(query, k))
}

// Len returns the number of stored entries.
func (i *Index) Len() int { return len(i.ids) }
