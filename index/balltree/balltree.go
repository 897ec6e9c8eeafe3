package balltree

import (
	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/internal/knn"
	"github.com/viant/vecstore/vector"
)

// DefaultLeafSize is the leaf capacity used when none is configured.
const DefaultLeafSize = 10

const none = -1

var _ index.Index = (*Index)(nil)

// Index is a lazily rebuilt ball tree. ids and vecs are parallel slices in
// insertion order; a vector's position there is its rank for tie-breaking.
type Index struct {
	leafSize int
	ids      []string
	vecs     [][]float32

	// order is a permutation of ranks; every node owns order[start:end].
	order  []int
	nodes  []node
	root   int
	leaves int
	depth  int
	// slack is the relative tolerance applied to the pruning bound.
	slack float64

	stats Stats
}

// node is a ball in the tree arena. Leaves have left == right == none.
type node struct {
	start, end  int
	centroid    []float32
	radius      float32
	left, right int
}

func (n *node) isLeaf() bool { return n.left == none }

// Option configures an Index.
type Option func(*Index)

// WithLeafSize sets the maximum number of members per leaf. Values below 1
// fall back to DefaultLeafSize.
func WithLeafSize(size int) Option {
	return func(i *Index) {
		i.leafSize = size
	}
}

// New returns an empty ball tree.
func New(opts ...Option) *Index {
	i := &Index{leafSize: DefaultLeafSize, root: none}
	for _, opt := range opts {
		opt(i)
	}
	if i.leafSize < 1 {
		i.leafSize = DefaultLeafSize
	}
	return i
}

// LeafSize returns the configured leaf capacity.
func (i *Index) LeafSize() int { return i.leafSize }

// Add appends the pair and discards the current tree.
func (i *Index) Add(id string, vec []float32) {
	i.ids = append(i.ids, id)
	i.vecs = append(i.vecs, vec)
	i.invalidate()
}

// Remove deletes the first entry with the given id and discards the current
// tree. Absent ids leave the tree intact.
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
		i.invalidate()
		return
	}
}

// Len returns the number of stored entries.
func (i *Index) Len() int { return len(i.ids) }

// Built reports whether a tree is currently materialized.
func (i *Index) Built() bool { return i.root != none }

func (i *Index) invalidate() {
	i.order = nil
	i.nodes = nil
	i.root = none
	i.leaves = 0
	i.depth = 0
}

// Search returns the k nearest entries ascending by distance, rebuilding the
// tree first when a mutation discarded it.
func (i *Index) Search(query []float32, k int) []index.Match {
	i.stats = Stats{}
	if k <= 0 || len(i.vecs) == 0 {
		return []index.Match{}
	}
	if !i.Built() {
		i.Build()
		i.stats.Rebuilt = true
	}
	if k > len(i.vecs) {
		k = len(i.vecs)
	}
	h := knn.NewHeap(k)
	i.search(i.root, query, h)

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

func (i *Index) search(id int, query []float32, h *knn.Heap) {
	i.stats.Visited++
	n := &i.nodes[id]
	if n.isLeaf() {
		for _, rank := range i.order[n.start:n.end] {
			i.stats.Distances++
			h.Offer(rank, vector.Euclidean(query, i.vecs[rank]))
		}
		return
	}

	near, far := n.left, n.right
	dNear := vector.Euclidean(query, i.nodes[near].centroid)
	dFar := vector.Euclidean(query, i.nodes[far].centroid)
	i.stats.Distances += 2
	if dFar < dNear {
		near, far = far, near
		dNear, dFar = dFar, dNear
	}
	i.visit(near, dNear, query, h)
	i.visit(far, dFar, query, h)
}

// visit descends into a child unless its ball lies entirely beyond the
// current k-th best distance. The bound must clear the worst distance by more
// than the float32 rounding of the distances involved, so a member tying the
// worst distance with a lower rank is never skipped.
func (i *Index) visit(id int, centroidDistance float32, query []float32, h *knn.Heap) {
	if h.Full() && i.prunable(centroidDistance, i.nodes[id].radius, h.Worst()) {
		i.stats.Pruned++
		return
	}
	i.search(id, query, h)
}

func (i *Index) prunable(centroidDistance, radius, worst float32) bool {
	c, r, w := float64(centroidDistance), float64(radius), float64(worst)
	return c-r > w+i.slack*(c+r+w)
}
