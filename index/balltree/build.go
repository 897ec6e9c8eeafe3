package balltree

import "github.com/viant/vecstore/vector"

// ulp32 is the float32 unit roundoff. A Euclidean distance over d components
// carries a relative error of roughly d of them.
const ulp32 = 0x1p-24

// Build discards any current tree and constructs a new one over all entries.
func (i *Index) Build() {
	i.invalidate()
	if len(i.vecs) == 0 {
		return
	}
	i.order = make([]int, len(i.vecs))
	for rank := range i.order {
		i.order[rank] = rank
	}
	i.slack = float64(4*(len(i.vecs[0])+8)) * ulp32
	i.nodes = make([]node, 0, 2*len(i.vecs)/i.leafSize+1)
	i.root = i.build(0, len(i.order), 1)
}

func (i *Index) build(start, end, depth int) int {
	members := i.order[start:end]
	centroid, radius := i.bounds(members)
	id := len(i.nodes)
	i.nodes = append(i.nodes, node{
		start:    start,
		end:      end,
		centroid: centroid,
		radius:   radius,
		left:     none,
		right:    none,
	})
	if depth > i.depth {
		i.depth = depth
	}
	if len(members) <= i.leafSize {
		i.leaves++
		return id
	}
	split := start + i.partition(members)
	left := i.build(start, split, depth+1)
	right := i.build(split, end, depth+1)
	i.nodes[id].left = left
	i.nodes[id].right = right
	return id
}

// bounds returns the mean of the members and the largest member distance
// from it.
func (i *Index) bounds(members []int) ([]float32, float32) {
	dim := len(i.vecs[members[0]])
	sum := make([]float64, dim)
	for _, rank := range members {
		for d, v := range i.vecs[rank] {
			sum[d] += float64(v)
		}
	}
	centroid := make([]float32, dim)
	for d := range sum {
		centroid[d] = float32(sum[d] / float64(len(members)))
	}
	var radius float32
	for _, rank := range members {
		if d := vector.Euclidean(centroid, i.vecs[rank]); d > radius {
			radius = d
		}
	}
	return centroid, radius
}

// partition reorders members in place so the first n belong to the left
// child, and returns n. Both sides are non-empty when len(members) > 1.
//
// Pivots approximate the diameter pair: the member farthest from the first
// member, then the member farthest from that one. Each member joins the
// nearer pivot, ties going to the first. When every member lands on one side
// (all coincide) members are dealt alternately instead.
func (i *Index) partition(members []int) int {
	p1 := i.farthest(members, i.vecs[members[0]])
	p2 := i.farthest(members, i.vecs[p1])

	toLeft := make([]bool, len(members))
	left := 0
	for j, rank := range members {
		v := i.vecs[rank]
		if vector.Euclidean(v, i.vecs[p1]) <= vector.Euclidean(v, i.vecs[p2]) {
			toLeft[j] = true
			left++
		}
	}
	if left == 0 || left == len(members) {
		for j := range toLeft {
			toLeft[j] = j%2 == 0
		}
		left = (len(members) + 1) / 2
	}

	out := make([]int, 0, len(members))
	for j, rank := range members {
		if toLeft[j] {
			out = append(out, rank)
		}
	}
	for j, rank := range members {
		if !toLeft[j] {
			out = append(out, rank)
		}
	}
	copy(members, out)
	return left
}

// farthest returns the member with the largest distance from v; the earliest
// member wins ties.
func (i *Index) farthest(members []int, v []float32) int {
	best, bestDistance := members[0], float32(-1)
	for _, rank := range members {
		if d := vector.Euclidean(v, i.vecs[rank]); d > bestDistance {
			best, bestDistance = rank, d
		}
	}
	return best
}
