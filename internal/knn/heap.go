// Package knn holds the bounded candidate heap shared by the linear and
// ball-tree indexes, so both rank and break ties identically.
package knn

import (
	"container/heap"
	"math"
	"sort"
)

// Candidate is a stored vector considered for a k-NN result. Rank is the
// vector's position in insertion order and breaks distance ties.
type Candidate struct {
	Rank     int
	Distance float32
}

// worse reports whether a ranks after b in the final result.
func worse(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Rank > b.Rank
}

// candidates implements heap.Interface with the worst candidate on top.
type candidates []Candidate

func (h candidates) Len() int           { return len(h) }
func (h candidates) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h candidates) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidates) Push(x interface{}) {
	*h = append(*h, x.(Candidate))
}

func (h *candidates) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Heap keeps the k best candidates seen so far.
type Heap struct {
	k     int
	items candidates
}

// NewHeap returns an empty heap bounded to k candidates. k must be positive.
func NewHeap(k int) *Heap {
	return &Heap{k: k, items: make(candidates, 0, k)}
}

// Offer adds the candidate if it beats the current worst or the heap has room.
// It reports whether the candidate was kept.
func (h *Heap) Offer(rank int, distance float32) bool {
	c := Candidate{Rank: rank, Distance: distance}
	if len(h.items) < h.k {
		heap.Push(&h.items, c)
		return true
	}
	if !worse(h.items[0], c) {
		return false
	}
	h.items[0] = c
	heap.Fix(&h.items, 0)
	return true
}

// Len returns the number of held candidates.
func (h *Heap) Len() int { return len(h.items) }

// Full reports whether the heap holds k candidates.
func (h *Heap) Full() bool { return len(h.items) == h.k }

// Worst returns the largest held distance, or +Inf while the heap has room.
func (h *Heap) Worst() float32 {
	if !h.Full() {
		return float32(math.Inf(1))
	}
	return h.items[0].Distance
}

// Sorted returns the held candidates ascending by distance, then rank.
func (h *Heap) Sorted() []Candidate {
	out := make([]Candidate, len(h.items))
	copy(out, h.items)
	sort.Slice(out, func(i, j int) bool { return worse(out[j], out[i]) })
	return out
}
