package balltree

// Stats describes the current tree and the work done by the last Search.
type Stats struct {
	// Nodes, Leaves and Depth describe the materialized tree; all zero when
	// no tree is built.
	Nodes  int
	Leaves int
	Depth  int

	// Rebuilt is set when the last Search had to rebuild the tree.
	Rebuilt bool
	// Visited counts nodes entered by the last Search.
	Visited int
	// Pruned counts subtrees skipped by the distance bound.
	Pruned int
	// Distances counts distance evaluations, centroids included.
	Distances int
}

// Stats returns the counters of the last Search together with the shape of
// the current tree.
func (i *Index) Stats() Stats {
	s := i.stats
	s.Nodes, s.Leaves, s.Depth = len(i.nodes), i.leaves, i.depth
	return s
}

