// Package balltree provides a ball-tree k-NN index under Euclidean distance.
//
// The tree is built lazily: Add and Remove discard it, and the next Search
// rebuilds it from the current entries before answering. Search is a
// depth-first branch-and-bound traversal that visits the child with the
// nearer centroid first and skips any child whose ball cannot contain a
// candidate better than the current k-th best.
//
// Interleaving single inserts with queries therefore costs a full O(n log n)
// rebuild per query, O(n^2 log n) for n such rounds. Batch mutations before
// querying when that matters.
package balltree
