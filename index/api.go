package index

import (
	"errors"
	"fmt"
	"strings"
)

// Index is an in-memory k-NN backend keyed by opaque string ids.
//
// Implementations do not check id uniqueness or vector dimensions and are
// not safe for concurrent use; the owning store enforces both.
type Index interface {
	// Add appends the (id, vector) pair. The index keeps the slice as given.
	Add(id string, vector []float32)

	// Remove deletes the first entry with the given id. Absent ids are ignored.
	Remove(id string)

	// Search returns up to k entries nearest to query, ascending by
	// Euclidean distance; equal distances keep insertion order.
	Search(query []float32, k int) []Match

	// Len returns the number of stored entries.
	Len() int
}

// Match is a single k-NN hit.
type Match struct {
	ID       string
	Distance float32
}

// IDs projects matches onto their ids, preserving order.
func IDs(matches []Match) []string {
	if len(matches) == 0 {
		return []string{}
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids
}

// Kind names a backend implementation.
type Kind string

const (
	// KindLinear is an exact brute-force scan.
	KindLinear Kind = "linear"
	// KindBallTree is a lazily rebuilt ball tree with branch-and-bound search.
	KindBallTree Kind = "balltree"
)

// ErrUnknownKind is returned by ParseKind for unsupported backend names.
var ErrUnknownKind = errors.New("unknown index kind")

// ParseKind resolves a backend name. Matching is case-insensitive and
// accepts the aliases brute, bruteforce, ball and ball_tree.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "brute", "bruteforce":
		return KindLinear, nil
	case "balltree", "ball", "ball_tree":
		return KindBallTree, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
