package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/index/balltree"
	"github.com/viant/vecstore/vector"
)

// Store maps document ids to vectors and answers k-NN queries through a
// single backend chosen at construction.
//
// Every method holds one mutex for its whole duration. Queries are not
// readers: the ball-tree backend rebuilds itself inside a query, and that
// rebuild and the search that follows must not interleave with mutations.
type Store struct {
	mu      sync.Mutex
	kind    index.Kind
	dim     int
	vectors map[string][]float32
	index   index.Index
	logger  *slog.Logger
}

// New creates a Store. It fails with ErrInvalidConfiguration for an unknown
// backend kind or a non-positive ball-tree leaf size.
func New(optFns ...Option) (*Store, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	idx, err := opts.newIndex()
	if err != nil {
		return nil, err
	}
	s := &Store{
		kind:    opts.Kind,
		vectors: make(map[string][]float32),
		index:   idx,
		logger:  opts.logger().With("index", string(opts.Kind)),
	}
	return s, nil
}

// Kind returns the backend kind.
func (s *Store) Kind() index.Kind { return s.kind }

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vectors)
}

// Dimension returns the established vector dimension, or 0 before the first
// successful insert.
func (s *Store) Dimension() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dim
}

// Insert stores vector under id. The first insert fixes the store
// dimension. The vector is copied.
func (s *Store) Insert(id string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vectors[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	if err := checkDimension(s.dim, len(vec)); err != nil {
		return err
	}
	s.add(id, vec)
	s.logger.Debug("insert completed", "id", id, "dimension", len(vec))
	return nil
}

// InsertBatch stores all entries or none of them. It fails on an id that is
// already stored or repeated within the batch, and on any vector whose length
// differs from the store dimension (or from the first entry when the store
// has none yet).
func (s *Store) InsertBatch(entries []vector.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dim
	seen := make(map[string]struct{}, len(entries))
	for n, e := range entries {
		if _, ok := s.vectors[e.ID]; ok {
			return fmt.Errorf("entry %d: %w: %q", n, ErrDuplicateID, e.ID)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("entry %d: %w: %q repeated in batch", n, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
		if err := checkDimension(dim, len(e.Vector)); err != nil {
			return fmt.Errorf("entry %d: %w", n, err)
		}
		dim = len(e.Vector)
	}
	for _, e := range entries {
		s.add(e.ID, e.Vector)
	}
	s.logger.Debug("batch insert completed", "count", len(entries), "total", len(s.vectors))
	return nil
}

func (s *Store) add(id string, vec []float32) {
	cp := vector.Clone(vec)
	if s.dim == 0 {
		s.dim = len(cp)
	}
	s.vectors[id] = cp
	s.index.Add(id, cp)
}

// Remove deletes id. It fails with ErrNotFound when id is absent.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vectors[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.vectors, id)
	s.index.Remove(id)
	s.logger.Debug("remove completed", "id", id)
	return nil
}

// Get returns a copy of the vector stored under id.
func (s *Store) Get(id string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vec, ok := s.vectors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return vector.Clone(vec), nil
}

// Query returns the ids of the k entries nearest to vec, nearest first.
// A non-positive k yields an empty result.
func (s *Store) Query(vec []float32, k int) ([]string, error) {
	matches, err := s.Search(vec, k)
	if err != nil {
		return nil, err
	}
	return index.IDs(matches), nil
}

// Search is Query with distances.
func (s *Store) Search(vec []float32, k int) ([]index.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search(vec, k)
}

// SearchWithStats is Search that also returns the ball-tree counters of this
// very query, read under the same lock. stats is nil for other backends.
func (s *Store) SearchWithStats(vec []float32, k int) ([]index.Match, *balltree.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches, err := s.search(vec, k)
	if err != nil {
		return nil, nil, err
	}
	tree, ok := s.index.(*balltree.Index)
	if !ok {
		return matches, nil, nil
	}
	stats := tree.Stats()
	return matches, &stats, nil
}

func (s *Store) search(vec []float32, k int) ([]index.Match, error) {
	if s.dim != 0 && len(vec) != s.dim {
		return nil, &DimensionMismatchError{Expected: s.dim, Actual: len(vec)}
	}
	matches := s.index.Search(vec, k)
	s.logSearch(k, len(matches))
	return matches, nil
}

// TreeStats returns the ball-tree counters of the most recent query by any
// caller. With concurrent queries they may describe another goroutine's
// query; use SearchWithStats to get the counters of a specific one. ok is
// false for other backends.
func (s *Store) TreeStats() (stats balltree.Stats, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, ok := s.index.(*balltree.Index)
	if !ok {
		return balltree.Stats{}, false
	}
	return tree.Stats(), true
}

func (s *Store) logSearch(k, results int) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	tree, ok := s.index.(*balltree.Index)
	if !ok {
		s.logger.Debug("query completed", "k", k, "results", results)
		return
	}
	st := tree.Stats()
	if st.Rebuilt {
		s.logger.Debug("index rebuilt", "entries", tree.Len(), "nodes", st.Nodes, "leaves", st.Leaves, "depth", st.Depth)
	}
	s.logger.Debug("query completed",
		"k", k,
		"results", results,
		"visited", st.Visited,
		"pruned", st.Pruned,
		"distances", st.Distances,
	)
}

// checkDimension validates a vector length against an established dimension;
// dim 0 means none is established yet. Empty vectors are always rejected.
func checkDimension(dim, n int) error {
	if n == 0 || (dim != 0 && n != dim) {
		return &DimensionMismatchError{Expected: dim, Actual: n}
	}
	return nil
}
