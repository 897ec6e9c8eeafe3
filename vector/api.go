package vector

// Entry pairs an opaque document identifier with its embedding. The
// dimension of an entry is len(Vector).
type Entry struct {
	// ID is the caller-assigned identifier. It is never interpreted.
	ID string

	// Vector is the embedding produced by an external model.
	Vector []float32
}

// Dimension returns the number of components in the entry vector.
func (e Entry) Dimension() int { return len(e.Vector) }

// Clone returns a copy of v so callers cannot mutate stored data.
func Clone(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
