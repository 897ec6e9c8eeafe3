package source

import (
	"context"
	"fmt"

	"github.com/viant/vecstore/vector"
)

// DefaultBatchSize is the number of entries per InsertBatch call used when
// Load is given a non-positive batch size.
const DefaultBatchSize = 512

// BatchInserter accepts entries all-or-nothing per call.
type BatchInserter interface {
	InsertBatch(entries []vector.Entry) error
}

// Load feeds every document of src into dst in batches and returns the number
// of entries inserted. Entries of batches that failed are not counted, and
// Load stops at the first failure.
func Load(ctx context.Context, src *Source, dst BatchInserter, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	loaded := 0
	batch := make([]vector.Entry, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := dst.InsertBatch(batch); err != nil {
			return fmt.Errorf("loading entries %d-%d: %w", loaded, loaded+len(batch)-1, err)
		}
		loaded += len(batch)
		batch = batch[:0]
		return nil
	}
	err := src.Scan(ctx, func(d Document) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch = append(batch, d.Entry())
		if len(batch) == batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return loaded, err
	}
	if err := flush(); err != nil {
		return loaded, err
	}
	return loaded, nil
}
