// Package store is the entry point of the module: a concurrency-safe
// in-memory vector store that enforces id uniqueness and a fixed dimension
// and delegates k-NN search to a linear or ball-tree backend.
//
//	s, err := store.New(store.WithIndex(index.KindBallTree), store.WithLeafSize(16))
//	...
//	_ = s.Insert("doc-1", embedding)
//	ids, err := s.Query(queryEmbedding, store.DefaultK)
package store
