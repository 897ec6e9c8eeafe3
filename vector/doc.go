// Package vector holds the primitives shared by every index in this module:
//   - Entry, the (id, embedding) pair callers index
//   - Euclidean distance backed by github.com/viant/vec
//   - Embedding encoding (BLOB) used by the SQLite document source
package vector
