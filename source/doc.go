// Package source keeps documents and their embeddings in a SQLite table and
// loads them into an in-memory vector store.
//
// Embeddings are stored as little-endian float32 BLOBs. Rows without an
// embedding are kept but never loaded.
package source
