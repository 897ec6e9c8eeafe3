// Package engine opens modernc.org/sqlite databases for the document source
// and registers the vec_l2 SQL function, so distances computed in SQL agree
// with the in-memory indexes.
package engine
