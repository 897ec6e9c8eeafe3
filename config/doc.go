// Package config loads vecstore settings with viper.
//
// A TOML file such as
//
//	[index]
//	kind = "balltree"
//	leaf_size = 16
//
//	[source]
//	sqlite_path = "docs.db"
//	table = "documents"
//
//	[query]
//	k = 10
//
// can be overridden per key by environment variables (VECSTORE_INDEX_KIND,
// VECSTORE_QUERY_K, ...) and by command flags bound to the same keys.
package config
