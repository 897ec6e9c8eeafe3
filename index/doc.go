// Package index defines the backend contract shared by the in-memory k-NN
// indexes in this module. Implementations include an exact linear scan
// (index/linear) and a ball tree (index/balltree).
package index
