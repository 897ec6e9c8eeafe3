// Package linear provides an exact k-NN index that answers queries by
// scanning every stored vector under Euclidean distance.
package linear
