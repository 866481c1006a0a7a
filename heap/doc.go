// Package heap implements a binary min-heap priority queue with a
// pluggable comparator. The underlying array is 1-indexed (slot 0 is
// unused) so that a node at index i has children at 2i and 2i+1 and a
// parent at i/2, the classical layout that needs no pointer chasing.
package heap
