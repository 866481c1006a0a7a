// Package plain implements the generic-key open-addressing set layout:
// a contiguous key array alongside a parallel boolean allocation array.
// It is the baseline layout for keys that have no usable "default value"
// to reserve as an empty-slot sentinel (see package sentinel for that
// variant) and that don't need Robin-Hood reordering (see package robin).
package plain
