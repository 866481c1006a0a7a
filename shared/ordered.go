package shared

// Ordered is satisfied by any type for which the built-in < operator is
// defined, mirroring the constraint the standard library's cmp package
// introduced after this module's minimum Go version.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// CompareOrdered is the natural-ordering comparator for any Ordered
// type: negative if a < b, positive if a > b, zero otherwise.
func CompareOrdered[K Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
