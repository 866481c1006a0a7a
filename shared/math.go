package shared

// NextPowerOf2 is a fast computation of 2^x, the smallest power of two
// greater than or equal to i.
// see: https://stackoverflow.com/questions/466204/rounding-up-to-next-power-of-2
func NextPowerOf2(i uint64) uint64 {
	i--
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	i++
	return i
}

// ResizeAt computes the number of assigned slots a set of capacity c may
// hold, for load factor lf, before the next insert must trigger a rehash.
// The result always leaves at least one slot unallocated so probe loops
// are guaranteed to terminate without a separate bounds check.
func ResizeAt(c uintptr, lf float32) uintptr {
	at := uintptr(float32(c) * lf)
	if at < 3 {
		at = 3
	}
	return at - 2
}

// NextCapacity returns the capacity a set should grow to from its
// current capacity c. Sets always double, since their slot count must
// remain a power of two for the mask-based probe to work.
func NextCapacity(c uintptr) uintptr {
	return c * 2
}

// NextHeapCapacity returns the number of usable slots ("N") a heap's
// backing buffer should grow to from its current usable-slot count n.
// Below HeapGrowthCrossover the buffer doubles, same as the set; above
// it, growth is bounded-proportional (1.5x) so that a single
// reallocation of a very large heap does not have to copy an
// equally-large amount of slack capacity.
func NextHeapCapacity(n uintptr) uintptr {
	if n == 0 {
		return DefaultHeapCapacity
	}
	if n < HeapGrowthCrossover {
		return n * 2
	}
	return n + n/2
}
