package heap

import (
	"github.com/student/colleng/shared"
)

// Comparator reports the relative order of a and b: negative if
// a should sort before b, positive if after, zero if equivalent.
type Comparator[K any] func(a, b K) int

// Heap is a binary min-heap over K, ordered by either a user-supplied
// Comparator or K's natural ordering.
type Heap[K any] struct {
	buffer []K
	count  int
	cmp    Comparator[K]

	defaultValue K
	hasDefault   bool

	iterPool *shared.Pool[Iterator[K]]
}

// New creates an empty heap ordered by cmp.
func New[K any](cmp Comparator[K]) *Heap[K] {
	h := &Heap[K]{cmp: cmp}
	h.iterPool = shared.NewPool(shared.IteratorPoolCapacity, func() *Iterator[K] { return &Iterator[K]{} })
	h.allocate(shared.DefaultHeapCapacity)
	return h
}

// NewOrdered creates an empty heap over an Ordered key type, using its
// natural less-than ordering.
func NewOrdered[K shared.Ordered]() *Heap[K] {
	return New[K](shared.CompareOrdered[K])
}

func (h *Heap[K]) allocate(capacity uintptr) {
	h.buffer = make([]K, capacity+1)
}

func (h *Heap[K]) grow() {
	newCap := shared.NextHeapCapacity(uintptr(len(h.buffer) - 1))
	newBuffer := make([]K, newCap+1)
	copy(newBuffer, h.buffer)
	h.buffer = newBuffer
}

// SetDefaultValue configures the value returned by Top and PopTop on an
// empty heap.
func (h *Heap[K]) SetDefaultValue(v K) {
	h.defaultValue = v
	h.hasDefault = true
}

// Size returns the number of present elements.
func (h *Heap[K]) Size() int {
	return h.count
}

// Insert adds k to the heap and restores the heap property by swimming
// it up from the newly appended slot.
func (h *Heap[K]) Insert(k K) {
	if h.count+1 >= len(h.buffer) {
		h.grow()
	}
	h.count++
	h.buffer[h.count] = k
	h.swim(h.count)
}

func (h *Heap[K]) swim(k int) {
	for k > 1 && h.cmp(h.buffer[k/2], h.buffer[k]) > 0 {
		h.buffer[k/2], h.buffer[k] = h.buffer[k], h.buffer[k/2]
		k /= 2
	}
}

func (h *Heap[K]) sink(k int) {
	for 2*k <= h.count {
		child := 2 * k
		if child < h.count && h.cmp(h.buffer[child], h.buffer[child+1]) > 0 {
			child++
		}
		if h.cmp(h.buffer[k], h.buffer[child]) <= 0 {
			break
		}
		h.buffer[k], h.buffer[child] = h.buffer[child], h.buffer[k]
		k = child
	}
}

// refreshPriorities rebuilds the heap property in O(n) via Floyd
// bottom-up heapify: every internal node from N/2 down to 1 is sunk.
func (h *Heap[K]) refreshPriorities() {
	for k := h.count / 2; k >= 1; k-- {
		h.sink(k)
	}
}

// Top returns the minimum element without removing it. On an empty heap
// it returns the configured default value.
func (h *Heap[K]) Top() K {
	if h.count == 0 {
		return h.defaultValue
	}
	return h.buffer[1]
}

// PopTop removes and returns the minimum element. On an empty heap it
// returns the configured default value.
func (h *Heap[K]) PopTop() K {
	if h.count == 0 {
		return h.defaultValue
	}
	top := h.buffer[1]
	var zero K
	h.buffer[1] = h.buffer[h.count]
	h.buffer[h.count] = zero
	h.count--
	if h.count > 0 {
		h.sink(1)
	}
	return top
}

// Contains reports whether k is present, via a linear scan — the heap
// order only bounds the minimum, not arbitrary membership.
func (h *Heap[K]) Contains(k K) bool {
	for i := 1; i <= h.count; i++ {
		if h.cmp(h.buffer[i], k) == 0 {
			return true
		}
	}
	return false
}

// RemoveAllOccurrences removes every element equal to k (under the
// heap's comparator), returning the number removed.
func (h *Heap[K]) RemoveAllOccurrences(k K) int {
	return h.RemoveAll(func(v K) bool { return h.cmp(v, k) == 0 })
}

// RemoveAll removes every element for which pred returns true. Matches
// are compacted by swap-with-last, the element count shrinks per match,
// and refreshPriorities restores the heap property in a single O(n) pass
// afterwards. The fixup is deferred, so if pred panics partway through,
// the removals made so far stay committed and the heap property is
// still restored before the panic propagates.
func (h *Heap[K]) RemoveAll(pred func(K) bool) int {
	removed := 0
	defer func() {
		if removed > 0 {
			h.refreshPriorities()
		}
	}()
	var zero K
	for i := 1; i <= h.count; {
		if pred(h.buffer[i]) {
			h.buffer[i] = h.buffer[h.count]
			h.buffer[h.count] = zero
			h.count--
			removed++
			continue
		}
		i++
	}
	return removed
}

// AddAll appends every element of a source slice and restores the heap
// property once via refreshPriorities, cheaper than count individual
// Insert/swim calls.
func (h *Heap[K]) AddAll(elements []K) {
	for _, e := range elements {
		if h.count+1 >= len(h.buffer) {
			h.grow()
		}
		h.count++
		h.buffer[h.count] = e
	}
	h.refreshPriorities()
}

// Clear removes every element, preserving the underlying buffer.
func (h *Heap[K]) Clear() {
	var zero K
	for i := 1; i <= h.count; i++ {
		h.buffer[i] = zero
	}
	h.count = 0
}

// ForEach calls fn on every present element in buffer order (heap
// order, not sorted order), stopping early if fn returns true.
func (h *Heap[K]) ForEach(fn func(K) bool) {
	for i := 1; i <= h.count; i++ {
		if fn(h.buffer[i]) {
			return
		}
	}
}

// PeekN returns up to n elements in ascending priority order without
// mutating the heap, by draining a scratch clone of it.
func (h *Heap[K]) PeekN(n int) []K {
	if n > h.count {
		n = h.count
	}
	scratch := Clone(h)
	out := make([]K, n)
	for i := 0; i < n; i++ {
		out[i] = scratch.PopTop()
	}
	return out
}

// Clone returns an independent copy of h.
func Clone[K any](h *Heap[K]) *Heap[K] {
	newH := New[K](h.cmp)
	newH.allocate(uintptr(len(h.buffer) - 1))
	copy(newH.buffer, h.buffer)
	newH.count = h.count
	newH.defaultValue = h.defaultValue
	newH.hasDefault = h.hasDefault
	return newH
}

// HashCode sums hasher(k) over every present element; the sum does not
// depend on buffer order. shared.GetHasher supplies the default
// primitive hasher for K.
func (h *Heap[K]) HashCode(hasher shared.HashFn[K]) uint64 {
	var sum uint64
	for i := 1; i <= h.count; i++ {
		sum += uint64(hasher(h.buffer[i]))
	}
	return sum
}

// Equals reports whether h and other have the same size and pointwise
// equal buffers under h's comparator. This is stricter than multiset
// equality: two equal-priority elements in different buffer positions
// compare unequal, since the underlying array layout is itself
// observable through iteration.
func (h *Heap[K]) Equals(other *Heap[K]) bool {
	if other == nil || h.count != other.count {
		return false
	}
	for i := 1; i <= h.count; i++ {
		if h.cmp(h.buffer[i], other.buffer[i]) != 0 {
			return false
		}
	}
	return true
}

// Iterator borrows a cursor from the heap's iterator pool, walking
// present elements in buffer (heap, not sorted) order.
func (h *Heap[K]) Iterator() *Iterator[K] {
	it := h.iterPool.Get()
	it.heap = h
	it.idx = 1
	it.pool = h.iterPool
	return it
}

// Iterator is a live, borrowing cursor over a Heap.
type Iterator[K any] struct {
	heap *Heap[K]
	idx  int
	pool *shared.Pool[Iterator[K]]
}

// Next advances the cursor and returns the next present element, or
// (zero, false) once exhausted.
func (it *Iterator[K]) Next() (K, bool) {
	if it.idx > it.heap.count {
		var zero K
		return zero, false
	}
	v := it.heap.buffer[it.idx]
	it.idx++
	return v, true
}

// Close releases the iterator back to its owning heap's pool.
func (it *Iterator[K]) Close() {
	it.heap = nil
	if it.pool != nil {
		it.pool.Put(it)
	}
}

// Sort reorders data into non-decreasing order under cmp, using the
// same sink algorithm as Heap (a local copy over 0-based data): it
// heapifies data in place into a max-heap, then repeatedly swaps the
// maximum to the back of the remaining unsorted span and sinks the
// replacement down. This reuses the heap's own algorithm rather than
// introducing a second, unrelated sorting algorithm.
func Sort[K any](data []K, cmp Comparator[K]) {
	n := len(data)
	if n < 2 {
		return
	}

	// build a max-heap over data so popping the front into place yields
	// ascending order; invert the comparator to get max-heap behavior
	// out of the same sink routine.
	maxCmp := func(a, b K) int { return -cmp(a, b) }
	sink := func(k, size int) {
		for 2*k <= size {
			child := 2 * k
			if child < size && maxCmp(data[child-1], data[child]) > 0 {
				child++
			}
			if maxCmp(data[k-1], data[child-1]) <= 0 {
				break
			}
			data[k-1], data[child-1] = data[child-1], data[k-1]
			k = child
		}
	}

	for k := n / 2; k >= 1; k-- {
		sink(k, n)
	}
	for size := n; size > 1; size-- {
		data[0], data[size-1] = data[size-1], data[0]
		sink(1, size-1)
	}
}
