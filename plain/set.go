package plain

import (
	"fmt"

	"github.com/student/colleng/shared"
)

// Set is a generic open-addressing hash set using linear probing and a
// parallel bool allocation array. On remove, a classical Knuth
// shift-back cleanup repairs the probe chain.
type Set[K comparable] struct {
	keys      []K
	allocated []bool
	hasher    shared.HashFn[K]

	assigned  uintptr
	capMinus1 uintptr
	resizeAt  uintptr
	maxLoad   float32

	// lastSlot caches the index of the most recent successful Contains
	// call, consumed by a following Lkey call. -1 means no such call
	// has happened yet (or the last one returned false).
	lastSlot int

	iterPool *shared.Pool[Iterator[K]]
}

// New creates a ready to use Set with default settings.
func New[K comparable]() *Set[K] {
	return NewWithHasher[K](shared.GetHasher[K]())
}

// NewWithHasher constructs a new Set with the given hash function.
func NewWithHasher[K comparable](hasher shared.HashFn[K]) *Set[K] {
	s := &Set[K]{
		hasher:   hasher,
		maxLoad:  shared.DefaultMaxLoad,
		lastSlot: -1,
	}
	s.iterPool = shared.NewPool(shared.IteratorPoolCapacity, func() *Iterator[K] { return &Iterator[K]{} })
	s.allocateBuffers(shared.DefaultSize)

	return s
}

func (s *Set[K]) allocateBuffers(capacity uintptr) {
	s.keys = make([]K, capacity)
	s.allocated = make([]bool, capacity)
	s.capMinus1 = capacity - 1
	s.resizeAt = shared.ResizeAt(capacity, s.maxLoad)
}

// Add inserts k, returning true iff it was not already present.
func (s *Set[K]) Add(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	for s.allocated[idx] {
		if s.keys[idx] == k {
			return false
		}
		idx = (idx + 1) & s.capMinus1
	}

	if s.assigned == s.resizeAt {
		// logically place the key in the old buffer first, then grow;
		// the rehash carries it over with every other key. The key and
		// the count are committed before the bigger buffer is allocated.
		s.keys[idx] = k
		s.allocated[idx] = true
		s.assigned++
		s.growAndRehash()
		return true
	}

	s.keys[idx] = k
	s.allocated[idx] = true
	s.assigned++

	return true
}

// growAndRehash doubles capacity and reinserts every key of the old
// buffer into the new one in descending index order, per the probe
// sequence wrap-up rationale in the spec.
func (s *Set[K]) growAndRehash() {
	oldKeys := s.keys
	oldAllocated := s.allocated

	newCap := shared.NextCapacity(s.capMinus1 + 1)
	s.allocateBuffers(newCap)

	for i := len(oldKeys) - 1; i >= 0; i-- {
		if oldAllocated[i] {
			s.insertNoCheck(oldKeys[i])
		}
	}
}

// insertNoCheck places a key known not to be present yet and known not
// to trigger a resize (the caller just allocated the buffer it targets).
func (s *Set[K]) insertNoCheck(k K) {
	idx := s.hasher(k) & s.capMinus1
	for s.allocated[idx] {
		idx = (idx + 1) & s.capMinus1
	}
	s.keys[idx] = k
	s.allocated[idx] = true
}

// Contains reports whether k is present. On a hit the matching slot is
// cached for a following Lkey call.
func (s *Set[K]) Contains(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	for s.allocated[idx] {
		if s.keys[idx] == k {
			s.lastSlot = int(idx)
			return true
		}
		idx = (idx + 1) & s.capMinus1
	}
	s.lastSlot = -1
	return false
}

// Lkey returns the key stored at the slot found by the most recent
// successful Contains call. The second result is false if there was no
// such preceding call.
func (s *Set[K]) Lkey() (K, bool) {
	if s.lastSlot < 0 {
		var zero K
		return zero, false
	}
	return s.keys[s.lastSlot], true
}

// Remove deletes k, returning true iff it was present.
func (s *Set[K]) Remove(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	for s.allocated[idx] {
		if s.keys[idx] == k {
			s.shiftBack(idx)
			s.assigned--
			s.lastSlot = -1
			return true
		}
		idx = (idx + 1) & s.capMinus1
	}
	return false
}

// shiftBack repairs the probe chain after slot p is vacated, pulling
// back every subsequent key whose natural home does not require it to
// stay beyond p.
func (s *Set[K]) shiftBack(p uintptr) {
	mask := s.capMinus1
	for {
		c := (p + 1) & mask
		moved := false
		for s.allocated[c] {
			home := s.hasher(s.keys[c]) & mask
			if !shared.CyclicBetween(p, c, home) {
				moved = true
				break
			}
			c = (c + 1) & mask
		}
		if !moved {
			break
		}
		s.keys[p] = s.keys[c]
		p = c
	}
	s.allocated[p] = false
	var zero K
	s.keys[p] = zero
}

// RemoveAll removes every key for which pred returns true, returning
// the number removed.
func (s *Set[K]) RemoveAll(pred func(K) bool) int {
	count := 0
	for i := uintptr(0); i < s.capMinus1+1; {
		if s.allocated[i] && pred(s.keys[i]) {
			s.shiftBack(i)
			s.assigned--
			count++
			continue // shift-back may have moved a new key into i
		}
		i++
	}
	if count > 0 {
		s.lastSlot = -1
	}
	return count
}

// Clear removes all keys, preserving capacity.
func (s *Set[K]) Clear() {
	var zero K
	for i := range s.allocated {
		s.allocated[i] = false
		s.keys[i] = zero
	}
	s.assigned = 0
	s.lastSlot = -1
}

// Size returns the number of present keys.
func (s *Set[K]) Size() int {
	return int(s.assigned)
}

// Capacity returns the current number of slots.
func (s *Set[K]) Capacity() int {
	return int(s.capMinus1 + 1)
}

// Load returns the current ratio of assigned slots to capacity.
func (s *Set[K]) Load() float32 {
	return float32(s.assigned) / float32(s.capMinus1+1)
}

// Reserve grows the set so it can hold at least n elements without a
// further rehash. If the set is already large enough, it has no effect.
func (s *Set[K]) Reserve(n uintptr) {
	// ResizeAt keeps two slots of headroom below floor(C*maxLoad).
	needed := uintptr(float32(n+2)/s.maxLoad) + 1
	newCap := uintptr(shared.NextPowerOf2(uint64(needed)))
	if newCap < shared.MinCapacity {
		newCap = shared.MinCapacity
	}
	if s.capMinus1+1 < newCap {
		s.resizeTo(newCap)
	}
}

func (s *Set[K]) resizeTo(newCap uintptr) {
	oldKeys := s.keys
	oldAllocated := s.allocated
	s.allocateBuffers(newCap)
	for i := len(oldKeys) - 1; i >= 0; i-- {
		if oldAllocated[i] {
			s.insertNoCheck(oldKeys[i])
		}
	}
}

// MaxLoad changes the load factor; lf must be in the range
// (0.0, 1.0].
func (s *Set[K]) MaxLoad(lf float32) error {
	if lf <= 0.0 || lf > 1.0 {
		return fmt.Errorf("%f: %w", lf, shared.ErrOutOfRange)
	}
	s.maxLoad = lf
	s.resizeAt = shared.ResizeAt(s.capMinus1+1, lf)
	return nil
}

// ForEach calls fn on every present key in descending slot-index order,
// stopping early if fn returns true.
func (s *Set[K]) ForEach(fn func(K) bool) {
	for i := int(s.capMinus1); i >= 0; i-- {
		if s.allocated[i] {
			if fn(s.keys[i]) {
				return
			}
		}
	}
}

// ToArray appends every present key (descending slot order) to buf and
// returns the result, allocating a new slice only if buf lacks capacity.
func (s *Set[K]) ToArray(buf []K) []K {
	out := buf[:0]
	s.ForEach(func(k K) bool {
		out = append(out, k)
		return false
	})
	return out
}

// AddAll inserts every key of other into s.
func (s *Set[K]) AddAll(other *Set[K]) {
	other.ForEach(func(k K) bool {
		s.Add(k)
		return false
	})
}

// Clone returns an independent copy of s.
func (s *Set[K]) Clone() *Set[K] {
	newS := NewWithHasher[K](s.hasher)
	newS.maxLoad = s.maxLoad
	newS.allocateBuffers(s.capMinus1 + 1)
	copy(newS.keys, s.keys)
	copy(newS.allocated, s.allocated)
	newS.assigned = s.assigned
	return newS
}

// Union returns a new set holding every key present in s or other.
func (s *Set[K]) Union(other *Set[K]) *Set[K] {
	result := NewWithHasher[K](s.hasher)
	s.ForEach(func(k K) bool {
		result.Add(k)
		return false
	})
	other.ForEach(func(k K) bool {
		result.Add(k)
		return false
	})
	return result
}

// Intersect returns a new set holding every key present in both s and
// other.
func (s *Set[K]) Intersect(other *Set[K]) *Set[K] {
	result := NewWithHasher[K](s.hasher)
	s.ForEach(func(k K) bool {
		if other.Contains(k) {
			result.Add(k)
		}
		return false
	})
	return result
}

// Difference returns a new set holding every key present in s but not
// in other.
func (s *Set[K]) Difference(other *Set[K]) *Set[K] {
	result := NewWithHasher[K](s.hasher)
	s.ForEach(func(k K) bool {
		if !other.Contains(k) {
			result.Add(k)
		}
		return false
	})
	return result
}

// HashCode sums mix(k) over every present key; the result is
// commutative and order-independent.
func (s *Set[K]) HashCode() uint64 {
	var sum uint64
	for i := range s.allocated {
		if s.allocated[i] {
			sum += uint64(s.hasher(s.keys[i]))
		}
	}
	return sum
}

// Equals reports whether s and other contain exactly the same keys.
func (s *Set[K]) Equals(other *Set[K]) bool {
	if other == nil || s.assigned != other.assigned {
		return false
	}
	equal := true
	s.ForEach(func(k K) bool {
		if !other.Contains(k) {
			equal = false
			return true
		}
		return false
	})
	return equal
}

// Iterator borrows a cursor from the set's iterator pool, positioned to
// walk present keys in descending slot-index order.
func (s *Set[K]) Iterator() *Iterator[K] {
	it := s.iterPool.Get()
	it.set = s
	it.idx = int(s.capMinus1)
	it.pool = s.iterPool
	return it
}

// Iterator is a live, borrowing cursor over a Set. It is invalidated by
// any mutation of the set during iteration (no fail-fast detection is
// performed).
type Iterator[K comparable] struct {
	set  *Set[K]
	idx  int
	pool *shared.Pool[Iterator[K]]
}

// Next advances the cursor and returns the next present key, or
// (zero, false) once exhausted.
func (it *Iterator[K]) Next() (K, bool) {
	for it.idx >= 0 {
		i := it.idx
		it.idx--
		if it.set.allocated[i] {
			return it.set.keys[i], true
		}
	}
	var zero K
	return zero, false
}

// Close releases the iterator back to its owning set's pool, clearing
// its buffer reference so the set doesn't stay reachable through it.
func (it *Iterator[K]) Close() {
	it.set = nil
	if it.pool != nil {
		it.pool.Put(it)
	}
}
