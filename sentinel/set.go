package sentinel

import (
	"fmt"

	"github.com/student/colleng/shared"
)

// Set is an open-addressing hash set over a primitive-shaped key type,
// using the zero value of K as the empty-slot sentinel.
type Set[K comparable] struct {
	keys   []K
	hasher shared.HashFn[K]

	// allocatedDefaultKey tracks membership of the zero-valued key
	// out-of-band, since the array can't distinguish "empty" from
	// "holds the zero key" on its own.
	allocatedDefaultKey bool

	assigned  uintptr
	capMinus1 uintptr
	resizeAt  uintptr
	maxLoad   float32

	// lastSlot caches where the most recent successful Contains found
	// its match: -1 means no match, -2 means the match was the
	// out-of-band default key, >= 0 is a slot in keys.
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
	s.capMinus1 = capacity - 1
	s.resizeAt = shared.ResizeAt(capacity, s.maxLoad)
}

// Add inserts k, returning true iff it was not already present.
func (s *Set[K]) Add(k K) bool {
	var zero K
	if k == zero {
		wasNew := !s.allocatedDefaultKey
		if wasNew {
			s.allocatedDefaultKey = true
			s.assigned++
		}
		return wasNew
	}

	idx := s.hasher(k) & s.capMinus1
	for s.keys[idx] != zero {
		if s.keys[idx] == k {
			return false
		}
		idx = (idx + 1) & s.capMinus1
	}

	// >= rather than ==: the out-of-band default key also counts toward
	// assigned, so adding it can step assigned past resizeAt.
	if s.assigned >= s.resizeAt {
		s.keys[idx] = k
		s.assigned++
		s.growAndRehash()
		return true
	}

	s.keys[idx] = k
	s.assigned++

	return true
}

func (s *Set[K]) growAndRehash() {
	old := s.keys
	var zero K
	defaultKey := s.allocatedDefaultKey

	newCap := shared.NextCapacity(s.capMinus1 + 1)
	s.allocateBuffers(newCap)
	s.allocatedDefaultKey = defaultKey

	for i := len(old) - 1; i >= 0; i-- {
		if old[i] != zero {
			s.insertNoCheck(old[i])
		}
	}
}

func (s *Set[K]) insertNoCheck(k K) {
	var zero K
	idx := s.hasher(k) & s.capMinus1
	for s.keys[idx] != zero {
		idx = (idx + 1) & s.capMinus1
	}
	s.keys[idx] = k
}

// Contains reports whether k is present. On a hit the matching slot
// (-2 for the default key) is cached for a following Lkey call.
func (s *Set[K]) Contains(k K) bool {
	var zero K
	if k == zero {
		if s.allocatedDefaultKey {
			s.lastSlot = -2
			return true
		}
		s.lastSlot = -1
		return false
	}

	idx := s.hasher(k) & s.capMinus1
	for s.keys[idx] != zero {
		if s.keys[idx] == k {
			s.lastSlot = int(idx)
			return true
		}
		idx = (idx + 1) & s.capMinus1
	}
	s.lastSlot = -1
	return false
}

// Lkey returns the key found by the most recent successful Contains
// call.
func (s *Set[K]) Lkey() (K, bool) {
	var zero K
	switch {
	case s.lastSlot == -2:
		return zero, true
	case s.lastSlot < 0:
		return zero, false
	default:
		return s.keys[s.lastSlot], true
	}
}

// Remove deletes k, returning true iff it was present.
func (s *Set[K]) Remove(k K) bool {
	var zero K
	if k == zero {
		if !s.allocatedDefaultKey {
			return false
		}
		s.allocatedDefaultKey = false
		s.assigned--
		s.lastSlot = -1
		return true
	}

	idx := s.hasher(k) & s.capMinus1
	for s.keys[idx] != zero {
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

func (s *Set[K]) shiftBack(p uintptr) {
	var zero K
	mask := s.capMinus1
	for {
		c := (p + 1) & mask
		moved := false
		for s.keys[c] != zero {
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
	s.keys[p] = zero
}

// RemoveAll removes every present key (including the default key) for
// which pred returns true, returning the number removed.
func (s *Set[K]) RemoveAll(pred func(K) bool) int {
	count := 0
	var zero K

	if s.allocatedDefaultKey && pred(zero) {
		s.allocatedDefaultKey = false
		s.assigned--
		count++
	}

	for i := uintptr(0); i < s.capMinus1+1; {
		if s.keys[i] != zero && pred(s.keys[i]) {
			s.shiftBack(i)
			s.assigned--
			count++
			continue
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
	for i := range s.keys {
		s.keys[i] = zero
	}
	s.allocatedDefaultKey = false
	s.assigned = 0
	s.lastSlot = -1
}

// Size returns the number of present keys.
func (s *Set[K]) Size() int {
	return int(s.assigned)
}

// Capacity returns the current number of slots in the main array (the
// default-key slot is not counted, as it occupies no array space).
func (s *Set[K]) Capacity() int {
	return int(s.capMinus1 + 1)
}

// Load returns the current ratio of assigned slots to capacity.
func (s *Set[K]) Load() float32 {
	return float32(s.assigned) / float32(s.capMinus1+1)
}

// Reserve grows the set so it can hold at least n elements without a
// further rehash.
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
	old := s.keys
	var zero K
	defaultKey := s.allocatedDefaultKey
	s.allocateBuffers(newCap)
	s.allocatedDefaultKey = defaultKey
	for i := len(old) - 1; i >= 0; i-- {
		if old[i] != zero {
			s.insertNoCheck(old[i])
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

// ForEach calls fn on every present key. The default key, if present, is
// emitted first; the remaining keys follow in descending slot-index
// order.
func (s *Set[K]) ForEach(fn func(K) bool) {
	var zero K
	if s.allocatedDefaultKey {
		if fn(zero) {
			return
		}
	}
	for i := int(s.capMinus1); i >= 0; i-- {
		if s.keys[i] != zero {
			if fn(s.keys[i]) {
				return
			}
		}
	}
}

// ToArray appends every present key to buf and returns the result.
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
	newS.allocatedDefaultKey = s.allocatedDefaultKey
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

// HashCode sums mix(k) over every present key, including the default
// key if allocated.
func (s *Set[K]) HashCode() uint64 {
	var sum uint64
	var zero K
	if s.allocatedDefaultKey {
		sum += uint64(s.hasher(zero))
	}
	for i := range s.keys {
		if s.keys[i] != zero {
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

// Iterator borrows a cursor from the set's iterator pool.
func (s *Set[K]) Iterator() *Iterator[K] {
	it := s.iterPool.Get()
	it.set = s
	it.idx = int(s.capMinus1)
	it.emittedDefault = !s.allocatedDefaultKey
	it.pool = s.iterPool
	return it
}

// Iterator is a live, borrowing cursor over a Set.
type Iterator[K comparable] struct {
	set            *Set[K]
	idx            int
	emittedDefault bool
	pool           *shared.Pool[Iterator[K]]
}

// Next advances the cursor and returns the next present key, emitting
// the default key first if the set holds one.
func (it *Iterator[K]) Next() (K, bool) {
	var zero K
	if !it.emittedDefault {
		it.emittedDefault = true
		return zero, true
	}
	for it.idx >= 0 {
		i := it.idx
		it.idx--
		if it.set.keys[i] != zero {
			return it.set.keys[i], true
		}
	}
	return zero, false
}

// Close releases the iterator back to its owning set's pool.
func (it *Iterator[K]) Close() {
	it.set = nil
	if it.pool != nil {
		it.pool.Put(it)
	}
}
