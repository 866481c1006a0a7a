package robin

import (
	"fmt"

	"github.com/student/colleng/shared"
)

const emptySlot int32 = -1

type slot[K comparable] struct {
	key K
	// psl is the probe sequence length: the forward cyclic distance from
	// the key's natural home to this slot. emptySlot marks a free slot.
	psl int32
}

// Set is a Robin-Hood hash set over comparable keys.
type Set[K comparable] struct {
	slots  []slot[K]
	hasher shared.HashFn[K]

	assigned  uintptr
	capMinus1 uintptr
	resizeAt  uintptr
	maxLoad   float32

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

func newSlots[K comparable](capacity uintptr) []slot[K] {
	slots := make([]slot[K], capacity)
	for i := range slots {
		slots[i].psl = emptySlot
	}
	return slots
}

func (s *Set[K]) allocateBuffers(capacity uintptr) {
	s.slots = newSlots[K](capacity)
	s.capMinus1 = capacity - 1
	s.resizeAt = shared.ResizeAt(capacity, s.maxLoad)
}

// probeDistance returns the PSL of the slot at index idx (emptySlot if
// it is free). It is unexported and used by this package's own
// invariant tests.
func (s *Set[K]) probeDistance(idx uintptr) int32 {
	return s.slots[idx].psl
}

// Contains reports whether k is present, using the PSL short-circuit:
// the search stops as soon as the resident's PSL is less than the
// searcher's current distance, since Robin-Hood ordering guarantees k
// would have evicted that resident had it been inserted first.
func (s *Set[K]) Contains(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	for dist := int32(0); dist <= s.slots[idx].psl; dist++ {
		if s.slots[idx].key == k {
			s.lastSlot = int(idx)
			return true
		}
		idx = (idx + 1) & s.capMinus1
	}
	s.lastSlot = -1
	return false
}

// Lkey returns the key stored at the slot found by the most recent
// successful Contains call.
func (s *Set[K]) Lkey() (K, bool) {
	if s.lastSlot < 0 {
		var zero K
		return zero, false
	}
	return s.slots[s.lastSlot].key, true
}

// Add inserts k, returning true iff it was not already present.
func (s *Set[K]) Add(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	dist := int32(0)
	for ; dist <= s.slots[idx].psl; dist++ {
		if s.slots[idx].key == k {
			return false
		}
		idx = (idx + 1) & s.capMinus1
	}

	if s.assigned == s.resizeAt {
		// logically emplace in the old table first, then rehash the
		// whole (now one-bigger) table into a freshly grown one.
		s.emplace(slot[K]{key: k, psl: dist}, idx)
		s.assigned++
		s.growAndRehash()
		return true
	}

	s.assigned++
	s.emplace(slot[K]{key: k, psl: dist}, idx)

	return true
}

// emplace walks forward from idx applying the Robin Hood creed until an
// empty slot is found.
func (s *Set[K]) emplace(incoming slot[K], idx uintptr) {
	for {
		if s.slots[idx].psl == emptySlot {
			s.slots[idx] = incoming
			return
		}
		if incoming.psl > s.slots[idx].psl {
			incoming, s.slots[idx] = s.slots[idx], incoming
		}
		idx = (idx + 1) & s.capMinus1
		incoming.psl++
	}
}

func (s *Set[K]) growAndRehash() {
	old := s.slots
	newCap := shared.NextCapacity(s.capMinus1 + 1)
	s.allocateBuffers(newCap)

	for i := len(old) - 1; i >= 0; i-- {
		if old[i].psl != emptySlot {
			idx := s.hasher(old[i].key) & s.capMinus1
			s.emplace(slot[K]{key: old[i].key, psl: 0}, idx)
		}
	}
}

// Remove deletes k, returning true iff it was present.
func (s *Set[K]) Remove(k K) bool {
	idx := s.hasher(k) & s.capMinus1
	found := false
	for dist := int32(0); dist <= s.slots[idx].psl; dist++ {
		if s.slots[idx].key == k {
			found = true
			break
		}
		idx = (idx + 1) & s.capMinus1
	}
	if !found {
		return false
	}

	s.removeAt(idx)
	s.assigned--
	s.lastSlot = -1

	return true
}

// removeAt performs the Robin-Hood backward shift: each following slot
// with psl > 0 is pulled one step closer to its home, since doing so can
// never increase its own distance in Robin-Hood order.
func (s *Set[K]) removeAt(idx uintptr) {
	s.slots[idx].psl = emptySlot

	next := (idx + 1) & s.capMinus1
	for s.slots[next].psl > 0 {
		s.slots[next].psl--
		s.slots[idx], s.slots[next] = s.slots[next], s.slots[idx]
		idx = next
		next = (idx + 1) & s.capMinus1
	}
}

// RemoveAll removes every key for which pred returns true, returning
// the number removed.
func (s *Set[K]) RemoveAll(pred func(K) bool) int {
	count := 0
	for i := uintptr(0); i < s.capMinus1+1; {
		if s.slots[i].psl != emptySlot && pred(s.slots[i].key) {
			s.removeAt(i)
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
	for i := range s.slots {
		s.slots[i].psl = emptySlot
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
	old := s.slots
	s.allocateBuffers(newCap)
	for i := len(old) - 1; i >= 0; i-- {
		if old[i].psl != emptySlot {
			idx := s.hasher(old[i].key) & s.capMinus1
			s.emplace(slot[K]{key: old[i].key, psl: 0}, idx)
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

// ForEach calls fn on every present key in descending slot-index order.
func (s *Set[K]) ForEach(fn func(K) bool) {
	for i := int(s.capMinus1); i >= 0; i-- {
		if s.slots[i].psl != emptySlot {
			if fn(s.slots[i].key) {
				return
			}
		}
	}
}

// ToArray appends every present key (descending slot order) to buf and
// returns the result.
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
	copy(newS.slots, s.slots)
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

// HashCode sums mix(k) over every present key.
func (s *Set[K]) HashCode() uint64 {
	var sum uint64
	for i := range s.slots {
		if s.slots[i].psl != emptySlot {
			sum += uint64(s.hasher(s.slots[i].key))
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
	it.pool = s.iterPool
	return it
}

// Iterator is a live, borrowing cursor over a Set.
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
		if it.set.slots[i].psl != emptySlot {
			return it.set.slots[i].key, true
		}
	}
	var zero K
	return zero, false
}

// Close releases the iterator back to its owning set's pool.
func (it *Iterator[K]) Close() {
	it.set = nil
	if it.pool != nil {
		it.pool.Put(it)
	}
}
