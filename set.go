package colleng

import (
	"fmt"

	"github.com/student/colleng/heap"
	"github.com/student/colleng/plain"
	"github.com/student/colleng/robin"
	"github.com/student/colleng/sentinel"
	"github.com/student/colleng/shared"
)

// Set is the basic hash-set interface as a set of function pointers,
// letting NewSet hand back a uniform value regardless of which layout
// was selected under the hood.
type Set[K comparable] struct {
	Add       func(k K) bool
	Contains  func(k K) bool
	Lkey      func() (K, bool)
	Remove    func(k K) bool
	RemoveAll func(pred func(K) bool) int
	Clear     func()
	Size      func() int
	Capacity  func() int
	Load      func() float32
	Reserve   func(n uintptr)
	MaxLoad   func(lf float32) error
	ForEach   func(fn func(K) bool)
	ToArray   func(buf []K) []K
	HashCode  func() uint64
}

// Layout selects which open-addressing storage layout NewSet builds.
type Layout int

const (
	// Plain is the generic-key layout with a parallel boolean
	// allocation array.
	Plain Layout = iota
	// Robin is the generic-key layout with Robin-Hood reordering.
	Robin
	// Sentinel is the primitive-key layout with no side array, using
	// the zero value of K as the empty-slot marker.
	Sentinel
)

// Config configures the factory-built Set returned by NewSet.
type Config[K comparable] struct {
	Layout Layout
	// Size reserves capacity for at least this many elements up front.
	// If unset, the layout's default starting capacity is used. Must
	// not be negative.
	Size int
	// MaxLoad changes the load factor. If unset, shared.DefaultMaxLoad
	// is used.
	MaxLoad float32
	// Hasher is used instead of the default primitive-kind hasher when
	// set. Mutually exclusive with Seed.
	Hasher shared.HashFn[K]
	// Seed, when non-zero and Hasher is unset, selects a seeded variant
	// of the default hasher instead of the unseeded one. Integer key
	// kinds only: string and float keys use the unseeded hasher.
	Seed uint64
}

// MustNewSet is NewSet but panics instead of returning an error.
func MustNewSet[K comparable](cfg Config[K]) *Set[K] {
	s, err := NewSet(cfg)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// NewSet is a factory function that builds a Set backed by the layout
// named in cfg.Layout.
func NewSet[K comparable](cfg Config[K]) (*Set[K], error) {
	if cfg.Size < 0 {
		return nil, fmt.Errorf("size %d: %w", cfg.Size, shared.ErrNegativeCapacity)
	}

	hasher := cfg.Hasher
	if hasher == nil {
		if cfg.Seed != 0 {
			hasher = shared.GetSeededHasher[K](cfg.Seed)
		} else {
			hasher = shared.GetHasher[K]()
		}
	}

	res := &Set[K]{}

	switch cfg.Layout {
	case Robin:
		m := robin.NewWithHasher[K](hasher)
		bindRobin(res, m)
	case Sentinel:
		m := sentinel.NewWithHasher[K](hasher)
		bindSentinel(res, m)
	default:
		m := plain.NewWithHasher[K](hasher)
		bindPlain(res, m)
	}

	if cfg.MaxLoad > 0 {
		if err := res.MaxLoad(cfg.MaxLoad); err != nil {
			return nil, err
		}
	}
	if cfg.Size > 0 {
		res.Reserve(uintptr(cfg.Size))
	}

	return res, nil
}

func bindPlain[K comparable](res *Set[K], m *plain.Set[K]) {
	res.Add = m.Add
	res.Contains = m.Contains
	res.Lkey = m.Lkey
	res.Remove = m.Remove
	res.RemoveAll = m.RemoveAll
	res.Clear = m.Clear
	res.Size = m.Size
	res.Capacity = m.Capacity
	res.Load = m.Load
	res.Reserve = m.Reserve
	res.MaxLoad = m.MaxLoad
	res.ForEach = m.ForEach
	res.ToArray = m.ToArray
	res.HashCode = m.HashCode
}

func bindRobin[K comparable](res *Set[K], m *robin.Set[K]) {
	res.Add = m.Add
	res.Contains = m.Contains
	res.Lkey = m.Lkey
	res.Remove = m.Remove
	res.RemoveAll = m.RemoveAll
	res.Clear = m.Clear
	res.Size = m.Size
	res.Capacity = m.Capacity
	res.Load = m.Load
	res.Reserve = m.Reserve
	res.MaxLoad = m.MaxLoad
	res.ForEach = m.ForEach
	res.ToArray = m.ToArray
	res.HashCode = m.HashCode
}

func bindSentinel[K comparable](res *Set[K], m *sentinel.Set[K]) {
	res.Add = m.Add
	res.Contains = m.Contains
	res.Lkey = m.Lkey
	res.Remove = m.Remove
	res.RemoveAll = m.RemoveAll
	res.Clear = m.Clear
	res.Size = m.Size
	res.Capacity = m.Capacity
	res.Load = m.Load
	res.Reserve = m.Reserve
	res.MaxLoad = m.MaxLoad
	res.ForEach = m.ForEach
	res.ToArray = m.ToArray
	res.HashCode = m.HashCode
}

// NewHeap is a convenience re-export so callers can build the queue
// alongside a Set without importing the heap package separately.
func NewHeap[K shared.Ordered]() *heap.Heap[K] {
	return heap.NewOrdered[K]()
}

// NewHeapWithComparator builds a heap ordered by an injected comparator
// instead of K's natural ordering.
func NewHeapWithComparator[K any](cmp heap.Comparator[K]) *heap.Heap[K] {
	return heap.New[K](cmp)
}
