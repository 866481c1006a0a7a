package plain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/student/colleng/plain"
	"github.com/student/colleng/shared"
)

func TestAddContainsRemove(t *testing.T) {
	s := plain.New[int]()

	assert.True(t, s.Add(5))
	assert.False(t, s.Add(5))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))

	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5))
	assert.False(t, s.Contains(5))
}

func TestLkey(t *testing.T) {
	s := plain.New[int]()
	s.Add(42)

	_, ok := s.Lkey()
	assert.False(t, ok, "Lkey before any Contains call must report false")

	assert.True(t, s.Contains(42))
	k, ok := s.Lkey()
	assert.True(t, ok)
	assert.Equal(t, 42, k)

	assert.False(t, s.Contains(7))
	_, ok = s.Lkey()
	assert.False(t, ok)
}

func TestGrowShrinkScenario(t *testing.T) {
	// spec.md §8.1: 0..999 inserted, load factor 0.75, initial cap 4
	s := plain.New[int]()
	require := assert.New(t)
	require.NoError(s.MaxLoad(0.75))

	for i := 0; i < 1000; i++ {
		s.Add(i)
	}

	require.Equal(1000, s.Size())
	require.Equal(2048, s.Capacity())

	for i := 0; i < 1000; i++ {
		require.True(s.Contains(i))
	}
	for i := 1000; i < 2000; i++ {
		require.False(s.Contains(i))
	}
}

func TestShiftBackScenario(t *testing.T) {
	// force three keys into the same home slot via a constant hasher,
	// then remove the first and check the chain repairs without losing
	// the other two.
	constHash := func(int) uintptr { return 3 }
	s := plain.NewWithHasher[int](constHash)

	s.Add(1)
	s.Add(2)
	s.Add(3)

	assert.True(t, s.Remove(1))

	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(1))
	assert.Equal(t, 2, s.Size())
}

func TestRemoveAllReexaminesShiftedSlot(t *testing.T) {
	s := plain.New[int]()
	for i := 0; i < 50; i++ {
		s.Add(i)
	}

	removed := s.RemoveAll(func(k int) bool { return k%2 == 0 })
	assert.Equal(t, 25, removed)
	assert.Equal(t, 25, s.Size())

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			assert.False(t, s.Contains(i))
		} else {
			assert.True(t, s.Contains(i))
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	s := plain.New[int]()
	s.Add(1)
	s.Add(2)

	clone := s.Clone()
	assert.True(t, s.Equals(clone))

	clone.Add(3)
	assert.False(t, s.Contains(3))
	assert.True(t, clone.Contains(3))
	assert.False(t, s.Equals(clone))
}

func TestAddAllRoundTrip(t *testing.T) {
	s := plain.New[int]()
	for i := 0; i < 200; i++ {
		s.Add(i)
	}

	arr := s.ToArray(nil)
	fresh := plain.New[int]()
	for _, k := range arr {
		fresh.Add(k)
	}

	assert.True(t, s.Equals(fresh))
}

func TestIteratorDescendingAndPooled(t *testing.T) {
	s := plain.New[int]()
	for i := 0; i < 10; i++ {
		s.Add(i)
	}

	it := s.Iterator()
	count := 0
	var got []int
	for {
		k, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, k)
		count++
	}
	it.Close()
	assert.Equal(t, 10, count)
	// ToArray lists keys in descending slot-index order too
	assert.Equal(t, s.ToArray(nil), got)

	// the recycled iterator must be usable again without leaking state
	it2 := s.Iterator()
	_, ok := it2.Next()
	assert.True(t, ok)
	it2.Close()
}

func TestCrossCheckAgainstBuiltinMap(t *testing.T) {
	s := plain.New[uint64]()
	oracle := make(map[uint64]bool)

	const nops = 20000
	for i := 0; i < nops; i++ {
		key := uint64(rand.Intn(2000))
		switch rand.Intn(3) {
		case 0:
			_, inOracle := oracle[key]
			oracle[key] = true
			isNew := s.Add(key)
			assert.Equal(t, !inOracle, isNew)
		case 1:
			_, inOracle := oracle[key]
			assert.Equal(t, inOracle, s.Contains(key))
		case 2:
			_, inOracle := oracle[key]
			delete(oracle, key)
			assert.Equal(t, inOracle, s.Remove(key))
		}
	}

	assert.Equal(t, len(oracle), s.Size())
	for k := range oracle {
		assert.True(t, s.Contains(k))
	}
}

func TestHashCodeCommutative(t *testing.T) {
	a := plain.New[int]()
	b := plain.New[int]()

	order1 := []int{5, 1, 9, 3}
	order2 := []int{9, 3, 5, 1}

	for _, k := range order1 {
		a.Add(k)
	}
	for _, k := range order2 {
		b.Add(k)
	}

	assert.Equal(t, a.HashCode(), b.HashCode())
}

func TestReserveAvoidsRehashBelowTarget(t *testing.T) {
	s := plain.New[int]()
	s.Reserve(500)
	capAfterReserve := s.Capacity()

	for i := 0; i < 400; i++ {
		s.Add(i)
	}

	assert.Equal(t, capAfterReserve, s.Capacity())
}

func TestUnionIntersectDifference(t *testing.T) {
	a := plain.New[int]()
	for _, k := range []int{1, 2, 3, 4} {
		a.Add(k)
	}
	b := plain.New[int]()
	for _, k := range []int{3, 4, 5, 6} {
		b.Add(k)
	}

	union := a.Union(b)
	for _, k := range []int{1, 2, 3, 4, 5, 6} {
		assert.True(t, union.Contains(k))
	}
	assert.Equal(t, 6, union.Size())

	inter := a.Intersect(b)
	assert.Equal(t, 2, inter.Size())
	assert.True(t, inter.Contains(3))
	assert.True(t, inter.Contains(4))

	diff := a.Difference(b)
	assert.Equal(t, 2, diff.Size())
	assert.True(t, diff.Contains(1))
	assert.True(t, diff.Contains(2))
	assert.False(t, diff.Contains(3))
}

func TestMixSeededConstructionStillCompiles(t *testing.T) {
	hasher := shared.GetSeededHasher[int](0x1234)
	s := plain.NewWithHasher[int](hasher)
	s.Add(1)
	assert.True(t, s.Contains(1))
}
