package colleng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	colleng "github.com/student/colleng"
	"github.com/student/colleng/shared"
)

func TestNewSetDefaultsToPlainLayout(t *testing.T) {
	s, err := colleng.NewSet(colleng.Config[int]{})
	assert.NoError(t, err)

	assert.True(t, s.Add(5))
	assert.False(t, s.Add(5))
	assert.True(t, s.Contains(5))
	assert.Equal(t, 1, s.Size())
}

func TestNewSetRobinLayout(t *testing.T) {
	s, err := colleng.NewSet(colleng.Config[int]{Layout: colleng.Robin})
	assert.NoError(t, err)

	for i := 0; i < 100; i++ {
		s.Add(i)
	}
	assert.Equal(t, 100, s.Size())
	for i := 0; i < 100; i++ {
		assert.True(t, s.Contains(i))
	}
}

func TestNewSetSentinelLayoutHandlesDefaultKey(t *testing.T) {
	s, err := colleng.NewSet(colleng.Config[int]{Layout: colleng.Sentinel})
	assert.NoError(t, err)

	assert.True(t, s.Add(0))
	assert.False(t, s.Add(0))
	assert.True(t, s.Contains(0))
}

func TestNewSetRejectsNegativeSize(t *testing.T) {
	_, err := colleng.NewSet(colleng.Config[int]{Size: -1})
	assert.ErrorIs(t, err, shared.ErrNegativeCapacity)
}

func TestMustNewSetPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		colleng.MustNewSet(colleng.Config[int]{Size: -5})
	})
}

func TestNewSetWithSeedProducesWorkingHasher(t *testing.T) {
	s, err := colleng.NewSet(colleng.Config[int]{Seed: 0xabcd})
	assert.NoError(t, err)
	assert.True(t, s.Add(42))
	assert.True(t, s.Contains(42))
}

func TestNewSetRespectsMaxLoadAndReserve(t *testing.T) {
	s, err := colleng.NewSet(colleng.Config[int]{Layout: colleng.Plain, MaxLoad: 0.5, Size: 100})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, s.Capacity(), 100)
}

func TestNewHeapConvenienceWrapper(t *testing.T) {
	h := colleng.NewHeap[int]()
	h.Insert(3)
	h.Insert(1)
	h.Insert(2)
	assert.Equal(t, 1, h.PopTop())
}

func TestNewHeapWithComparatorConvenienceWrapper(t *testing.T) {
	h := colleng.NewHeapWithComparator[int](func(a, b int) int { return b - a })
	h.Insert(3)
	h.Insert(1)
	h.Insert(2)
	assert.Equal(t, 3, h.PopTop())
}
