package hashset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newIdentitySet(t *testing.T, capacity int, loadFactor float64) *Set[int64] {
	t.Helper()
	s, err := NewWithCapacityAndLoadFactor[int64](capacity, loadFactor)
	assert.NoError(t, err)
	assert.NoError(t, s.SetHasher(IdentityHasher[int64]))
	return s
}

func TestNewDefaults(t *testing.T) {
	s := New[int32]()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, DefaultInitialCapacity, s.Capacity())
	assert.Equal(t, DefaultLoadFactor, s.LoadFactor())
}

func TestNewWithCapacityRoundsUp(t *testing.T) {
	s, err := NewWithCapacity[int64](10)
	assert.NoError(t, err)
	assert.Equal(t, 16, s.Capacity())

	s, err = NewWithCapacity[int64](0)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Capacity())

	s, err = NewWithCapacity[int64](1)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Capacity())
}

func TestNewInvalidArguments(t *testing.T) {
	_, err := NewWithCapacity[int64](-1)
	assert.ErrorIs(t, err, ErrNegativeCapacity)

	_, err = NewWithCapacityAndLoadFactor[int64](8, 0.05)
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)

	_, err = NewWithCapacityAndLoadFactor[int64](8, 0.95)
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)

	_, err = NewWithCapacityAndLoadFactor[int64](8, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)
}

func TestNewFromSlice(t *testing.T) {
	s := NewFromSlice([]int64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5})
	assert.Equal(t, 7, s.Size())
	assert.True(t, s.ContainsAll(3, 1, 4, 5, 9, 2, 6))
	assert.False(t, s.Contains(7))
}

func TestAddRemoveContains(t *testing.T) {
	s := New[int64]()
	assert.True(t, s.Add(42), "first add should change the set")
	assert.False(t, s.Add(42), "second add of same value should not")
	assert.Equal(t, 1, s.Size())
	assert.True(t, s.Contains(42))

	assert.True(t, s.Remove(42), "first remove should change the set")
	assert.False(t, s.Remove(42), "second remove of same value should not")
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(42))
}

func TestZeroElement(t *testing.T) {
	s := New[int64]()
	assert.False(t, s.Contains(0))

	assert.True(t, s.Add(0))
	assert.False(t, s.Add(0))
	assert.True(t, s.Contains(0))
	assert.Equal(t, 1, s.Size())

	s.Add(7)
	assert.Equal(t, 2, s.Size())
	assert.ElementsMatch(t, []int64{7, 0}, s.ToSlice())

	assert.True(t, s.Remove(0))
	assert.False(t, s.Remove(0))
	assert.False(t, s.Contains(0))
	assert.Equal(t, 1, s.Size())
}

func TestGrowthScenario(t *testing.T) {
	s, err := NewWithCapacityAndLoadFactor[int64](16, 0.55)
	assert.NoError(t, err)

	// threshold is floor(16*0.55) = 8
	for v := int64(1); v <= 8; v++ {
		s.Add(v)
	}
	assert.Equal(t, 16, s.Capacity(), "8 elements should fit without growth")

	s.Add(9)
	assert.Equal(t, 32, s.Capacity(), "9th element should trigger one doubling")
	assert.Equal(t, 9, s.Size())

	assert.True(t, s.Remove(5))
	assert.True(t, s.Add(5))
	assert.Equal(t, 9, s.Size())
	assert.True(t, s.Contains(5))
	assert.Equal(t, 32, s.Capacity())
}

func TestCompactionRegression(t *testing.T) {
	// 8, 9 and 56 collide at slot 8 in a capacity-16 table under identity
	// hashing; 56 ends up displaced past 9. Removing 8 and 9 must shift 56
	// back instead of stranding it behind the gap.
	s := newIdentitySet(t, 16, 0.9)
	s.AddAll(8, 9, 35, 49, 56)

	assert.True(t, s.Remove(8))
	assert.True(t, s.Remove(9))

	assert.True(t, s.ContainsAll(35, 49, 56))
	assert.Equal(t, 3, s.Size())
	checkProbeInvariant(t, s)
}

func TestResizeTransparency(t *testing.T) {
	s, err := NewWithCapacity[int64](16)
	assert.NoError(t, err)
	for v := int64(1); v <= 1000; v++ {
		s.Add(v)
	}
	assert.Equal(t, 1000, s.Size())
	for v := int64(1); v <= 1000; v++ {
		assert.True(t, s.Contains(v), "value %d lost across resizes", v)
	}
	assert.False(t, s.Contains(1001))
}

func TestClear(t *testing.T) {
	s := New[int64]()
	s.AddAll(0, 1, 2, 3)
	capacity := s.Capacity()

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, capacity, s.Capacity(), "clear should not reallocate")
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(1))
}

func TestCompactShrinksToFit(t *testing.T) {
	s := New[int64]()
	for v := int64(1); v <= 100; v++ {
		s.Add(v)
	}
	grown := s.Capacity()
	for v := int64(6); v <= 100; v++ {
		s.Remove(v)
	}

	s.Compact()
	assert.Less(t, s.Capacity(), grown)
	// smallest power of two with 5/capacity <= 0.65
	assert.Equal(t, 8, s.Capacity())
	assert.True(t, s.ContainsAll(1, 2, 3, 4, 5))
	checkProbeInvariant(t, s)
}

func TestBulkSliceOps(t *testing.T) {
	s := New[int64]()
	assert.True(t, s.AddAll(1, 2, 3, 0))
	assert.False(t, s.AddAll(1, 2))
	assert.Equal(t, 4, s.Size())

	assert.True(t, s.ContainsAll(1, 2, 3, 0))
	assert.False(t, s.ContainsAll(1, 9))

	assert.True(t, s.RemoveAll(2, 9))
	assert.False(t, s.RemoveAll(9))
	assert.Equal(t, 3, s.Size())

	assert.True(t, s.RetainAll([]int64{1, 0, 7}))
	assert.Equal(t, 2, s.Size())
	assert.True(t, s.ContainsAll(1, 0))
	assert.False(t, s.RetainAll([]int64{1, 0}))
}

func TestBulkSetOps(t *testing.T) {
	a := NewFromSlice([]int64{1, 2, 3})
	b := NewFromSlice([]int64{3, 4, 0})

	assert.True(t, a.AddSet(b))
	assert.Equal(t, 5, a.Size())
	assert.True(t, a.ContainsSet(b))

	assert.True(t, a.RemoveSet(b))
	assert.Equal(t, 2, a.Size())
	assert.True(t, a.ContainsAll(1, 2))
	assert.False(t, a.Contains(0))

	a.Add(9)
	assert.True(t, a.RetainSet(NewFromSlice([]int64{1, 9, 50})))
	assert.Equal(t, 2, a.Size())
	assert.True(t, a.ContainsAll(1, 9))

	assert.False(t, a.AddSet(nil))
	assert.False(t, a.RemoveSet(nil))
	assert.True(t, a.ContainsSet(nil))
	assert.True(t, a.RetainSet(nil))
	assert.True(t, a.IsEmpty())
}

func TestEqualHashOrderIndependent(t *testing.T) {
	a := New[int64]()
	a.AddAll(1, 2, 3, 4, 5, 0)
	a.Remove(4)
	a.Remove(2)
	a.Add(2)

	b := New[int64]()
	b.AddAll(5, 0, 2, 9, 3, 1)
	b.Remove(9)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())

	b.Remove(0)
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(a))
}

func TestToSliceAndToArray(t *testing.T) {
	s := newIdentitySet(t, 8, 0.65)
	s.AddAll(1, 2, 3, 0)

	assert.Equal(t, []int64{1, 2, 3, 0}, s.ToSlice())

	// big enough: reused, trailing slot zeroed
	dst := []int64{9, 9, 9, 9, 9, 9}
	got := s.ToArray(dst)
	assert.Equal(t, []int64{1, 2, 3, 0, 0, 9}, got)
	assert.Same(t, &dst[0], &got[0], "large destination should be reused")

	// too small: fresh right-sized slice
	got = s.ToArray(make([]int64, 2))
	assert.Equal(t, []int64{1, 2, 3, 0}, got)

	got = s.ToArray(nil)
	assert.Equal(t, []int64{1, 2, 3, 0}, got)
}

func TestClone(t *testing.T) {
	s := New[int64]()
	s.AddAll(1, 2, 0)

	c := s.Clone()
	assert.True(t, s.Equal(c))

	c.Add(7)
	c.Remove(1)
	assert.True(t, s.ContainsAll(1, 2, 0))
	assert.False(t, s.Contains(7))
	assert.Equal(t, 3, s.Size())
}

func TestString(t *testing.T) {
	s := newIdentitySet(t, 8, 0.65)
	assert.Equal(t, "[]", s.String())

	s.AddAll(1, 2, 3)
	assert.Equal(t, "[1, 2, 3]", s.String())

	s.Add(0)
	assert.Equal(t, "[1, 2, 3, 0]", s.String())
}

func TestSetHasher(t *testing.T) {
	s := New[int64]()
	assert.ErrorIs(t, s.SetHasher(nil), ErrNilArgument)

	s.Add(1)
	assert.ErrorIs(t, s.SetHasher(IdentityHasher[int64]), ErrNotEmpty)

	s.Remove(1)
	assert.NoError(t, s.SetHasher(IdentityHasher[int64]))
}
