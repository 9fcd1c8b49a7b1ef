package hashset

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	DefaultInitialCapacity = 8
	DefaultLoadFactor      = 0.65

	MinLoadFactor = 0.1
	MaxLoadFactor = 0.9
)

// Set is an open-addressing hash set over a primitive integer type. Elements
// live directly in a flat power-of-two slot array and collisions resolve by
// linear probing. The zero value of T marks an empty slot, so membership of
// the zero element itself is tracked by a separate flag. Deletion repairs the
// probe chain by shifting later entries backward instead of leaving
// tombstones, so lookup cost never degrades with churn.
//
// A Set is not safe for concurrent use.
type Set[T constraints.Integer] struct {
	slots           []T
	size            int
	containsZero    bool
	loadFactor      float64
	resizeThreshold int
	modCount        int
	hash            Hasher[T]
}

// New returns an empty set with the default capacity and load factor.
func New[T constraints.Integer]() *Set[T] {
	s, _ := NewWithCapacityAndLoadFactor[T](DefaultInitialCapacity, DefaultLoadFactor)
	return s
}

// NewWithCapacity returns an empty set pre-sized to hold initialCapacity
// elements, with the default load factor.
func NewWithCapacity[T constraints.Integer](initialCapacity int) (*Set[T], error) {
	return NewWithCapacityAndLoadFactor[T](initialCapacity, DefaultLoadFactor)
}

// NewWithCapacityAndLoadFactor returns an empty set. The capacity is rounded
// up to the next power of two, minimum 1. The load factor must be within
// [MinLoadFactor, MaxLoadFactor].
func NewWithCapacityAndLoadFactor[T constraints.Integer](initialCapacity int, loadFactor float64) (*Set[T], error) {
	if initialCapacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if math.IsNaN(loadFactor) || loadFactor < MinLoadFactor || loadFactor > MaxLoadFactor {
		return nil, ErrInvalidLoadFactor
	}
	capacity := nextPowerOfTwo(initialCapacity)
	return &Set[T]{
		slots:           make([]T, capacity),
		loadFactor:      loadFactor,
		resizeThreshold: int(float64(capacity) * loadFactor),
		hash:            DefaultHasher[T],
	}, nil
}

// NewFromSlice returns a set holding the distinct values of vs, pre-sized to
// len(vs).
func NewFromSlice[T constraints.Integer](vs []T) *Set[T] {
	s, _ := NewWithCapacity[T](len(vs))
	s.AddAll(vs...)
	return s
}

// SetHasher replaces the hash function. It may only be called on an empty
// set, since live elements were placed by the previous hasher.
func (s *Set[T]) SetHasher(h Hasher[T]) error {
	if h == nil {
		return ErrNilArgument
	}
	if s.Size() != 0 {
		return ErrNotEmpty
	}
	s.hash = h
	return nil
}

// Size returns the number of elements in the set.
func (s *Set[T]) Size() int {
	if s.containsZero {
		return s.size + 1
	}
	return s.size
}

// IsEmpty reports whether the set holds no elements.
func (s *Set[T]) IsEmpty() bool {
	return s.Size() == 0
}

// Capacity returns the current slot array length.
func (s *Set[T]) Capacity() int {
	return len(s.slots)
}

// LoadFactor returns the resize trigger ratio.
func (s *Set[T]) LoadFactor() float64 {
	return s.loadFactor
}

// Add inserts v and reports whether the set changed.
func (s *Set[T]) Add(v T) bool {
	var zero T
	if v == zero {
		if s.containsZero {
			return false
		}
		s.containsZero = true
		s.modCount++
		return true
	}

	mask := len(s.slots) - 1
	i := int(s.hash(v) & uint64(mask))
	for s.slots[i] != zero {
		if s.slots[i] == v {
			return false
		}
		i = (i + 1) & mask
	}

	s.slots[i] = v
	s.size++
	s.modCount++
	// Grow after the write so the new element rehashes with the rest. At low
	// load factors and tiny capacities one doubling may not lift the
	// threshold above the size, hence the loop.
	for s.size > s.resizeThreshold {
		s.rehash(len(s.slots) * 2)
	}
	return true
}

// Remove deletes v and reports whether the set changed.
func (s *Set[T]) Remove(v T) bool {
	var zero T
	if v == zero {
		if !s.containsZero {
			return false
		}
		s.containsZero = false
		s.modCount++
		return true
	}

	mask := len(s.slots) - 1
	i := int(s.hash(v) & uint64(mask))
	for s.slots[i] != zero {
		if s.slots[i] == v {
			s.slots[i] = zero
			s.size--
			s.modCount++
			s.compactChain(i)
			return true
		}
		i = (i + 1) & mask
	}
	return false
}

// compactChain restores the probe invariant after the slot at deleteIndex
// was cleared: every element must stay reachable by forward probing from its
// home index without crossing an empty slot. Scanning forward from the gap,
// an element whose home lies in the wrapped interval (deleteIndex, index]
// does not probe across the gap and stays put; any other element does, so it
// shifts back into the gap and the scan continues from its old slot. The
// scan ends at the first empty slot.
func (s *Set[T]) compactChain(deleteIndex int) {
	var zero T
	mask := len(s.slots) - 1
	index := deleteIndex
	for {
		index = (index + 1) & mask
		if s.slots[index] == zero {
			return
		}
		home := int(s.hash(s.slots[index]) & uint64(mask))
		if (index < home && (home <= deleteIndex || deleteIndex <= index)) ||
			(home <= deleteIndex && deleteIndex <= index) {
			s.slots[deleteIndex] = s.slots[index]
			s.slots[index] = zero
			deleteIndex = index
		}
	}
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	var zero T
	if v == zero {
		return s.containsZero
	}
	mask := len(s.slots) - 1
	i := int(s.hash(v) & uint64(mask))
	for s.slots[i] != zero {
		if s.slots[i] == v {
			return true
		}
		i = (i + 1) & mask
	}
	return false
}

// Clear removes every element. The slot array is kept at its current
// capacity.
func (s *Set[T]) Clear() {
	if s.Size() == 0 {
		return
	}
	var zero T
	for i := range s.slots {
		s.slots[i] = zero
	}
	s.size = 0
	s.containsZero = false
	s.modCount++
}

// rehash reallocates the slot array at newCapacity and reinserts every live
// element. Membership of the zero element lives outside the table and is
// untouched.
func (s *Set[T]) rehash(newCapacity int) {
	var zero T
	old := s.slots
	s.slots = make([]T, newCapacity)
	s.resizeThreshold = int(float64(newCapacity) * s.loadFactor)
	s.modCount++

	mask := newCapacity - 1
	for _, v := range old {
		if v == zero {
			continue
		}
		i := int(s.hash(v) & uint64(mask))
		for s.slots[i] != zero {
			i = (i + 1) & mask
		}
		s.slots[i] = v
	}
}

// Compact rehashes down to the smallest power-of-two capacity that keeps the
// current size within the load factor.
func (s *Set[T]) Compact() {
	ideal := nextPowerOfTwo(int(math.Ceil(float64(s.size) / s.loadFactor)))
	s.rehash(ideal)
}

// AddAll inserts every value and reports whether the set changed.
func (s *Set[T]) AddAll(vs ...T) bool {
	changed := false
	for _, v := range vs {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

// RemoveAll deletes every value and reports whether the set changed.
func (s *Set[T]) RemoveAll(vs ...T) bool {
	changed := false
	for _, v := range vs {
		if s.Remove(v) {
			changed = true
		}
	}
	return changed
}

// ContainsAll reports whether every value is in the set.
func (s *Set[T]) ContainsAll(vs ...T) bool {
	for _, v := range vs {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// RetainAll removes every element not present in vs and reports whether the
// set changed. It walks a copy of the live elements since removal compacts
// the table in place.
func (s *Set[T]) RetainAll(vs []T) bool {
	changed := false
	for _, v := range s.ToSlice() {
		found := false
		for _, w := range vs {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			s.Remove(v)
			changed = true
		}
	}
	return changed
}

// AddSet inserts every element of other and reports whether the set changed.
// A nil other is treated as empty.
func (s *Set[T]) AddSet(other *Set[T]) bool {
	if other == nil || other == s {
		return false
	}
	return s.AddAll(other.ToSlice()...)
}

// RemoveSet deletes every element of other and reports whether the set
// changed. A nil other is treated as empty.
func (s *Set[T]) RemoveSet(other *Set[T]) bool {
	if other == nil {
		return false
	}
	return s.RemoveAll(other.ToSlice()...)
}

// RetainSet removes every element not present in other and reports whether
// the set changed. A nil other clears the set.
func (s *Set[T]) RetainSet(other *Set[T]) bool {
	if other == s {
		return false
	}
	changed := false
	for _, v := range s.ToSlice() {
		if other == nil || !other.Contains(v) {
			s.Remove(v)
			changed = true
		}
	}
	return changed
}

// ContainsSet reports whether every element of other is in the set. A nil
// other is treated as empty.
func (s *Set[T]) ContainsSet(other *Set[T]) bool {
	if other == nil || other == s {
		return true
	}
	var zero T
	if other.containsZero && !s.containsZero {
		return false
	}
	for _, v := range other.slots {
		if v != zero && !s.Contains(v) {
			return false
		}
	}
	return true
}

// ToSlice returns the elements in a fresh slice, current physical order, the
// zero element last if present.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, 0, s.Size())
	var zero T
	for _, v := range s.slots {
		if v != zero {
			out = append(out, v)
		}
	}
	if s.containsZero {
		out = append(out, zero)
	}
	return out
}

// ToArray fills dst with the elements if it is large enough, allocating a
// right-sized slice otherwise. When dst is strictly larger than the set, the
// slot just past the last element is zeroed so callers can find the end.
func (s *Set[T]) ToArray(dst []T) []T {
	n := s.Size()
	if len(dst) < n {
		dst = make([]T, n)
	}
	var zero T
	i := 0
	for _, v := range s.slots {
		if v != zero {
			dst[i] = v
			i++
		}
	}
	if s.containsZero {
		dst[i] = zero
		i++
	}
	if len(dst) > n {
		dst[n] = zero
	}
	return dst
}

// Equal reports whether other holds exactly the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if other == nil {
		return false
	}
	if other == s {
		return true
	}
	if s.Size() != other.Size() || s.containsZero != other.containsZero {
		return false
	}
	var zero T
	for _, v := range s.slots {
		if v != zero && !other.Contains(v) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of the elements, the sum of each
// element's hash. Equal sets sharing a hasher report equal hashes.
func (s *Set[T]) Hash() uint64 {
	var h uint64
	var zero T
	for _, v := range s.slots {
		if v != zero {
			h += s.hash(v)
		}
	}
	if s.containsZero {
		h += s.hash(zero)
	}
	return h
}

// Clone returns an independent copy. Elements are primitives, so copying the
// slot array is a deep copy.
func (s *Set[T]) Clone() *Set[T] {
	c := *s
	c.slots = make([]T, len(s.slots))
	copy(c.slots, s.slots)
	return &c
}

// String renders the elements in current physical order, the zero element
// last if present.
func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	var zero T
	first := true
	for _, v := range s.slots {
		if v == zero {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
		first = false
	}
	if s.containsZero {
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", zero)
	}
	b.WriteByte(']')
	return b.String()
}
