package hashset

import "golang.org/x/exp/constraints"

// Iterator is a fail-fast cursor over a Set. It walks the slot array in
// reverse physical order, starting just before the first empty slot found
// scanning forward from index 0. Removal through the iterator shifts chained
// elements backward (toward lower indices), so a reverse walk from that
// start point never skips or repeats an element. The zero element, if
// present, is yielded last.
//
// Any mutation of the set other than this iterator's own Remove invalidates
// the cursor; the next call returns ErrConcurrentModification.
type Iterator[T constraints.Integer] struct {
	set         *Set[T]
	modSnapshot int
	remaining   int
	position    int // counts down; current slot is position & (capacity-1)
	stop        int
	posValid    bool
	onZero      bool
}

// Iterator returns a cursor over the current elements.
func (s *Set[T]) Iterator() *Iterator[T] {
	var zero T
	n := len(s.slots)
	i := n
	if s.slots[n-1] != zero {
		for i = 0; i < n; i++ {
			if s.slots[i] == zero {
				break
			}
		}
	}
	return &Iterator[T]{
		set:         s,
		modSnapshot: s.modCount,
		remaining:   s.Size(),
		position:    i + n,
		stop:        i,
	}
}

// HasNext reports whether Next has elements left to yield.
func (it *Iterator[T]) HasNext() bool {
	return it.remaining > 0
}

// Next yields the next element. It returns ErrIteratorExhausted past the end
// and ErrConcurrentModification if the set was mutated behind the cursor.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if it.modSnapshot != it.set.modCount {
		return zero, ErrConcurrentModification
	}
	if it.remaining == 0 {
		return zero, ErrIteratorExhausted
	}

	if it.remaining == 1 && it.set.containsZero {
		it.remaining = 0
		it.posValid = true
		it.onZero = true
		return zero, nil
	}

	mask := len(it.set.slots) - 1
	for p := it.position - 1; p >= it.stop; p-- {
		idx := p & mask
		if it.set.slots[idx] != zero {
			it.position = p
			it.posValid = true
			it.onZero = false
			it.remaining--
			return it.set.slots[idx], nil
		}
	}
	return zero, ErrIteratorExhausted
}

// Remove deletes the element last yielded by Next, repairing the probe chain
// in place. The iterator stays valid; its modification snapshot is refreshed.
func (it *Iterator[T]) Remove() error {
	if it.modSnapshot != it.set.modCount {
		return ErrConcurrentModification
	}
	if !it.posValid {
		return ErrIteratorState
	}

	s := it.set
	if it.onZero {
		s.containsZero = false
	} else {
		var zero T
		idx := it.position & (len(s.slots) - 1)
		s.slots[idx] = zero
		s.size--
		s.compactChain(idx)
	}
	s.modCount++
	it.modSnapshot = s.modCount
	it.posValid = false
	return nil
}
