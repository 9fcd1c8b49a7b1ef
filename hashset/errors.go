package hashset

import "errors"

var (
	// ErrInvalidLoadFactor is returned by constructors when the load factor
	// is NaN or outside [MinLoadFactor, MaxLoadFactor].
	ErrInvalidLoadFactor = errors.New("hashset: load factor out of range")

	// ErrNegativeCapacity is returned by constructors given a negative
	// initial capacity.
	ErrNegativeCapacity = errors.New("hashset: negative initial capacity")

	// ErrIteratorExhausted is returned by Iterator.Next once every element
	// has been yielded.
	ErrIteratorExhausted = errors.New("hashset: iterator exhausted")

	// ErrIteratorState is returned by Iterator.Remove when it is called
	// before Next, or twice without an intervening Next.
	ErrIteratorState = errors.New("hashset: iterator remove without next")

	// ErrConcurrentModification is returned by iterator operations after the
	// set was mutated by anything other than that iterator's own Remove.
	ErrConcurrentModification = errors.New("hashset: set modified during iteration")

	// ErrNilArgument is returned when a required argument is nil.
	ErrNilArgument = errors.New("hashset: nil argument")

	// ErrNotEmpty is returned by SetHasher once elements have been inserted.
	ErrNotEmpty = errors.New("hashset: set is not empty")
)
