package record

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"record-loader/utils"
)

// ErrIndexOutOfRange is wrapped by every IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

// Error formats the index error with the offending index and the list length.
func (e *IndexError) Error() string {
	return fmt.Sprintf("record: index %d out of range [0, %d)", e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// List is an ordered, index-addressable collection of records. It is not safe
// for concurrent use, and must not be mutated while it is being ranged over.
type List[T any] struct {
	items []*T
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// NewListFrom drains s into a new list and closes it.
func NewListFrom[T any](s *Stream[T]) (*List[T], error) {
	items, err := Drain(s)
	if err != nil {
		return nil, err
	}

	return &List[T]{items: items}, nil
}

// Len returns the number of records.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Add appends item.
func (l *List[T]) Add(item *T) {
	l.items = append(l.items, item)
}

// At returns the record at index i.
func (l *List[T]) At(i int) (*T, error) {
	if err := l.check(i); err != nil {
		return nil, err
	}

	return l.items[i], nil
}

// Set replaces the record at index i.
func (l *List[T]) Set(i int, item *T) error {
	if err := l.check(i); err != nil {
		return err
	}

	l.items[i] = item

	return nil
}

// RemoveAt removes the record at index i, shifting later records down.
func (l *List[T]) RemoveAt(i int) error {
	if err := l.check(i); err != nil {
		return err
	}

	l.items = slices.Delete(l.items, i, i+1)

	return nil
}

// IndexOf returns the index of the first record equal to item, or -1.
// Records are equal when they are the same record or hold equal values.
func (l *List[T]) IndexOf(item *T) int {
	return slices.IndexFunc(l.items, func(e *T) bool {
		return reflect.DeepEqual(e, item)
	})
}

// Remove removes the first record equal to item and reports whether one was found.
func (l *List[T]) Remove(item *T) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}

	l.items = slices.Delete(l.items, i, i+1)

	return true
}

// All returns an iterator over indexes and records. Each call starts again at
// index 0 and sees the list as it is at every step.
func (l *List[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < len(l.items); i++ {
			if !yield(i, l.items[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the records.
func (l *List[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, item := range l.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Slice returns a copy of the records.
func (l *List[T]) Slice() []*T {
	return slices.Clone(l.items)
}

func (l *List[T]) check(i int) error {
	if !utils.IsInRange(0, i, len(l.items)-1) {
		return &IndexError{Index: i, Len: len(l.items)}
	}

	return nil
}
