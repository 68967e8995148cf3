// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package array implements the typed-array family (C4) and the
// type-erased base-array surface (C5): primitive, variable-binary,
// list and struct arrays, each wrapping an *arrdata.ArrayData, plus a
// format-dispatched visitor, a null-aware optional-value accessor, and
// lazy restartable value sequences.
package array

import (
	"fmt"

	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
	"github.com/ctildasneller/colvec/value"
)

// Array is the type-erased surface every typed array in this package
// implements. It is the Go expression of spec.md §4.5: instead of a
// base class plus CRTP plus a hand-rolled visitor, this is a small
// interface whose default-style behavior (Values/OptionalValues) is
// synthesized from Size/IsValid/rawValue by the sequence helpers
// below, matching spec.md §9's "the default trait methods synthesize
// iteration from size + raw_value + is_valid" note.
type Array interface {
	// Data returns the underlying ArrayData record this array wraps.
	Data() *arrdata.ArrayData

	// Format returns the format tag of this array.
	Format() bitpack.Format

	// Size returns the visible element count (Length - Offset).
	Size() int

	// IsValid reports whether visible index i is non-null. It fails
	// with ErrFormatUnsupported for the reserved union formats,
	// which carry no validity buffer.
	IsValid(i int) (bool, error)

	// OptionalValue returns the element at i as a value.Value, or
	// value.None if i is null.
	OptionalValue(i int) (value.Value, error)

	// Values returns a lazy, restartable sequence of every element's
	// raw value.Value (the value found for null slots is whatever
	// bits are stored there, per spec.md §4.4's raw_value contract).
	Values() Sequence

	// OptionalValues returns a lazy, restartable sequence of every
	// element, each wrapped as an optional (value.None for nulls).
	OptionalValues() Sequence
}

// validityBit reads bit (offset+i) of a validity buffer, LSB-first:
// bit k of byte b represents element 8*b+k.
func validityBit(validity *bitpack.Buffer, storageIndex int) bool {
	data := validity.Data()
	byteIdx := storageIndex >> 3
	if byteIdx >= len(data) {
		return false
	}
	return data[byteIdx]&(1<<uint(storageIndex&7)) != 0
}

// checkBounds returns ErrOutOfBounds wrapped with context if i is not
// a valid visible index into an array of the given size.
func checkBounds(i, size int) error {
	if i < 0 || i >= size {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfBounds, i, size)
	}
	return nil
}

// Sequence is a lazy, restartable, finite sequence of value.Value,
// produced by indexing an array by position. Because each element is
// computed fresh from the backing array on every call, iterating twice
// yields identical results with no shared mutable cursor -- this is
// the restartability spec.md §8 requires.
type Sequence struct {
	size int
	at   func(i int) (value.Value, error)
}

// Len returns the number of elements in the sequence.
func (s Sequence) Len() int {
	return s.size
}

// At returns the i-th element.
func (s Sequence) At(i int) (value.Value, error) {
	if err := checkBounds(i, s.size); err != nil {
		return value.None, err
	}
	return s.at(i)
}

// Each calls fn for every element in order, stopping early (without
// error) if fn returns false.
func (s Sequence) Each(fn func(int, value.Value) bool) error {
	for i := 0; i < s.size; i++ {
		v, err := s.at(i)
		if err != nil {
			return err
		}
		if !fn(i, v) {
			return nil
		}
	}
	return nil
}

// Slice materializes the whole sequence into a slice. Provided for
// tests and small debug tooling; large columns should prefer Each.
func (s Sequence) Slice() ([]value.Value, error) {
	out := make([]value.Value, 0, s.size)
	err := s.Each(func(_ int, v value.Value) bool {
		out = append(out, v)
		return true
	})
	return out, err
}
