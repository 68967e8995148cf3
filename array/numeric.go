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

package array

import (
	"fmt"
	"unsafe"

	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
	"github.com/ctildasneller/colvec/value"
)

// NumericArray wraps an ArrayData with the primitive layout
// [validity, values] and exposes O(1) element access. Per spec.md §9's
// "cached raw pointers" note, this module takes option (a): the values
// slice is re-derived from the ArrayData on every access via
// valuesSlice rather than cached as a raw pointer at construction
// time. On a garbage-collected runtime a cached []T header would be
// just as cheap to recompute as to store (no pointer arithmetic, no
// indirection through a C-style raw pointer), and re-deriving it
// leaves no cached pointer that could go stale.
type NumericArray[T bitpack.Numeric] struct {
	data *arrdata.ArrayData
}

// NewNumericArray wraps data as a NumericArray[T]. data.Format must
// match bitpack.FormatOf[T](); data.Buffers must be [validity, values].
func NewNumericArray[T bitpack.Numeric](data *arrdata.ArrayData) (*NumericArray[T], error) {
	want := bitpack.FormatOf[T]()
	if data.Format != want {
		var zero T
		return nil, fmt.Errorf("array: NumericArray[%T]: data has format %q, want %q", zero, data.Format, want)
	}
	if len(data.Buffers) != 2 {
		return nil, fmt.Errorf("%w: NumericArray needs [validity, values], got %d buffers", ErrLayoutInvariantBroken, len(data.Buffers))
	}
	return &NumericArray[T]{data: data}, nil
}

func (a *NumericArray[T]) Data() *arrdata.ArrayData { return a.data }
func (a *NumericArray[T]) Format() bitpack.Format    { return a.data.Format }
func (a *NumericArray[T]) Size() int                 { return a.data.Size() }

func (a *NumericArray[T]) validity() *bitpack.Buffer { return a.data.Buffers[0] }

func (a *NumericArray[T]) valuesSlice() []T {
	raw := a.data.Buffers[1].Data()
	if len(raw) == 0 {
		return nil
	}
	var zero T
	width := int(unsafe.Sizeof(zero))
	n := len(raw) / width
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)[:n:n]
}

// RawValue returns the element at visible index i regardless of
// validity. Per spec.md §4.4 this is undefined to inspect for invalid
// indices beyond "whatever bits are there" -- this implementation
// always returns the stored bits, never panics on a null slot.
func (a *NumericArray[T]) RawValue(i int) (T, error) {
	var zero T
	if err := checkBounds(i, a.Size()); err != nil {
		return zero, err
	}
	return a.valuesSlice()[a.data.Offset+i], nil
}

func (a *NumericArray[T]) IsValid(i int) (bool, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return false, err
	}
	return validityBit(a.validity(), a.data.Offset+i), nil
}

func (a *NumericArray[T]) toValue(x T) value.Value {
	switch v := any(x).(type) {
	case bool:
		return value.Bool(v)
	case int8:
		return value.Int8(v)
	case uint8:
		return value.Uint8(v)
	case int16:
		return value.Int16(v)
	case uint16:
		return value.Uint16(v)
	case int32:
		return value.Int32(v)
	case uint32:
		return value.Uint32(v)
	case int64:
		return value.Int64(v)
	case uint64:
		return value.Uint64(v)
	case float32:
		return value.Float32(v)
	case float64:
		return value.Float64(v)
	default:
		panic(fmt.Sprintf("array: unsupported numeric kind %T", x))
	}
}

func (a *NumericArray[T]) OptionalValue(i int) (value.Value, error) {
	valid, err := a.IsValid(i)
	if err != nil {
		return value.None, err
	}
	if !valid {
		return value.None, nil
	}
	raw, err := a.RawValue(i)
	if err != nil {
		return value.None, err
	}
	return a.toValue(raw), nil
}

func (a *NumericArray[T]) Values() Sequence {
	return Sequence{size: a.Size(), at: func(i int) (value.Value, error) {
		raw, err := a.RawValue(i)
		if err != nil {
			return value.None, err
		}
		return a.toValue(raw), nil
	}}
}

func (a *NumericArray[T]) OptionalValues() Sequence {
	return Sequence{size: a.Size(), at: a.OptionalValue}
}

// ElementValue implements value.ListSource so a NumericArray can serve
// as the flat child of a list array.
func (a *NumericArray[T]) ElementValue(i int) (value.Value, error) {
	return a.OptionalValue(i)
}
