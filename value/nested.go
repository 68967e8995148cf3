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

package value

import "fmt"

// ListSource is the narrow surface a flat child array must expose so a
// ListValue can realize its elements lazily. Package array's typed
// arrays implement this structurally; package value never imports
// package array, which is what lets array import value for its
// OptionalValue/Values return types without an import cycle.
type ListSource interface {
	// ElementValue returns the (possibly-None) value at flat index i
	// of the underlying child array.
	ElementValue(i int) (Value, error)
}

// ListValue is a lightweight handle onto one row of a list array: a
// reference to the flat child array plus a [begin, end) flat-index
// window. It is cheap to copy and realizes its elements lazily,
// exactly as the source's ListOfOptionalValues does over its backing
// child, except here the backing data is referenced rather than
// eagerly copied into a std::vector.
type ListValue struct {
	child      ListSource
	begin, end int
}

// NewListValue builds a ListValue over child's flat indices
// [begin, end).
func NewListValue(child ListSource, begin, end int) ListValue {
	return ListValue{child: child, begin: begin, end: end}
}

// Len returns the number of elements in this list row.
func (l ListValue) Len() int {
	return l.end - l.begin
}

// At returns the i-th element of this list row (None if that flat
// position is itself null).
func (l ListValue) At(i int) (Value, error) {
	if i < 0 || i >= l.Len() {
		return None, fmt.Errorf("value: list index %d out of range [0,%d)", i, l.Len())
	}
	return l.child.ElementValue(l.begin + i)
}

// Each calls fn for every element of this list row, in order,
// stopping early if fn returns false.
func (l ListValue) Each(fn func(Value) bool) error {
	for i := 0; i < l.Len(); i++ {
		v, err := l.child.ElementValue(l.begin + i)
		if err != nil {
			return err
		}
		if !fn(v) {
			return nil
		}
	}
	return nil
}

// StructSource is the narrow surface a struct array must expose so a
// StructValue can realize its fields lazily.
type StructSource interface {
	// FieldCount returns the number of fields.
	FieldCount() int
	// FieldName returns the name of field i.
	FieldName(i int) (string, error)
	// FieldValue returns the (possibly-None) value of field i at the
	// given visible row index.
	FieldValue(row, field int) (Value, error)
}

// StructValue is a lightweight handle onto one row of a struct array:
// a reference to the owning struct array plus a visible row index. It
// is the Go analogue of the source's MapOfOptionalValues, realized
// lazily against the owning array's children rather than eagerly
// copied into a std::map.
type StructValue struct {
	owner StructSource
	row   int
}

// NewStructValue builds a StructValue for row of owner.
func NewStructValue(owner StructSource, row int) StructValue {
	return StructValue{owner: owner, row: row}
}

// FieldCount returns the number of fields.
func (s StructValue) FieldCount() int {
	return s.owner.FieldCount()
}

// FieldName returns the name of field i.
func (s StructValue) FieldName(i int) (string, error) {
	return s.owner.FieldName(i)
}

// Field returns the value of the named field, or (None, false) if no
// field has that name.
func (s StructValue) Field(name string) (Value, bool, error) {
	for i := 0; i < s.owner.FieldCount(); i++ {
		n, err := s.owner.FieldName(i)
		if err != nil {
			return None, false, err
		}
		if n == name {
			v, err := s.owner.FieldValue(s.row, i)
			return v, true, err
		}
	}
	return None, false, nil
}

// At returns the value of field index i.
func (s StructValue) At(i int) (Value, error) {
	if i < 0 || i >= s.owner.FieldCount() {
		return None, fmt.Errorf("value: struct field index %d out of range [0,%d)", i, s.owner.FieldCount())
	}
	return s.owner.FieldValue(s.row, i)
}
