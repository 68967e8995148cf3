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

	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
	"github.com/ctildasneller/colvec/names"
	"github.com/ctildasneller/colvec/value"
)

// StructArray is the '+s' nested layout: buffers = [validity],
// children = one array per field in order, field names carried
// alongside the ArrayData in a *names.Table (ArrayData itself has no
// room for names -- see package names's doc comment).
type StructArray struct {
	data   *arrdata.ArrayData
	fields []Array
	names  *names.Table
}

// NewStructArray wraps data as a StructArray. fieldNames must have the
// same length as data.Children, in the same order. Every child must
// have Size() >= data.Size(), per spec.md §3's "each child has length
// >= this.length".
func NewStructArray(data *arrdata.ArrayData, fieldNames []string) (*StructArray, error) {
	if data.Format != bitpack.FormatStruct {
		return nil, fmt.Errorf("array: struct array: data has format %q, want %q", data.Format, bitpack.FormatStruct)
	}
	if len(data.Buffers) != 1 {
		return nil, fmt.Errorf("%w: struct array needs [validity], got %d buffers", ErrLayoutInvariantBroken, len(data.Buffers))
	}
	if len(fieldNames) != len(data.Children) {
		return nil, fmt.Errorf("%w: %d field names for %d children", ErrLengthMismatch, len(fieldNames), len(data.Children))
	}
	fields := make([]Array, len(data.Children))
	for i, child := range data.Children {
		fa, err := Wrap(child)
		if err != nil {
			return nil, fmt.Errorf("array: struct field %q: %w", fieldNames[i], err)
		}
		if fa.Size() < data.Size() {
			return nil, fmt.Errorf("%w: field %q has length %d, need >= %d", ErrLayoutInvariantBroken, fieldNames[i], fa.Size(), data.Size())
		}
		fields[i] = fa
	}
	return &StructArray{data: data, fields: fields, names: names.New(fieldNames)}, nil
}

func (a *StructArray) Data() *arrdata.ArrayData { return a.data }
func (a *StructArray) Format() bitpack.Format     { return a.data.Format }
func (a *StructArray) Size() int                  { return a.data.Size() }
func (a *StructArray) validity() *bitpack.Buffer   { return a.data.Buffers[0] }

func (a *StructArray) IsValid(i int) (bool, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return false, err
	}
	return validityBit(a.validity(), a.data.Offset+i), nil
}

// FieldNames returns the struct's field names, in declaration order.
func (a *StructArray) FieldNames() []string { return a.names.Names() }

// FieldValues returns the typed child array for a field.
func (a *StructArray) FieldValues(i int) (Array, error) {
	if i < 0 || i >= len(a.fields) {
		return nil, fmt.Errorf("%w: field index %d, have %d fields", ErrOutOfBounds, i, len(a.fields))
	}
	return a.fields[i], nil
}

// FieldCount implements value.StructSource.
func (a *StructArray) FieldCount() int { return len(a.fields) }

// FieldName implements value.StructSource.
func (a *StructArray) FieldName(i int) (string, error) { return a.names.Name(i) }

// FieldValue implements value.StructSource: the value of field i at
// visible row.
func (a *StructArray) FieldValue(row, field int) (value.Value, error) {
	if field < 0 || field >= len(a.fields) {
		return value.None, fmt.Errorf("%w: field index %d, have %d fields", ErrOutOfBounds, field, len(a.fields))
	}
	if err := checkBounds(row, a.Size()); err != nil {
		return value.None, err
	}
	return a.fields[field].OptionalValue(a.data.Offset + row)
}

// RawValue returns the StructValue for visible row i, regardless of
// validity.
func (a *StructArray) RawValue(i int) (value.StructValue, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return value.StructValue{}, err
	}
	return value.NewStructValue(a, i), nil
}

func (a *StructArray) OptionalValue(i int) (value.Value, error) {
	valid, err := a.IsValid(i)
	if err != nil {
		return value.None, err
	}
	if !valid {
		return value.None, nil
	}
	sv, err := a.RawValue(i)
	if err != nil {
		return value.None, err
	}
	return value.Struct(sv), nil
}

func (a *StructArray) Values() Sequence {
	return Sequence{size: a.Size(), at: func(i int) (value.Value, error) {
		sv, err := a.RawValue(i)
		if err != nil {
			return value.None, err
		}
		return value.Struct(sv), nil
	}}
}

func (a *StructArray) OptionalValues() Sequence {
	return Sequence{size: a.Size(), at: a.OptionalValue}
}

// ElementValue implements value.ListSource so a StructArray can serve
// as the flat child of a list-of-struct array.
func (a *StructArray) ElementValue(i int) (value.Value, error) {
	return a.OptionalValue(i)
}
