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
)

// Visitor is the format-dispatched visitor of spec.md §4.5: the
// central polymorphism point of the base-array surface. Adding a
// typed-array variant requires adding a method here and a case in
// both Visit and Wrap below, exactly as spec.md §4.5 requires.
type Visitor interface {
	VisitBool(*NumericArray[bool]) error
	VisitInt8(*NumericArray[int8]) error
	VisitUint8(*NumericArray[uint8]) error
	VisitInt16(*NumericArray[int16]) error
	VisitUint16(*NumericArray[uint16]) error
	VisitInt32(*NumericArray[int32]) error
	VisitUint32(*NumericArray[uint32]) error
	VisitInt64(*NumericArray[int64]) error
	VisitUint64(*NumericArray[uint64]) error
	VisitFloat32(*NumericArray[float32]) error
	VisitFloat64(*NumericArray[float64]) error
	VisitString(*StringArray) error
	VisitBigString(*BigStringArray) error
	VisitList(*ListArray) error
	VisitBigList(*BigListArray) error
	VisitStruct(*StructArray) error
}

// Visit dispatches on a's concrete type (which, for every typed array
// in this package, is fixed by its format tag), calling exactly the
// Visitor method whose argument type matches it (spec.md §8's S6
// scenario). Any other Array implementation returns
// ErrFormatUnsupported wrapped with its Go type.
func Visit(a Array, v Visitor) error {
	switch t := a.(type) {
	case *NumericArray[bool]:
		return v.VisitBool(t)
	case *NumericArray[int8]:
		return v.VisitInt8(t)
	case *NumericArray[uint8]:
		return v.VisitUint8(t)
	case *NumericArray[int16]:
		return v.VisitInt16(t)
	case *NumericArray[uint16]:
		return v.VisitUint16(t)
	case *NumericArray[int32]:
		return v.VisitInt32(t)
	case *NumericArray[uint32]:
		return v.VisitUint32(t)
	case *NumericArray[int64]:
		return v.VisitInt64(t)
	case *NumericArray[uint64]:
		return v.VisitUint64(t)
	case *NumericArray[float32]:
		return v.VisitFloat32(t)
	case *NumericArray[float64]:
		return v.VisitFloat64(t)
	case *StringArray:
		return v.VisitString(t)
	case *BigStringArray:
		return v.VisitBigString(t)
	case *ListArray:
		return v.VisitList(t)
	case *BigListArray:
		return v.VisitBigList(t)
	case *StructArray:
		return v.VisitStruct(t)
	default:
		return fmt.Errorf("%w: %T", ErrFormatUnsupported, a)
	}
}

// Wrap builds the concrete typed array matching data.Format, type
// erased to Array. This is the table-driven fan-out spec.md §4.5
// describes ("single char -> primitive of matching scalar kind; +l/+L
// -> small/big list; +s -> struct; u/U -> small/big string; anything
// else -> fail"), grounded on ion/datum.go's format-keyed decode table
// (datumTable, populated in an init()).
//
// Wrap cannot recover struct field names from data alone -- ArrayData
// has no room for them (see package names) -- so a struct encountered
// through Wrap (e.g. as the nested child of a list-of-struct column)
// is given synthetic names "field0", "field1", .... Callers that know
// the real field names should build the StructArray directly with
// NewStructArray instead of going through Wrap/Visit for that array.
func Wrap(data *arrdata.ArrayData) (Array, error) {
	switch data.Format {
	case bitpack.FormatBool:
		return NewNumericArray[bool](data)
	case bitpack.FormatInt8:
		return NewNumericArray[int8](data)
	case bitpack.FormatUint8:
		return NewNumericArray[uint8](data)
	case bitpack.FormatInt16:
		return NewNumericArray[int16](data)
	case bitpack.FormatUint16:
		return NewNumericArray[uint16](data)
	case bitpack.FormatInt32:
		return NewNumericArray[int32](data)
	case bitpack.FormatUint32:
		return NewNumericArray[uint32](data)
	case bitpack.FormatInt64:
		return NewNumericArray[int64](data)
	case bitpack.FormatUint64:
		return NewNumericArray[uint64](data)
	case bitpack.FormatFloat32:
		return NewNumericArray[float32](data)
	case bitpack.FormatFloat64:
		return NewNumericArray[float64](data)
	case bitpack.FormatUtf8:
		return NewStringArray(data)
	case bitpack.FormatUtf8Big:
		return NewBigStringArray(data)
	case bitpack.FormatList:
		return NewListArray(data)
	case bitpack.FormatListBig:
		return NewBigListArray(data)
	case bitpack.FormatStruct:
		return NewStructArray(data, syntheticNames(len(data.Children)))
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormatUnsupported, data.Format)
	}
}

func syntheticNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("field%d", i)
	}
	return out
}
