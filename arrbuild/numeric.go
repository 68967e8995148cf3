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

// Package arrbuild holds the constructors (C7) that pack user ranges
// plus a validity mask into an *arrdata.ArrayData and wrap it with the
// matching typed array from package array. Every constructor follows
// spec.md §4.7's six-step pattern: check lengths agree, pack validity
// and count nulls, allocate value buffers, write values, assemble
// children/offsets, assemble the ArrayData record.
package arrbuild

import (
	"fmt"

	"github.com/ctildasneller/colvec/array"
	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
)

// Numeric builds a primitive NumericArray[T] from values and a
// validity mask of equal length. Invalid slots still store values[i]
// (written in every slot, per spec.md §4.7 step 4); only the validity
// bit and OptionalValue's None result distinguish them.
func Numeric[T bitpack.Numeric](values []T, valid []bool) (*array.NumericArray[T], error) {
	if len(values) != len(valid) {
		return nil, fmt.Errorf("arrbuild: Numeric: %w: %d values but %d validity flags", array.ErrLengthMismatch, len(values), len(valid))
	}
	validity, nullCount := arrdata.PackValidity(valid)
	payload, err := bitpack.PackPOD(values)
	if err != nil {
		return nil, fmt.Errorf("arrbuild: Numeric: %w", err)
	}
	data := &arrdata.ArrayData{
		Format:    bitpack.FormatOf[T](),
		Length:    len(values),
		Offset:    0,
		NullCount: nullCount,
		Buffers:   []*bitpack.Buffer{validity, payload},
	}
	return array.NewNumericArray[T](data)
}
