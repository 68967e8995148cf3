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

package arrbuild

import (
	"fmt"

	"github.com/ctildasneller/colvec/array"
	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
)

// Field names one already-built child array as a struct field.
type Field struct {
	Name  string
	Value array.Array
}

// Struct builds a StructArray (format '+s') from a list of named
// fields and a row-level validity mask. Each field column carries its
// own per-element validity; a struct "row" is null only when the
// struct's own validity bit at that row is clear, which this
// constructor sets according to valid. The struct's length is that of
// its shortest field, and len(valid) must equal it.
func Struct(fields []Field, valid []bool) (*array.StructArray, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("arrbuild: Struct: need at least one field")
	}
	length := fields[0].Value.Size()
	for _, f := range fields {
		if f.Value.Size() < length {
			length = f.Value.Size()
		}
	}
	if len(valid) != length {
		return nil, fmt.Errorf("arrbuild: Struct: %w: %d validity flags but shortest field has length %d", array.ErrLengthMismatch, len(valid), length)
	}
	validity, nullCount := arrdata.PackValidity(valid)

	names := make([]string, len(fields))
	children := make([]*arrdata.ArrayData, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		children[i] = f.Value.Data()
	}

	data := &arrdata.ArrayData{
		Format:    bitpack.FormatStruct,
		Length:    length,
		Offset:    0,
		NullCount: nullCount,
		Buffers:   []*bitpack.Buffer{validity},
		Children:  children,
	}
	return array.NewStructArray(data, names)
}
