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
)

// Slice returns a new typed array over the same backing buffers as a,
// with its visible window narrowed to [offset, offset+length) of a's
// *current* visible range. No buffer is copied -- the returned array
// shares a's *arrdata.ArrayData buffers and children, only Offset and
// Length change -- matching the original source's slicing behavior
// (original_source/tests/test_bolt.cpp exercises array views sharing a
// parent's buffers) which spec.md's distillation otherwise leaves
// implicit.
//
// Slice does not know how to re-derive field names for a sliced
// StructArray's side table, so slicing a StructArray keeps its
// existing *names.Table unchanged (the names describe fields, not
// rows, so no translation is needed).
func Slice(a Array, offset, length int) (Array, error) {
	if offset < 0 || length < 0 || offset+length > a.Size() {
		return nil, fmt.Errorf("%w: slice [%d,%d) of size %d", ErrOutOfBounds, offset, offset+length, a.Size())
	}
	src := a.Data()
	sliced := &arrdata.ArrayData{
		Format:     src.Format,
		Length:     src.Offset + offset + length,
		Offset:     src.Offset + offset,
		Buffers:    src.Buffers,
		Children:   src.Children,
		Dictionary: src.Dictionary,
	}
	sliced.NullCount = countNulls(sliced)
	if sa, ok := a.(*StructArray); ok {
		return &StructArray{data: sliced, fields: sa.fields, names: sa.names}, nil
	}
	return Wrap(sliced)
}

// countNulls recomputes null_count for a re-windowed ArrayData by
// scanning the validity buffer over [offset, length). ArrayData
// defines null_count=0 as "known to have no nulls"; since slicing
// changes the visible window, a conservative rescan is required
// rather than reusing the parent's count.
func countNulls(d *arrdata.ArrayData) int {
	if len(d.Buffers) == 0 {
		return 0
	}
	validity := d.Buffers[0]
	nulls := 0
	for i := d.Offset; i < d.Length; i++ {
		byteIdx := i >> 3
		if byteIdx >= len(validity.Data()) || validity.Data()[byteIdx]&(1<<uint(i&7)) == 0 {
			nulls++
		}
	}
	return nulls
}
