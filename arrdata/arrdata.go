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

// Package arrdata defines ArrayData, the layout-neutral record that every
// typed array in package array wraps, plus the validity-packing and
// offset-filling helpers shared by all array constructors.
package arrdata

import (
	"fmt"

	"github.com/ctildasneller/colvec/bitpack"
)

// ArrayData is a layout-neutral record of a column's format, logical
// length and offset, null count, backing buffers, child columns, and
// optional dictionary. It is built once by a constructor in package
// arrbuild and is treated as immutable content thereafter: existing
// holders of an *ArrayData keep seeing the record they were handed even
// if a caller later reassigns a different *ArrayData to the same
// variable.
type ArrayData struct {
	Format     bitpack.Format
	Length     int
	Offset     int
	NullCount  int
	Buffers    []*bitpack.Buffer
	Children   []*ArrayData
	Dictionary *ArrayData
}

// Size returns the visible element count, Length - Offset.
func (d *ArrayData) Size() int {
	return d.Length - d.Offset
}

// SetLength, SetOffset, SetNullCount, SetFormat, AddBuffer and AddChild
// are mutators used only while a constructor in arrbuild is assembling a
// fresh record; nothing outside arrbuild should call them on a record
// that has already been wrapped by a typed array and published.

func (d *ArrayData) SetLength(n int)            { d.Length = n }
func (d *ArrayData) SetOffset(n int)             { d.Offset = n }
func (d *ArrayData) SetNullCount(n int)          { d.NullCount = n }
func (d *ArrayData) SetFormat(f bitpack.Format)  { d.Format = f }
func (d *ArrayData) AddBuffer(b *bitpack.Buffer) { d.Buffers = append(d.Buffers, b) }
func (d *ArrayData) AddChild(c *ArrayData)       { d.Children = append(d.Children, c) }

// PackValidity LSB-first packs valid into a validity buffer and returns
// it along with the count of false entries in [0, length). This is the
// single consolidated validity-packing routine referenced by spec.md
// §9 ("Consolidate to one routine that returns (buffer, null_count) and
// always LSB-first"); every arrbuild constructor uses this instead of
// calling bitpack.PackBitmap directly so the null count is computed in
// the same pass.
func PackValidity(valid []bool) (*bitpack.Buffer, int) {
	buf := bitpack.PackBitmap(valid)
	nulls := 0
	for _, v := range valid {
		if !v {
			nulls++
		}
	}
	return buf, nulls
}

// Sized is the constraint FillOffsets and FillOffsets64 place on the
// per-element "value" range: each element must report its own size
// (byte length for strings, child-row count for lists).
type Sized interface {
	Size() int
}

// FillOffsets writes len(values)+1 monotone i32 offsets into out, where
// out[0] = 0 and out[i+1] = out[i] + values[i].Size() when valid[i] is
// true, or out[i+1] = out[i] otherwise. len(out) must be len(values)+1.
func FillOffsets[T Sized](values []T, valid []bool, out []int32) error {
	if len(values) != len(valid) {
		return fmt.Errorf("arrdata: FillOffsets: %d values but %d validity flags", len(values), len(valid))
	}
	if len(out) != len(values)+1 {
		return fmt.Errorf("arrdata: FillOffsets: out has %d slots, want %d", len(out), len(values)+1)
	}
	out[0] = 0
	for i, v := range values {
		step := int32(0)
		if valid[i] {
			step = int32(v.Size())
		}
		out[i+1] = out[i] + step
	}
	return nil
}

// FillOffsets64 is the i64-offset counterpart of FillOffsets, used by
// the big string and big list layouts.
func FillOffsets64[T Sized](values []T, valid []bool, out []int64) error {
	if len(values) != len(valid) {
		return fmt.Errorf("arrdata: FillOffsets64: %d values but %d validity flags", len(values), len(valid))
	}
	if len(out) != len(values)+1 {
		return fmt.Errorf("arrdata: FillOffsets64: out has %d slots, want %d", len(out), len(values)+1)
	}
	out[0] = 0
	for i, v := range values {
		step := int64(0)
		if valid[i] {
			step = int64(v.Size())
		}
		out[i+1] = out[i] + step
	}
	return nil
}
