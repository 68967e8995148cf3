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

type intSize int

func (s intSize) Size() int { return int(s) }

// List builds a 32-bit-offset ListArray (format '+l') over an
// already-built flat child array, from a range of per-row element
// counts (sizes) and a validity mask of equal length. Per spec.md
// §4.7 step 5, offsets are written over sizes the same way String
// writes them over byte lengths.
func List(child array.Array, sizes []int, valid []bool) (*array.ListArray, error) {
	data, err := buildListData(child, sizes, valid, bitpack.FormatList, false)
	if err != nil {
		return nil, fmt.Errorf("arrbuild: List: %w", err)
	}
	return array.NewListArray(data)
}

// BigList is the 64-bit-offset counterpart of List (format '+L').
func BigList(child array.Array, sizes []int, valid []bool) (*array.BigListArray, error) {
	data, err := buildListData(child, sizes, valid, bitpack.FormatListBig, true)
	if err != nil {
		return nil, fmt.Errorf("arrbuild: BigList: %w", err)
	}
	return array.NewBigListArray(data)
}

func buildListData(child array.Array, sizes []int, valid []bool, format bitpack.Format, big bool) (*arrdata.ArrayData, error) {
	if len(sizes) != len(valid) {
		return nil, fmt.Errorf("%w: %d sizes but %d validity flags", array.ErrLengthMismatch, len(sizes), len(valid))
	}
	n := len(sizes)
	validity, nullCount := arrdata.PackValidity(valid)
	sized := make([]intSize, n)
	for i, s := range sizes {
		sized[i] = intSize(s)
	}

	var offsetsBuf *bitpack.Buffer
	var total int
	if big {
		offsets := make([]int64, n+1)
		if err := arrdata.FillOffsets64(sized, valid, offsets); err != nil {
			return nil, err
		}
		total = int(offsets[n])
		packed, err := bitpack.PackPOD(offsets)
		if err != nil {
			return nil, err
		}
		offsetsBuf = packed
	} else {
		offsets := make([]int32, n+1)
		if err := arrdata.FillOffsets(sized, valid, offsets); err != nil {
			return nil, err
		}
		total = int(offsets[n])
		packed, err := bitpack.PackPOD(offsets)
		if err != nil {
			return nil, err
		}
		offsetsBuf = packed
	}
	if total > child.Size() {
		return nil, fmt.Errorf("sizes sum to %d rows but child array has only %d", total, child.Size())
	}

	return &arrdata.ArrayData{
		Format:    format,
		Length:    n,
		Offset:    0,
		NullCount: nullCount,
		Buffers:   []*bitpack.Buffer{validity, offsetsBuf},
		Children:  []*arrdata.ArrayData{child.Data()},
	}, nil
}
