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
	"encoding/binary"
	"fmt"

	"github.com/ctildasneller/colvec/array"
	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
)

type strSize string

func (s strSize) Size() int { return len(s) }

// String builds a 32-bit-offset StringArray (format 'u') from values
// and a validity mask of equal length. Bytes are written only where
// valid[i] is true, per spec.md §4.7 step 3; invalid slots contribute
// a zero-length span.
func String(values []string, valid []bool) (*array.StringArray, error) {
	data, err := buildStringData(values, valid, bitpack.FormatUtf8, false)
	if err != nil {
		return nil, fmt.Errorf("arrbuild: String: %w", err)
	}
	return array.NewStringArray(data)
}

// BigString is the 64-bit-offset counterpart of String (format 'U').
func BigString(values []string, valid []bool) (*array.BigStringArray, error) {
	data, err := buildStringData(values, valid, bitpack.FormatUtf8Big, true)
	if err != nil {
		return nil, fmt.Errorf("arrbuild: BigString: %w", err)
	}
	return array.NewBigStringArray(data)
}

func buildStringData(values []string, valid []bool, format bitpack.Format, big bool) (*arrdata.ArrayData, error) {
	if len(values) != len(valid) {
		return nil, fmt.Errorf("%w: %d values but %d validity flags", array.ErrLengthMismatch, len(values), len(valid))
	}
	n := len(values)
	validity, nullCount := arrdata.PackValidity(valid)
	sized := make([]strSize, n)
	for i, v := range values {
		sized[i] = strSize(v)
	}

	var offsetsBuf *bitpack.Buffer
	totalLen := 0
	if big {
		offsets := make([]int64, n+1)
		if err := arrdata.FillOffsets64(sized, valid, offsets); err != nil {
			return nil, err
		}
		totalLen = int(offsets[n])
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
		totalLen = int(offsets[n])
		packed, err := bitpack.PackPOD(offsets)
		if err != nil {
			return nil, err
		}
		offsetsBuf = packed
	}

	valueBytes := make([]byte, 0, totalLen)
	for i, v := range values {
		if valid[i] {
			valueBytes = append(valueBytes, v...)
		}
	}
	valuesBuf := bitpack.Own(valueBytes)

	return &arrdata.ArrayData{
		Format:    format,
		Length:    n,
		Offset:    0,
		NullCount: nullCount,
		Buffers:   []*bitpack.Buffer{validity, offsetsBuf, valuesBuf},
	}, nil
}
