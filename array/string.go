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
	"encoding/binary"
	"fmt"

	"github.com/ctildasneller/colvec/arrdata"
	"github.com/ctildasneller/colvec/bitpack"
	"github.com/ctildasneller/colvec/value"
)

// offsetReader abstracts over 32-bit and 64-bit offsets buffers so
// StringArrayImpl can share one implementation for both widths,
// mirroring how the source parameterizes StringArrayImpl<BIG> on the
// offset width rather than duplicating the type.
type offsetReader interface {
	at(i int) int64
	n() int
}

type offsets32 []byte

func (o offsets32) at(i int) int64 { return int64(int32(binary.LittleEndian.Uint32(o[i*4:]))) }
func (o offsets32) n() int         { return len(o) / 4 }

type offsets64 []byte

func (o offsets64) at(i int) int64 { return int64(binary.LittleEndian.Uint64(o[i*8:])) }
func (o offsets64) n() int         { return len(o) / 8 }

// stringArrayImpl is the shared implementation behind StringArray and
// BigStringArray (format.go's 'u'/'U'), matching spec.md §4.4's
// StringArrayImpl<BIG>.
type stringArrayImpl struct {
	data    *arrdata.ArrayData
	offsets offsetReader
	format  bitpack.Format
}

func newStringArrayImpl(data *arrdata.ArrayData, format bitpack.Format, big bool) (*stringArrayImpl, error) {
	if data.Format != format {
		return nil, fmt.Errorf("array: string array: data has format %q, want %q", data.Format, format)
	}
	if len(data.Buffers) != 3 {
		return nil, fmt.Errorf("%w: string array needs [validity, offsets, values], got %d buffers", ErrLayoutInvariantBroken, len(data.Buffers))
	}
	var or offsetReader
	if big {
		or = offsets64(data.Buffers[1].Data())
	} else {
		or = offsets32(data.Buffers[1].Data())
	}
	// Length is Offset-relative only through Size(); a windowed array
	// produced by Slice carries the full backing offsets buffer with
	// Length equal to the window's absolute end, so "at least" rather
	// than "exactly" admits a suffix of unused trailing offsets.
	if or.n() < data.Length+1 {
		return nil, fmt.Errorf("%w: offsets buffer has %d entries, need at least %d", ErrLayoutInvariantBroken, or.n(), data.Length+1)
	}
	prev := int64(0)
	for i := 0; i < or.n(); i++ {
		cur := or.at(i)
		if cur < prev {
			return nil, fmt.Errorf("%w: offsets non-monotone at %d", ErrLayoutInvariantBroken, i)
		}
		prev = cur
	}
	values := data.Buffers[2].Data()
	if int64(len(values)) < or.at(data.Length) {
		return nil, fmt.Errorf("%w: values buffer shorter than offsets[length]", ErrLayoutInvariantBroken)
	}
	return &stringArrayImpl{data: data, offsets: or, format: format}, nil
}

func (a *stringArrayImpl) Data() *arrdata.ArrayData { return a.data }
func (a *stringArrayImpl) Format() bitpack.Format    { return a.format }
func (a *stringArrayImpl) Size() int                 { return a.data.Size() }
func (a *stringArrayImpl) validity() *bitpack.Buffer  { return a.data.Buffers[0] }

func (a *stringArrayImpl) rawValue(i int) ([]byte, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return nil, err
	}
	storage := a.data.Offset + i
	lo := a.offsets.at(storage)
	hi := a.offsets.at(storage + 1)
	values := a.data.Buffers[2].Data()
	return values[lo:hi], nil
}

func (a *stringArrayImpl) isValid(i int) (bool, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return false, err
	}
	return validityBit(a.validity(), a.data.Offset+i), nil
}

func (a *stringArrayImpl) optionalValue(i int) (value.Value, error) {
	valid, err := a.isValid(i)
	if err != nil {
		return value.None, err
	}
	if !valid {
		return value.None, nil
	}
	raw, err := a.rawValue(i)
	if err != nil {
		return value.None, err
	}
	return value.String(string(raw)), nil
}

func (a *stringArrayImpl) values() Sequence {
	return Sequence{size: a.Size(), at: func(i int) (value.Value, error) {
		raw, err := a.rawValue(i)
		if err != nil {
			return value.None, err
		}
		return value.String(string(raw)), nil
	}}
}

func (a *stringArrayImpl) optionalValues() Sequence {
	return Sequence{size: a.Size(), at: a.optionalValue}
}

// StringArray is the 32-bit-offset utf8 string array (format 'u').
type StringArray struct{ impl *stringArrayImpl }

// NewStringArray wraps data as a StringArray. data.Buffers must be
// [validity, offsets(i32), values].
func NewStringArray(data *arrdata.ArrayData) (*StringArray, error) {
	impl, err := newStringArrayImpl(data, bitpack.FormatUtf8, false)
	if err != nil {
		return nil, err
	}
	return &StringArray{impl: impl}, nil
}

func (a *StringArray) Data() *arrdata.ArrayData           { return a.impl.Data() }
func (a *StringArray) Format() bitpack.Format               { return a.impl.Format() }
func (a *StringArray) Size() int                            { return a.impl.Size() }
func (a *StringArray) IsValid(i int) (bool, error)           { return a.impl.isValid(i) }
func (a *StringArray) RawValue(i int) ([]byte, error)        { return a.impl.rawValue(i) }
func (a *StringArray) OptionalValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }
func (a *StringArray) Values() Sequence                      { return a.impl.values() }
func (a *StringArray) OptionalValues() Sequence              { return a.impl.optionalValues() }
func (a *StringArray) ElementValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }

// BigStringArray is the 64-bit-offset utf8 string array (format 'U').
type BigStringArray struct{ impl *stringArrayImpl }

// NewBigStringArray wraps data as a BigStringArray. data.Buffers must
// be [validity, offsets(i64), values].
func NewBigStringArray(data *arrdata.ArrayData) (*BigStringArray, error) {
	impl, err := newStringArrayImpl(data, bitpack.FormatUtf8Big, true)
	if err != nil {
		return nil, err
	}
	return &BigStringArray{impl: impl}, nil
}

func (a *BigStringArray) Data() *arrdata.ArrayData              { return a.impl.Data() }
func (a *BigStringArray) Format() bitpack.Format                  { return a.impl.Format() }
func (a *BigStringArray) Size() int                               { return a.impl.Size() }
func (a *BigStringArray) IsValid(i int) (bool, error)             { return a.impl.isValid(i) }
func (a *BigStringArray) RawValue(i int) ([]byte, error)          { return a.impl.rawValue(i) }
func (a *BigStringArray) OptionalValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }
func (a *BigStringArray) Values() Sequence                        { return a.impl.values() }
func (a *BigStringArray) OptionalValues() Sequence                { return a.impl.optionalValues() }
func (a *BigStringArray) ElementValue(i int) (value.Value, error)  { return a.impl.optionalValue(i) }
