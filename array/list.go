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
	"github.com/ctildasneller/colvec/value"
)

// ListChild is what a list array's flat child must be able to do:
// behave as a full Array (for Slice/Visit) and serve value.Value
// lookups by flat index (so ListValue can realize elements lazily).
type ListChild interface {
	Array
	value.ListSource
}

type listArrayImpl struct {
	data    *arrdata.ArrayData
	offsets offsetReader
	child   ListChild
	format  bitpack.Format
}

func newListArrayImpl(data *arrdata.ArrayData, format bitpack.Format, big bool) (*listArrayImpl, error) {
	if data.Format != format {
		return nil, fmt.Errorf("array: list array: data has format %q, want %q", data.Format, format)
	}
	if len(data.Buffers) != 2 {
		return nil, fmt.Errorf("%w: list array needs [validity, offsets], got %d buffers", ErrLayoutInvariantBroken, len(data.Buffers))
	}
	if len(data.Children) != 1 {
		return nil, fmt.Errorf("%w: list array needs exactly one child, got %d", ErrLayoutInvariantBroken, len(data.Children))
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
	child, err := Wrap(data.Children[0])
	if err != nil {
		return nil, fmt.Errorf("array: list array child: %w", err)
	}
	lc, ok := child.(ListChild)
	if !ok {
		return nil, fmt.Errorf("%w: list child of format %q cannot serve flat element lookups", ErrFormatUnsupported, child.Format())
	}
	if or.at(data.Length) > int64(lc.Size()) {
		return nil, fmt.Errorf("%w: offsets[length]=%d exceeds child length %d", ErrLayoutInvariantBroken, or.at(data.Length), lc.Size())
	}
	return &listArrayImpl{data: data, offsets: or, child: lc, format: format}, nil
}

func (a *listArrayImpl) Data() *arrdata.ArrayData { return a.data }
func (a *listArrayImpl) Format() bitpack.Format     { return a.format }
func (a *listArrayImpl) Size() int                  { return a.data.Size() }
func (a *listArrayImpl) validity() *bitpack.Buffer   { return a.data.Buffers[0] }

func (a *listArrayImpl) isValid(i int) (bool, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return false, err
	}
	return validityBit(a.validity(), a.data.Offset+i), nil
}

// listSize returns offsets[i+1]-offsets[i], the row's element count.
func (a *listArrayImpl) listSize(i int) (int, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return 0, err
	}
	storage := a.data.Offset + i
	return int(a.offsets.at(storage+1) - a.offsets.at(storage)), nil
}

func (a *listArrayImpl) window(i int) (int, int, error) {
	if err := checkBounds(i, a.Size()); err != nil {
		return 0, 0, err
	}
	storage := a.data.Offset + i
	return int(a.offsets.at(storage)), int(a.offsets.at(storage + 1)), nil
}

func (a *listArrayImpl) rawValue(i int) (value.ListValue, error) {
	lo, hi, err := a.window(i)
	if err != nil {
		return value.ListValue{}, err
	}
	return value.NewListValue(a.child, lo, hi), nil
}

func (a *listArrayImpl) optionalValue(i int) (value.Value, error) {
	valid, err := a.isValid(i)
	if err != nil {
		return value.None, err
	}
	if !valid {
		return value.None, nil
	}
	lv, err := a.rawValue(i)
	if err != nil {
		return value.None, err
	}
	return value.List(lv), nil
}

func (a *listArrayImpl) values() Sequence {
	return Sequence{size: a.Size(), at: func(i int) (value.Value, error) {
		lv, err := a.rawValue(i)
		if err != nil {
			return value.None, err
		}
		return value.List(lv), nil
	}}
}

func (a *listArrayImpl) optionalValues() Sequence {
	return Sequence{size: a.Size(), at: a.optionalValue}
}

// ListArray is the 32-bit-offset list array (format '+l').
type ListArray struct{ impl *listArrayImpl }

// NewListArray wraps data as a ListArray. data.Children[0] is the flat
// values array shared (not copied) by every row.
func NewListArray(data *arrdata.ArrayData) (*ListArray, error) {
	impl, err := newListArrayImpl(data, bitpack.FormatList, false)
	if err != nil {
		return nil, err
	}
	return &ListArray{impl: impl}, nil
}

func (a *ListArray) Data() *arrdata.ArrayData     { return a.impl.Data() }
func (a *ListArray) Format() bitpack.Format         { return a.impl.Format() }
func (a *ListArray) Size() int                      { return a.impl.Size() }
func (a *ListArray) IsValid(i int) (bool, error)    { return a.impl.isValid(i) }
func (a *ListArray) ListSize(i int) (int, error)    { return a.impl.listSize(i) }
func (a *ListArray) RawValue(i int) (value.ListValue, error) { return a.impl.rawValue(i) }
func (a *ListArray) OptionalValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }
func (a *ListArray) Values() Sequence               { return a.impl.values() }
func (a *ListArray) OptionalValues() Sequence       { return a.impl.optionalValues() }
func (a *ListArray) ElementValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }

// ChildValues returns the flat child array, type-erased.
func (a *ListArray) ChildValues() Array { return a.impl.child }

// BigListArray is the 64-bit-offset list array (format '+L').
type BigListArray struct{ impl *listArrayImpl }

// NewBigListArray wraps data as a BigListArray.
func NewBigListArray(data *arrdata.ArrayData) (*BigListArray, error) {
	impl, err := newListArrayImpl(data, bitpack.FormatListBig, true)
	if err != nil {
		return nil, err
	}
	return &BigListArray{impl: impl}, nil
}

func (a *BigListArray) Data() *arrdata.ArrayData     { return a.impl.Data() }
func (a *BigListArray) Format() bitpack.Format         { return a.impl.Format() }
func (a *BigListArray) Size() int                      { return a.impl.Size() }
func (a *BigListArray) IsValid(i int) (bool, error)    { return a.impl.isValid(i) }
func (a *BigListArray) ListSize(i int) (int, error)    { return a.impl.listSize(i) }
func (a *BigListArray) RawValue(i int) (value.ListValue, error) { return a.impl.rawValue(i) }
func (a *BigListArray) OptionalValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }
func (a *BigListArray) Values() Sequence               { return a.impl.values() }
func (a *BigListArray) OptionalValues() Sequence       { return a.impl.optionalValues() }
func (a *BigListArray) ElementValue(i int) (value.Value, error) { return a.impl.optionalValue(i) }

// ChildValues returns the flat child array, type-erased.
func (a *BigListArray) ChildValues() Array { return a.impl.child }
