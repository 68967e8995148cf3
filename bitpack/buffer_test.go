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

package bitpack

import (
	"testing"
)

func TestPackPOD(t *testing.T) {
	values := []int32{1, 2, 3, 4, 5}
	buf, err := PackPOD(values)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 4*len(values) {
		t.Fatalf("size = %d, want %d", buf.Size(), 4*len(values))
	}
	if !buf.Owning() {
		t.Fatal("PackPOD buffer should own its allocation")
	}
}

func TestPackPODBoolIsByteNotBitPacked(t *testing.T) {
	buf, err := PackPOD([]bool{true, false, true})
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 3 {
		t.Fatalf("size = %d, want 3 (byte-packed, not bit-packed)", buf.Size())
	}
	want := []byte{1, 0, 1}
	for i, w := range want {
		if buf.Data()[i] != w {
			t.Errorf("byte %d = %d, want %d", i, buf.Data()[i], w)
		}
	}
}

func TestPackBitmap(t *testing.T) {
	mask := []bool{true, true, true, false, true, false, false, false, true}
	buf := PackBitmap(mask)
	if buf.Size() != 2 {
		t.Fatalf("size = %d, want 2", buf.Size())
	}
	for i, want := range mask {
		got := buf.Data()[i>>3]&(1<<uint(i&7)) != 0
		if got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestAdoptNonOwning(t *testing.T) {
	raw := []byte{1, 2, 3}
	buf := Adopt(raw)
	if buf.Owning() {
		t.Fatal("Adopt should not own")
	}
	if buf.Size() != 3 {
		t.Fatalf("size = %d, want 3", buf.Size())
	}
}

func TestNewLargeBufferReportsExactSize(t *testing.T) {
	size := largePageThreshold + 17
	buf := New(size)
	if buf.Size() != size {
		t.Fatalf("Size() = %d, want %d (page-rounding must not change reported size)", buf.Size(), size)
	}
	if len(buf.Data()) != size {
		t.Fatalf("len(Data()) = %d, want %d", len(buf.Data()), size)
	}
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		got  Format
		want Format
	}{
		{FormatOf[bool](), FormatBool},
		{FormatOf[int8](), FormatInt8},
		{FormatOf[uint8](), FormatUint8},
		{FormatOf[int16](), FormatInt16},
		{FormatOf[uint16](), FormatUint16},
		{FormatOf[int32](), FormatInt32},
		{FormatOf[uint32](), FormatUint32},
		{FormatOf[int64](), FormatInt64},
		{FormatOf[uint64](), FormatUint64},
		{FormatOf[float32](), FormatFloat32},
		{FormatOf[float64](), FormatFloat64},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
