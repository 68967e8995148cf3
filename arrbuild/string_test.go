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
	"bytes"
	"testing"
)

// TestBigStringsWithEmptyAndNull is scenario S2 from spec.md §8.
func TestBigStringsWithEmptyAndNull(t *testing.T) {
	values := []string{"hello", "world", "bolt", "is", "", "awesome"}
	mask := []bool{true, true, true, true, false, true}

	arr, err := BigString(values, mask)
	if err != nil {
		t.Fatal(err)
	}
	if arr.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", arr.Size())
	}
	raw0, err := arr.RawValue(0)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw0) != "hello" {
		t.Errorf("RawValue(0) = %q, want %q", raw0, "hello")
	}
	raw4, err := arr.RawValue(4)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw4) != "" {
		t.Errorf("RawValue(4) = %q, want empty", raw4)
	}
	valid4, err := arr.IsValid(4)
	if err != nil {
		t.Fatal(err)
	}
	if valid4 {
		t.Error("IsValid(4) = true, want false")
	}
	if arr.Data().NullCount != 1 {
		t.Errorf("NullCount = %d, want 1", arr.Data().NullCount)
	}

	wantOffsets := []int64{0, 5, 10, 14, 16, 16, 23}
	offsetsBuf := arr.Data().Buffers[1].Data()
	for i, want := range wantOffsets {
		got := int64(offsetsBuf[i*8]) | int64(offsetsBuf[i*8+1])<<8 | int64(offsetsBuf[i*8+2])<<16 | int64(offsetsBuf[i*8+3])<<24 |
			int64(offsetsBuf[i*8+4])<<32 | int64(offsetsBuf[i*8+5])<<40 | int64(offsetsBuf[i*8+6])<<48 | int64(offsetsBuf[i*8+7])<<56
		if got != want {
			t.Errorf("offsets[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	values := []string{"a", "bb", "ccc"}
	mask := []bool{true, true, true}
	arr, err := String(values, mask)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range values {
		got, err := arr.RawValue(i)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, []byte(want)) {
			t.Errorf("RawValue(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestStringEmptyArray(t *testing.T) {
	arr, err := String(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if arr.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", arr.Size())
	}
	offsets := arr.Data().Buffers[1].Data()
	if len(offsets) != 4 {
		t.Fatalf("offsets buffer len = %d, want 4 (one i32 entry for offsets[0]=0)", len(offsets))
	}
}
