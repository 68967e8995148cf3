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

import "testing"

// TestNumericWithNulls is scenario S1 from spec.md §8.
func TestNumericWithNulls(t *testing.T) {
	values := []int32{1, 2, 3, 4, 5}
	mask := []bool{true, true, true, false, true}

	arr, err := Numeric(values, mask)
	if err != nil {
		t.Fatal(err)
	}
	if arr.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", arr.Size())
	}
	for i, want := range values {
		got, err := arr.RawValue(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("RawValue(%d) = %d, want %d", i, got, want)
		}
		valid, err := arr.IsValid(i)
		if err != nil {
			t.Fatal(err)
		}
		if valid != mask[i] {
			t.Errorf("IsValid(%d) = %v, want %v", i, valid, mask[i])
		}
	}
	if arr.Data().NullCount != 1 {
		t.Errorf("NullCount = %d, want 1", arr.Data().NullCount)
	}
	ov, err := arr.OptionalValue(3)
	if err != nil {
		t.Fatal(err)
	}
	if !ov.IsNone() {
		t.Errorf("OptionalValue(3) = %v, want None", ov)
	}
}

func TestNumericLengthMismatch(t *testing.T) {
	_, err := Numeric([]int32{1, 2}, []bool{true})
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestNumericEmpty(t *testing.T) {
	arr, err := Numeric([]int32{}, []bool{})
	if err != nil {
		t.Fatal(err)
	}
	if arr.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", arr.Size())
	}
}

func TestNumericValuesSequenceIsRestartable(t *testing.T) {
	arr, err := Numeric([]int32{1, 2, 3}, []bool{true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	seq := arr.Values()
	first, err := seq.Slice()
	if err != nil {
		t.Fatal(err)
	}
	second, err := seq.Slice()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("sequence length changed across iterations: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, _ := first[i].Int32()
		b, _ := second[i].Int32()
		if a != b {
			t.Errorf("element %d differs across iterations: %d vs %d", i, a, b)
		}
	}
}
