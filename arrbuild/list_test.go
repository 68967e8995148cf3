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

// TestListOverNullableInts is scenario S3 from spec.md §8.
func TestListOverNullableInts(t *testing.T) {
	flat, err := Numeric([]int32{1, 2, 3, 4, 5}, []bool{true, true, true, false, true})
	if err != nil {
		t.Fatal(err)
	}
	list, err := BigList(flat, []int{2, 1, 2}, []bool{true, true, true})
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []int{2, 1, 2} {
		got, err := list.ListSize(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ListSize(%d) = %d, want %d", i, got, want)
		}
	}

	rows, err := list.Values().Slice()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, want := range []int{2, 1, 2} {
		lv, ok := rows[i].List()
		if !ok {
			t.Fatalf("row %d is not a list value", i)
		}
		if lv.Len() != want {
			t.Errorf("row %d len = %d, want %d", i, lv.Len(), want)
		}
	}

	// row 2 covers offsets[2:4) = flat indices [3,5): index 3 is invalid
	// (None) and index 4 holds 5.
	row2, _ := rows[2].List()
	elem0, err := row2.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if !elem0.IsNone() {
		t.Errorf("list 2 element 0 = %v, want None (backed by flat index 3)", elem0)
	}
	elem1, err := row2.At(1)
	if err != nil {
		t.Fatal(err)
	}
	got1, ok := elem1.Int32()
	if !ok || got1 != 5 {
		t.Errorf("list 2 element 1 = (%d, %v), want (5, true)", got1, ok)
	}
}

// TestListWithNullRow is scenario S4 from spec.md §8.
func TestListWithNullRow(t *testing.T) {
	flat, err := Numeric([]int32{1, 2, 3, 4, 5}, []bool{true, true, true, false, true})
	if err != nil {
		t.Fatal(err)
	}
	list, err := BigList(flat, []int{2, 1, 2}, []bool{true, true, false})
	if err != nil {
		t.Fatal(err)
	}

	ov, err := list.OptionalValue(2)
	if err != nil {
		t.Fatal(err)
	}
	if !ov.IsNone() {
		t.Errorf("OptionalValue(2) = %v, want None", ov)
	}

	seq := list.OptionalValues()
	rows, err := seq.Slice()
	if err != nil {
		t.Fatal(err)
	}
	if !rows[2].IsNone() {
		t.Errorf("OptionalValues()[2] = %v, want None", rows[2])
	}
}

func TestListSizesSumExceedsChild(t *testing.T) {
	flat, err := Numeric([]int32{1, 2}, []bool{true, true})
	if err != nil {
		t.Fatal(err)
	}
	_, err = List(flat, []int{5}, []bool{true})
	if err == nil {
		t.Fatal("expected error when sizes exceed child length")
	}
}
