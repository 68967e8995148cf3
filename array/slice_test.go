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

package array_test

import (
	"testing"

	"github.com/ctildasneller/colvec/array"
	"github.com/ctildasneller/colvec/arrbuild"
)

func TestSliceNumeric(t *testing.T) {
	full, err := arrbuild.Numeric([]int32{10, 20, 30, 40, 50}, []bool{true, true, false, true, true})
	if err != nil {
		t.Fatal(err)
	}
	sliced, err := array.Slice(full, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sliced.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", sliced.Size())
	}
	na := sliced.(*array.NumericArray[int32])
	for i, want := range []int32{20, 30, 40} {
		got, err := na.RawValue(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("RawValue(%d) = %d, want %d", i, got, want)
		}
	}
	valid, err := na.IsValid(1)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Errorf("IsValid(1) = true, want false (backed by flat index 2)")
	}
}

func TestSliceString(t *testing.T) {
	full, err := arrbuild.String([]string{"aa", "bb", "cc", "dd"}, []bool{true, false, true, true})
	if err != nil {
		t.Fatal(err)
	}
	sliced, err := array.Slice(full, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	sa := sliced.(*array.StringArray)
	if sa.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", sa.Size())
	}
	valid0, err := sa.IsValid(0)
	if err != nil {
		t.Fatal(err)
	}
	if valid0 {
		t.Errorf("IsValid(0) = true, want false (backed by flat index 1)")
	}
	raw1, err := sa.RawValue(1)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw1) != "cc" {
		t.Errorf("RawValue(1) = %q, want %q", raw1, "cc")
	}
}

// TestSliceList slices a window that ends before the end of the parent
// list, so the offsets buffer has more entries than the sliced window's
// length+1 -- exercising the "at least" (not "exactly") length check in
// newListArrayImpl.
func TestSliceList(t *testing.T) {
	flat, err := arrbuild.Numeric([]int32{1, 2, 3, 4, 5, 6}, []bool{true, true, true, true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	full, err := arrbuild.BigList(flat, []int{2, 1, 2, 1}, []bool{true, true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	sliced, err := array.Slice(full, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	la := sliced.(*array.BigListArray)
	if la.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", la.Size())
	}
	size0, err := la.ListSize(0)
	if err != nil {
		t.Fatal(err)
	}
	if size0 != 1 {
		t.Errorf("ListSize(0) = %d, want 1 (row 1 of the unsliced list)", size0)
	}
	row1, err := la.RawValue(1)
	if err != nil {
		t.Fatal(err)
	}
	if row1.Len() != 2 {
		t.Fatalf("row 1 len = %d, want 2", row1.Len())
	}
	elem0, err := row1.At(0)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := elem0.Int32()
	if !ok || got != 4 {
		t.Errorf("row 1 element 0 = (%d, %v), want (4, true)", got, ok)
	}
}

// TestSliceStructUsesWindowOffset covers the bug where FieldValue read
// field column row 0 instead of row Offset+0 for a sliced StructArray.
func TestSliceStructUsesWindowOffset(t *testing.T) {
	ages, err := arrbuild.Numeric([]int32{1, 2, 3, 4}, []bool{true, true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	names, err := arrbuild.String([]string{"a", "b", "c", "d"}, []bool{true, true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	full, err := arrbuild.Struct([]arrbuild.Field{
		{Name: "age", Value: ages},
		{Name: "name", Value: names},
	}, []bool{true, true, true, true})
	if err != nil {
		t.Fatal(err)
	}

	sliced, err := array.Slice(full, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	sa := sliced.(*array.StructArray)
	if sa.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", sa.Size())
	}

	raw, err := sa.RawValue(0)
	if err != nil {
		t.Fatal(err)
	}
	ageVal, err := raw.At(0)
	if err != nil {
		t.Fatal(err)
	}
	gotAge, ok := ageVal.Int32()
	if !ok || gotAge != 3 {
		t.Errorf("sliced row 0 field age = (%d, %v), want (3, true) -- backed by unsliced row 2", gotAge, ok)
	}
	nameVal, err := raw.At(1)
	if err != nil {
		t.Fatal(err)
	}
	gotName, ok := nameVal.Str()
	if !ok || gotName != "c" {
		t.Errorf("sliced row 0 field name = (%q, %v), want (%q, true) -- backed by unsliced row 2", gotName, ok, "c")
	}

	raw1, err := sa.RawValue(1)
	if err != nil {
		t.Fatal(err)
	}
	ageVal1, err := raw1.At(0)
	if err != nil {
		t.Fatal(err)
	}
	gotAge1, ok := ageVal1.Int32()
	if !ok || gotAge1 != 4 {
		t.Errorf("sliced row 1 field age = (%d, %v), want (4, true) -- backed by unsliced row 3", gotAge1, ok)
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	full, err := arrbuild.Numeric([]int32{1, 2, 3}, []bool{true, true, true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := array.Slice(full, 1, 10); err == nil {
		t.Fatal("expected error slicing past the end")
	}
	if _, err := array.Slice(full, -1, 1); err == nil {
		t.Fatal("expected error on negative offset")
	}
}
