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

// Package names carries the field-name side table for struct arrays.
// ArrayData has no room for field names (its buffers/children shape is
// fixed by the Arrow-compatible layout), so a StructArray keeps its
// names in a Table alongside the ArrayData it wraps.
//
// The lookup index is keyed by SipHash rather than Go's built-in map
// hash because struct field names in a columnar pipeline routinely
// originate from ingested, attacker-influenced documents (the same
// justification sneller applies to its AWS request-signing maps in
// aws/v4.go): a collision-resistant keyed hash avoids a hash-flooding
// denial of service from adversarial field-name choices.
package names

import (
	"fmt"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// sipK0 and sipK1 form a fixed compile-time SipHash key, the same in
// every process. It is not secret (this table only ever holds names
// supplied by the same process that reads them back).
const sipK0, sipK1 = 0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9

// Table maps struct field names to their child index, in declaration
// order. It is the Go analogue of ion.Symtab's string<->int interning,
// scaled down to a single struct array's field list.
type Table struct {
	names   []string
	toindex map[uint64][]int // siphash(name) -> candidate indices
	first   map[string]int   // name -> first declaring index, for FirstIndices
}

// New builds a Table for fields, in order. Duplicate names are kept
// (struct arrays do not require unique field names) but only the first
// occurrence is returned by Index.
func New(fields []string) *Table {
	t := &Table{
		names:   slices.Clone(fields),
		toindex: make(map[uint64][]int, len(fields)),
		first:   make(map[string]int, len(fields)),
	}
	for i, name := range fields {
		h := hash(name)
		t.toindex[h] = append(t.toindex[h], i)
		if _, ok := t.first[name]; !ok {
			t.first[name] = i
		}
	}
	return t
}

func hash(name string) uint64 {
	return siphash.Hash(sipK0, sipK1, []byte(name))
}

// Len returns the number of fields.
func (t *Table) Len() int {
	return len(t.names)
}

// Name returns the field name at child index i.
func (t *Table) Name(i int) (string, error) {
	if i < 0 || i >= len(t.names) {
		return "", fmt.Errorf("names: index %d out of range [0,%d)", i, len(t.names))
	}
	return t.names[i], nil
}

// Names returns all field names, in declaration order. The returned
// slice is a copy; mutating it does not affect the Table.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Index returns the child index of the first field named name, or
// (-1, false) if no field has that name.
func (t *Table) Index(name string) (int, bool) {
	for _, i := range t.toindex[hash(name)] {
		if t.names[i] == name {
			return i, true
		}
	}
	return -1, false
}

// FirstIndices returns a copy of the name-to-first-declaring-index
// map, for debug tooling that wants the whole mapping at once instead
// of looking names up one at a time through Index.
func (t *Table) FirstIndices() map[string]int {
	return maps.Clone(t.first)
}
