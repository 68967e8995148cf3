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
	"unsafe"
)

// Buffer is a contiguous byte region that may or may not own its
// allocation. Buffers are shared by reference (*Buffer) rather than
// copied; Buffer itself has no exported copy constructor.
//
// A Buffer that shares an allocation with another Buffer keeps a
// reference to that parent so the parent's backing array is kept
// alive at least as long as any child that points into it -- this
// mirrors Go's own slice-sharing semantics, so in practice the parent
// field exists to document the relationship and to let Size/Data
// callers reason about aliasing, not to drive garbage collection.
type Buffer struct {
	data   []byte
	owning bool
	parent *Buffer
}

// largePageThreshold is the size above which New rounds its
// allocation up to a page multiple. This is a cosmetic hint only
// (spec.md §1 Non-goals disclaim alignment guarantees): it costs a
// little slack memory on large buffers in exchange for allocations
// that land on page boundaries, which tends to help the host
// allocator and any future mmap-backed Buffer variant.
const largePageThreshold = 1 << 20

// New allocates an owning Buffer of size bytes. Contents are
// zero-initialized, matching Go's make semantics (the source's
// uninitialized malloc is not observable from outside this package
// since every constructor in arrbuild fully populates the buffer
// before publishing it). The returned Buffer's Size() still reports
// size; any page-rounding only affects the underlying capacity.
func New(size int) *Buffer {
	if size < 0 {
		panic("bitpack: negative buffer size")
	}
	capacity := size
	if size > largePageThreshold {
		if page := pageSize(); page > 0 {
			capacity = ((size + page - 1) / page) * page
		}
	}
	data := make([]byte, size, capacity)
	return &Buffer{data: data, owning: true}
}

// Adopt wraps an existing byte slice as a non-owning Buffer. The
// caller guarantees the slice outlives the returned Buffer.
func Adopt(b []byte) *Buffer {
	return &Buffer{data: b, owning: false}
}

// Own wraps a freshly built byte slice as an owning Buffer, for
// constructors that assemble a buffer's contents by hand (e.g. a
// values buffer built by appending variable-length payloads) instead
// of going through New/PackPOD/PackBitmap.
func Own(b []byte) *Buffer {
	return &Buffer{data: b, owning: true}
}

// child returns a non-owning Buffer that aliases a sub-range of b,
// keeping b alive via the parent reference.
func (b *Buffer) child(lo, hi int) *Buffer {
	return &Buffer{data: b.data[lo:hi], owning: false, parent: b}
}

// PackPOD allocates an owning Buffer holding a bit-copy of values.
// T must be a fixed-width scalar. bool is accepted and stored
// byte-packed (one byte per element) rather than bit-packed: the
// original source maps bool to the 'b' format tag but builds it
// through the same generic primitive path used for every other scalar
// (see original_source/include/bolt/buffer.hpp, where the bit-packed
// layout is a separate constructor gated on an explicit
// compact_bool_flag). This module follows the source's actual
// behavior rather than Arrow's bit-packed-bool convention -- callers
// that need a bit-packed bool column should use PackBitmap directly.
func PackPOD[T Numeric](values []T) (*Buffer, error) {
	var zero T
	width := int(unsafe.Sizeof(zero))
	out := New(len(values) * width)
	for i, v := range values {
		*(*T)(unsafe.Pointer(&out.data[i*width])) = v
	}
	return out, nil
}

// PackBitmap packs valid into an owning Buffer of ceil(n/8) bytes,
// LSB-first: bit k of byte b represents element 8*b+k. The buffer is
// zero-initialized before any valid bits are set, so tail bits beyond
// len(valid) are always clear (though callers must not rely on that
// per the spec's "unspecified tail bits" contract).
func PackBitmap(valid []bool) *Buffer {
	n := len(valid)
	out := New((n + 7) / 8)
	for i, v := range valid {
		if v {
			out.data[i>>3] |= 1 << uint(i&7)
		}
	}
	return out
}

// Data returns the raw bytes of the buffer.
func (b *Buffer) Data() []byte {
	return b.data
}

// Size returns the byte length of the buffer.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Owning reports whether the buffer owns its backing allocation.
func (b *Buffer) Owning() bool {
	return b.owning
}
