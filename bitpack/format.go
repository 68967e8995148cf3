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

// Package bitpack provides the Arrow-compatible format tags and the
// shared byte-buffer type that every layout in this module is built from.
package bitpack

import "fmt"

// Format is a short string tag identifying an element type and physical
// layout family, matching the Arrow C data interface's "format" field.
type Format string

// Primitive scalar format tags.
const (
	FormatBool    Format = "b"
	FormatInt8    Format = "c"
	FormatUint8   Format = "C"
	FormatInt16   Format = "s"
	FormatUint16  Format = "S"
	FormatInt32   Format = "i"
	FormatUint32  Format = "I"
	FormatInt64   Format = "l"
	FormatUint64  Format = "L"
	FormatFloat32 Format = "f"
	FormatFloat64 Format = "g"
)

// Variable-length and nested format tags.
const (
	FormatUtf8       Format = "u"  // utf8 string, i32 offsets
	FormatUtf8Big    Format = "U"  // utf8 string, i64 offsets
	FormatList        Format = "+l" // list, i32 offsets
	FormatListBig     Format = "+L" // list, i64 offsets
	FormatStruct      Format = "+s"
	FormatUnionDense  Format = "+ud" // reserved, not fully specified
	FormatUnionSparse Format = "+us" // reserved, not fully specified
)

// Numeric is the set of scalar kinds that back a NumericArray.
type Numeric interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 |
		~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// FormatOf returns the single-character format tag for the primitive
// scalar kind T. This is the Go analogue of the original source's
// primitive_to_format<T>() constexpr function.
func FormatOf[T Numeric]() Format {
	var zero T
	switch any(zero).(type) {
	case bool:
		return FormatBool
	case int8:
		return FormatInt8
	case uint8:
		return FormatUint8
	case int16:
		return FormatInt16
	case uint16:
		return FormatUint16
	case int32:
		return FormatInt32
	case uint32:
		return FormatUint32
	case int64:
		return FormatInt64
	case uint64:
		return FormatUint64
	case float32:
		return FormatFloat32
	case float64:
		return FormatFloat64
	default:
		panic(fmt.Sprintf("bitpack: unsupported primitive type %T", zero))
	}
}

// IsUnion reports whether format belongs to the reserved union family,
// which has no validity buffer at buffers[0].
func IsUnion(f Format) bool {
	return f == FormatUnionDense || f == FormatUnionSparse
}

// Width returns the byte width of one element of a primitive format,
// or 0 if format does not name a fixed-width primitive.
func Width(f Format) int {
	switch f {
	case FormatBool, FormatInt8, FormatUint8:
		return 1
	case FormatInt16, FormatUint16:
		return 2
	case FormatInt32, FormatUint32, FormatFloat32:
		return 4
	case FormatInt64, FormatUint64, FormatFloat64:
		return 8
	default:
		return 0
	}
}
