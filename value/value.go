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

// Package value provides a runtime Value sum type that can represent
// any element a caller might receive through the type-erased base-array
// surface, including nested lists and struct field maps, for uniform
// traversal without static knowledge of the column's concrete type.
//
// Value is the Go expression of the original source's
// std::variant<bool, ..., ListOfOptionalValues, MapOfOptionalValues,
// std::monostate> (see original_source/include/bolt/value.hpp):
// a closed tagged union rather than an interface{}, since the payload
// widths here are small and fixed and a tagged struct avoids an
// allocation on every primitive value the way boxing into interface{}
// would.
package value

import "math"

// Kind identifies which alternative a Value currently holds.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindList
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is a runtime-variant representation of one array element.
// The zero Value is None, matching std::monostate in the source.
type Value struct {
	kind Kind
	num  uint64 // bit pattern of the scalar payload, when applicable
	str  string // string/bytes payload
	list ListValue
	strc StructValue
}

// None is the absent marker, returned for logically null elements.
var None = Value{}

// IsNone reports whether v carries no value (has_value() == false in
// the source).
func (v Value) IsNone() bool { return v.kind == KindNone }

// Kind returns which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

func Bool(b bool) Value {
	n := uint64(0)
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

func Int8(x int8) Value    { return Value{kind: KindInt8, num: uint64(uint8(x))} }
func Uint8(x uint8) Value  { return Value{kind: KindUint8, num: uint64(x)} }
func Int16(x int16) Value  { return Value{kind: KindInt16, num: uint64(uint16(x))} }
func Uint16(x uint16) Value { return Value{kind: KindUint16, num: uint64(x)} }
func Int32(x int32) Value  { return Value{kind: KindInt32, num: uint64(uint32(x))} }
func Uint32(x uint32) Value { return Value{kind: KindUint32, num: uint64(x)} }
func Int64(x int64) Value  { return Value{kind: KindInt64, num: uint64(x)} }
func Uint64(x uint64) Value { return Value{kind: KindUint64, num: x} }
func Float32(x float32) Value {
	return Value{kind: KindFloat32, num: uint64(math.Float32bits(x))}
}
func Float64(x float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(x)}
}

// String wraps a string payload. The source distinguishes an owned
// std::string from a borrowed std::string_view; Go strings are already
// immutable views over shared backing bytes, so both collapse to the
// same representation here.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// List wraps a ListValue.
func List(l ListValue) Value {
	return Value{kind: KindList, list: l}
}

// Struct wraps a StructValue.
func Struct(s StructValue) Value {
	return Value{kind: KindStruct, strc: s}
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.num != 0, true
}

func (v Value) Int8() (int8, bool) {
	if v.kind != KindInt8 {
		return 0, false
	}
	return int8(uint8(v.num)), true
}

func (v Value) Uint8() (uint8, bool) {
	if v.kind != KindUint8 {
		return 0, false
	}
	return uint8(v.num), true
}

func (v Value) Int16() (int16, bool) {
	if v.kind != KindInt16 {
		return 0, false
	}
	return int16(uint16(v.num)), true
}

func (v Value) Uint16() (uint16, bool) {
	if v.kind != KindUint16 {
		return 0, false
	}
	return uint16(v.num), true
}

func (v Value) Int32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(uint32(v.num)), true
}

func (v Value) Uint32() (uint32, bool) {
	if v.kind != KindUint32 {
		return 0, false
	}
	return uint32(v.num), true
}

func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return int64(v.num), true
}

func (v Value) Uint64() (uint64, bool) {
	if v.kind != KindUint64 {
		return 0, false
	}
	return v.num, true
}

func (v Value) Float32() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(uint32(v.num)), true
}

func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.num), true
}

// Str returns the string payload. Named Str rather than String to
// avoid colliding with fmt.Stringer's zero-argument signature.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) List() (ListValue, bool) {
	if v.kind != KindList {
		return ListValue{}, false
	}
	return v.list, true
}

func (v Value) Struct() (StructValue, bool) {
	if v.kind != KindStruct {
		return StructValue{}, false
	}
	return v.strc, true
}
