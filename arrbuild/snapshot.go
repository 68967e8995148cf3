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
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ctildasneller/colvec/arrdata"
)

var snapEnc *zstd.Encoder
var snapDec *zstd.Decoder

func init() {
	snapEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	snapDec, _ = zstd.NewReader(nil, zstd.IgnoreChecksum(true))
}

// snapMagic begins every snapshot blob, mirroring ion/zion's magic
// marker convention for identifying a compressed frame.
var snapMagic = []byte{0x83, 'c', 'v', '1'}

// Snapshot serializes an ArrayData's buffer set (flattened
// depth-first, parent first) to a zstd-compressed debug blob. This is
// a best-effort inspection dump, not an Arrow IPC-compatible wire
// format -- serialization is explicitly out of scope for the array
// core (spec.md §1) -- so Snapshot only needs to round-trip within
// this module, not interoperate with any other reader. Grounded on
// ion/zion/compress.go's use of github.com/klauspost/compress/zstd.
func Snapshot(data *arrdata.ArrayData) ([]byte, error) {
	var raw []byte
	flattenBuffers(data, &raw)
	out := append([]byte{}, snapMagic...)
	out = snapEnc.EncodeAll(raw, out)
	return out, nil
}

func flattenBuffers(data *arrdata.ArrayData, out *[]byte) {
	for _, buf := range data.Buffers {
		var lenBytes [8]byte
		binary.LittleEndian.PutUint64(lenBytes[:], uint64(buf.Size()))
		*out = append(*out, lenBytes[:]...)
		*out = append(*out, buf.Data()...)
	}
	for _, child := range data.Children {
		flattenBuffers(child, out)
	}
	if data.Dictionary != nil {
		flattenBuffers(data.Dictionary, out)
	}
}

// DecodeSnapshot reverses Snapshot's zstd framing back to the flat
// length-prefixed buffer stream, for tests that want to assert on the
// raw bytes without re-deriving the original ArrayData tree (Snapshot
// intentionally does not carry enough format/shape metadata to rebuild
// one -- it is a buffer-bytes dump, not a schema-carrying format).
func DecodeSnapshot(blob []byte) ([]byte, error) {
	if len(blob) < len(snapMagic) {
		return nil, fmt.Errorf("arrbuild: snapshot too short")
	}
	for i, b := range snapMagic {
		if blob[i] != b {
			return nil, fmt.Errorf("arrbuild: snapshot has bad magic")
		}
	}
	return snapDec.DecodeAll(blob[len(snapMagic):], nil)
}
