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

//go:build !windows

package bitpack

import "golang.org/x/sys/unix"

// pageSize returns the platform page size, used only as a rounding
// hint for New's large-allocation path. Mirrors the
// vm/malloc_linux.go / vm/malloc_darwin.go split: a best-effort
// alignment hint, never a correctness requirement.
func pageSize() int {
	return unix.Getpagesize()
}
