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

package array

import "errors"

// Sentinel error kinds, matching the taxonomy in spec.md §7. Accessor
// paths that can fail (IsValid, OptionalValue, Visit) always wrap one
// of these with fmt.Errorf("...: %w", err) so callers can recover the
// kind with errors.Is.
var (
	// ErrLengthMismatch: values and validity ranges disagree in
	// length at construction time.
	ErrLengthMismatch = errors.New("array: length mismatch")

	// ErrFormatUnsupported: the visitor or base-array surface saw a
	// format tag it does not handle (e.g. a reserved union layout).
	ErrFormatUnsupported = errors.New("array: format not supported")

	// ErrLayoutInvariantBroken: offsets non-monotone, a child's
	// length is smaller than required, or a validity buffer is too
	// small for the declared length.
	ErrLayoutInvariantBroken = errors.New("array: layout invariant broken")

	// ErrOutOfBounds: an index is >= the array's visible size.
	ErrOutOfBounds = errors.New("array: index out of bounds")
)
