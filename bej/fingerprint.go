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

package bej

import "github.com/dchest/siphash"

// Fingerprint returns a fast, non-cryptographic fingerprint of buf,
// used only for diagnostics (logging which dictionary a decode ran
// against). It is never consulted by the decode path, so it cannot
// change decode semantics.
func Fingerprint(buf []byte) uint64 {
	return siphash.Hash(0, 0, buf)
}
