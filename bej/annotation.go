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

// The annotation dictionary is a second dictionary of the same binary
// layout as the schema dictionary (§3), selected by the LSB of every
// wire sequence number. Its resolution path is identical to the
// schema dictionary's (Dictionaries.Select, Dictionary.FindEntry,
// Dictionary.EntryName all work unmodified against either one) — this
// file exists to name that fact and to give annotation-dictionary
// loading its own entry point, since spec.md §9 calls out that the
// reference decoder accepts but does not route to a second dictionary,
// leaving annotation-flagged sequences as unknown_<n>. This decoder
// plumbs the second handle through so they resolve normally instead.

// ParseAnnotationDictionary parses data as an annotation dictionary.
// It is identical to ParseDictionary; the separate name documents the
// distinct role at its call site (driver.go).
func ParseAnnotationDictionary(data []byte, logf func(string, ...any)) (*Dictionary, error) {
	return ParseDictionary(data, logf)
}
