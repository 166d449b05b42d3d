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

import (
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	headerSize   = 12
	entrySize    = 10
	maxNameBytes = 255
)

// Dictionary is a parsed schema (or annotation) dictionary: a 12-byte
// header, an array of fixed-width entries, and a name-string region.
// The buffer is retained, not copied; Entry values and names handed
// out from it are copies.
type Dictionary struct {
	data []byte

	VersionTag      byte
	TruncationFlags byte
	EntryCount      uint16
	SchemaVersion   [4]byte
	DictionarySize  uint32
}

// Entry is one fixed-width dictionary entry.
type Entry struct {
	Format      Format
	Flags       byte
	Sequence    uint16
	ChildOffset uint16
	ChildCount  uint16
	NameLength  byte
	NameOffset  uint16
}

// Scope is a (child_offset, child_count) pair describing the range of
// entries in which a sequence number is resolved.
type Scope struct {
	Offset uint16
	Count  uint16
}

// ParseDictionary parses the 12-byte header of data. It requires
// len(data) >= 12 and warns (via the supplied logf, which may be nil)
// rather than failing when the declared dictionary_size disagrees
// with len(data), per spec's "advisory" framing of that field.
func ParseDictionary(data []byte, logf func(string, ...any)) (*Dictionary, error) {
	if len(data) < headerSize {
		return nil, errMalformedDict(0, fmt.Sprintf("dictionary shorter than %d-byte header", headerSize))
	}
	d := &Dictionary{data: data}
	d.VersionTag = data[0]
	d.TruncationFlags = data[1]
	d.EntryCount = uint16(data[2]) | uint16(data[3])<<8
	copy(d.SchemaVersion[:], data[4:8])
	d.DictionarySize = uint32(data[8]) | uint32(data[9])<<8 | uint32(data[10])<<16 | uint32(data[11])<<24

	if int(d.DictionarySize) != len(data) && logf != nil {
		logf("dictionary_size %d disagrees with buffer length %d", d.DictionarySize, len(data))
	}

	root := Scope{Offset: headerSize, Count: d.EntryCount}
	if err := d.validateScope(root); err != nil {
		return nil, err
	}
	return d, nil
}

// RootScope is the scope spanning the dictionary's top-level entries.
func (d *Dictionary) RootScope() Scope {
	return Scope{Offset: headerSize, Count: d.EntryCount}
}

func (d *Dictionary) validateScope(s Scope) error {
	end := int(s.Offset) + entrySize*int(s.Count)
	if end > len(d.data) {
		return errMalformedDict(int(s.Offset), "entry range extends past dictionary size")
	}
	return nil
}

func (d *Dictionary) entryAt(offset int) (Entry, error) {
	if offset+entrySize > len(d.data) {
		return Entry{}, errMalformedDict(offset, "entry extends past dictionary size")
	}
	b := d.data[offset : offset+entrySize]
	e := Entry{
		Format:      Format((b[0] >> 4) & 0x0F),
		Flags:       b[0] & 0x0F,
		Sequence:    uint16(b[1]) | uint16(b[2])<<8,
		ChildOffset: uint16(b[3]) | uint16(b[4])<<8,
		ChildCount:  uint16(b[5]) | uint16(b[6])<<8,
		NameLength:  b[7],
		NameOffset:  uint16(b[8]) | uint16(b[9])<<8,
	}
	if e.NameOffset != 0 && int(e.NameOffset)+int(e.NameLength) > len(d.data) {
		return Entry{}, errMalformedDict(offset, "name extends past dictionary size")
	}
	if int(e.ChildOffset)+entrySize*int(e.ChildCount) > len(d.data) {
		return Entry{}, errMalformedDict(offset, "child range extends past dictionary size")
	}
	return e, nil
}

// FindEntry linearly scans scope's entries for target. Entries are
// expected to be sequence-ordered by the dictionary producer, but this
// decoder does not depend on that and never binary-searches: scopes
// are small, and linear scan is simpler and trivially bounds-correct.
// FindEntry returns ok=false rather than an error when the sequence is
// absent; callers synthesize a placeholder name for unknown entries.
func (d *Dictionary) FindEntry(scope Scope, target uint32) (Entry, bool, error) {
	for i := 0; i < int(scope.Count); i++ {
		off := int(scope.Offset) + i*entrySize
		e, err := d.entryAt(off)
		if err != nil {
			return Entry{}, false, err
		}
		if uint32(e.Sequence) == target {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// ChildScope returns the scope spanned by e's children.
func (d *Dictionary) ChildScope(e Entry) Scope {
	return Scope{Offset: e.ChildOffset, Count: e.ChildCount}
}

// EntryName returns the entry's name as a string, or "" if the entry
// has no name (name_offset == 0). The string is a copy of the name
// bytes, so it does not reference the dictionary's buffer.
func (d *Dictionary) EntryName(e Entry) string {
	if e.NameOffset == 0 || e.NameLength == 0 {
		return ""
	}
	n := int(e.NameLength)
	if n > maxNameBytes {
		n = maxNameBytes
	}
	start := int(e.NameOffset)
	end := start + n
	if end > len(d.data) {
		return ""
	}
	return string(d.data[start:end])
}

// Dictionaries bundles the schema dictionary with an optional
// annotation dictionary, and selects between them by the LSB of a
// wire sequence number. Plumbing for the annotation dictionary is
// described but not exercised by the reference decoder (spec.md §9);
// this repo wires it through so annotation-flagged sequences resolve
// names instead of always falling back to unknown_<n>.
type Dictionaries struct {
	Schema     *Dictionary
	Annotation *Dictionary
}

// Select returns the dictionary named by selector, or nil if that
// dictionary was not supplied (e.g. no annotation dictionary given).
func (d Dictionaries) Select(selector DictSelector) *Dictionary {
	if selector == SelectAnnotation {
		return d.Annotation
	}
	return d.Schema
}

// entryRange returns a defensive copy of the raw entry bytes in scope.
// Nothing in the package calls it.
func (d *Dictionary) entryRange(scope Scope) []byte {
	start := int(scope.Offset)
	end := start + entrySize*int(scope.Count)
	return slices.Clone(d.data[start:end])
}
