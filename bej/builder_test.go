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

// Test-only helpers for constructing dictionaries and SFLV payloads
// from a high-level description, so test cases don't have to hand-
// compute byte offsets.

type dnode struct {
	seq      uint16
	format   Format
	name     string
	children []*dnode

	childOffset int
	nameOffset  int
}

type dblock struct {
	nodes  []*dnode
	offset int
	parent *dnode
}

// buildDictionary lays out roots (and their descendants) as a
// dictionary byte buffer per spec §3.
func buildDictionary(roots []*dnode) []byte {
	var blocks []*dblock
	root := &dblock{nodes: roots}
	blocks = append(blocks, root)

	queue := append([]*dnode{}, roots...)
	for i := 0; i < len(queue); i++ {
		n := queue[i]
		if len(n.children) > 0 {
			b := &dblock{nodes: n.children, parent: n}
			blocks = append(blocks, b)
			queue = append(queue, n.children...)
		}
	}

	offset := headerSize
	for _, b := range blocks {
		b.offset = offset
		offset += entrySize * len(b.nodes)
		if b.parent != nil {
			b.parent.childOffset = b.offset
		}
	}

	nameRegionStart := offset
	var names []byte
	for _, b := range blocks {
		for _, n := range b.nodes {
			if n.name != "" {
				n.nameOffset = nameRegionStart + len(names)
				names = append(names, n.name...)
			}
		}
	}

	total := nameRegionStart + len(names)
	buf := make([]byte, total)
	buf[0] = 0x01 // version_tag, unconstrained by spec
	buf[1] = 0x00 // truncation_flags
	putU16(buf[2:4], uint16(len(roots)))
	// schema_version left zero
	putU32(buf[8:12], uint32(total))

	for _, b := range blocks {
		for i, n := range b.nodes {
			off := b.offset + i*entrySize
			buf[off] = byte(n.format)<<4 | 0
			putU16(buf[off+1:off+3], n.seq)
			putU16(buf[off+3:off+5], uint16(n.childOffset))
			putU16(buf[off+5:off+7], uint16(len(n.children)))
			buf[off+7] = byte(len(n.name))
			putU16(buf[off+8:off+10], uint16(n.nameOffset))
		}
	}
	copy(buf[nameRegionStart:], names)
	return buf
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// encodeNNINT returns the minimal NNINT encoding of v.
func encodeNNINT(v uint32) []byte {
	if v == 0 {
		return []byte{0}
	}
	var mag []byte
	for x := v; x > 0; x >>= 8 {
		mag = append(mag, byte(x))
	}
	return append([]byte{byte(len(mag))}, mag...)
}

// buildSFLV assembles one SFLV record.
func buildSFLV(seqKey uint32, selector byte, format Format, flags byte, value []byte) []byte {
	var out []byte
	s := (seqKey << 1) | uint32(selector)
	out = append(out, encodeNNINT(s)...)
	out = append(out, byte(format)<<4|flags)
	out = append(out, encodeNNINT(uint32(len(value)))...)
	out = append(out, value...)
	return out
}

// buildCollection assembles the V region of a Set or Array: an
// element-count NNINT followed by each element's full SFLV bytes.
func buildCollection(elements ...[]byte) []byte {
	out := encodeNNINT(uint32(len(elements)))
	for _, e := range elements {
		out = append(out, e...)
	}
	return out
}

// buildPayloadHeader assembles the 7-byte payload header for version
// 1.1.0 and the given schema class.
func buildPayloadHeader(class SchemaClass) []byte {
	return []byte{0x00, 0xF0, 0xF1, 0xF1, 0x00, 0x00, byte(class)}
}
