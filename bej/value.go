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

import "strings"

// decodeInteger reassembles a signed 64-bit integer from length bytes
// of little-endian two's complement data, sign-extending when the top
// bit of the last byte is set and length < 8.
func decodeInteger(ctx *decodeContext, value []byte, offset int) error {
	n := len(value)
	if n == 0 || n > 8 {
		return errMalformedValue(offset, "integer length must be in [1,8]")
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(value[i]) << (8 * uint(i))
	}
	if n < 8 && value[n-1]&0x80 != 0 {
		for i := n; i < 8; i++ {
			v |= uint64(0xFF) << (8 * uint(i))
		}
	}
	return ctx.out.writeRaw(ctx.out.int(int64(v)))
}

// decodeString strips one trailing NUL, if present, then emits the
// remaining bytes as a JSON string literal.
func decodeString(ctx *decodeContext, value []byte) error {
	s := string(value)
	s = strings.TrimSuffix(s, "\x00")
	return ctx.out.writeQuoted(s)
}

// decodeBoolean treats a zero-length value as false, per spec.
func decodeBoolean(ctx *decodeContext, value []byte) error {
	b := false
	if len(value) > 0 && value[0] != 0 {
		b = true
	}
	if b {
		return ctx.out.writeRaw("true")
	}
	return ctx.out.writeRaw("false")
}

// decodeNull requires a zero-length value and emits null.
func decodeNull(ctx *decodeContext, value []byte, offset int) error {
	if len(value) != 0 {
		return errMalformedValue(offset, "null value must be empty")
	}
	return ctx.out.writeRaw("null")
}

// decodeEnum reads the single NNINT naming the chosen member by its
// sequence number within entry's own child scope, temporarily pushes
// that scope (popped on return), resolves the member there, and emits
// the resolved name (or the bare sequence number when the member is
// absent from the dictionary).
func decodeEnum(ctx *decodeContext, dict *Dictionary, entry Entry, value []byte, offset int) error {
	r := NewReader(value)
	seq, err := r.ReadNNINT(len(value))
	if err != nil {
		return err
	}
	if err := ctx.scopes.push(dict.ChildScope(entry), offset); err != nil {
		return err
	}
	defer ctx.scopes.pop()
	member, ok, err := dict.FindEntry(ctx.scopes.top(), seq)
	if err != nil {
		return err
	}
	if !ok {
		return ctx.out.writeRaw(ctx.out.int(int64(seq)))
	}
	name := dict.EntryName(member)
	if name == "" {
		return ctx.out.writeRaw(ctx.out.int(int64(seq)))
	}
	return ctx.out.writeQuoted(name)
}
