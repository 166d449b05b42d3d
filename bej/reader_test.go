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

import "testing"

func TestNNINTRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 2, 0x7F, 0xFF, 0x100, 0xFFFF, 0x10000, 0x7FFFFFFF, 0xFFFFFFFF}
	for _, v := range cases {
		enc := encodeNNINT(v)
		r := NewReader(enc)
		got, err := r.ReadNNINT(len(enc))
		if err != nil {
			t.Fatalf("ReadNNINT(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
		if r.Pos() != len(enc) {
			t.Fatalf("round trip %d: consumed %d of %d bytes", v, r.Pos(), len(enc))
		}
	}
}

func TestNNINTZeroLength(t *testing.T) {
	r := NewReader([]byte{0x00})
	v, err := r.ReadNNINT(1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Fatalf("want 0, got %d", v)
	}
	if r.Pos() != 1 {
		t.Fatalf("want cursor 1, got %d", r.Pos())
	}
}

func TestNNINTTruncated(t *testing.T) {
	// length byte claims 2 bytes follow, but only 1 is available.
	r := NewReader([]byte{0x02, 0x01})
	_, err := r.ReadNNINT(2)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != Truncated {
		t.Fatalf("want Truncated, got %v", err)
	}
}

func TestNNINTLengthByteOutOfRange(t *testing.T) {
	r := NewReader([]byte{0x05, 0, 0, 0, 0, 0})
	_, err := r.ReadNNINT(6)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != MalformedValue {
		t.Fatalf("want MalformedValue, got %v", err)
	}
}

func TestReadSequenceSplitsSelector(t *testing.T) {
	cases := []struct {
		raw      uint32
		wantKey  uint32
		wantSel  byte
	}{
		{0, 0, 0},
		{1, 0, 1},
		{4, 2, 0},
		{5, 2, 1},
	}
	for _, c := range cases {
		enc := encodeNNINT(c.raw)
		r := NewReader(enc)
		key, sel, err := r.ReadSequence(len(enc))
		if err != nil {
			t.Fatal(err)
		}
		if key != c.wantKey || sel != c.wantSel {
			t.Fatalf("raw %d: got key=%d sel=%d, want key=%d sel=%d", c.raw, key, sel, c.wantKey, c.wantSel)
		}
	}
}

func TestReadFormatSplitsNibbles(t *testing.T) {
	r := NewReader([]byte{0x35})
	format, flags, err := r.ReadFormat(1)
	if err != nil {
		t.Fatal(err)
	}
	if format != 0x03 || flags != 0x05 {
		t.Fatalf("got format=%x flags=%x", format, flags)
	}
}

func TestReadFormatTruncated(t *testing.T) {
	r := NewReader(nil)
	_, _, err := r.ReadFormat(0)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != Truncated {
		t.Fatalf("want Truncated, got %v", err)
	}
}
