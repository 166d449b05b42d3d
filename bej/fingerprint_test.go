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

func TestFingerprintDeterministic(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	a := Fingerprint(buf)
	b := Fingerprint(buf)
	if a != b {
		t.Fatalf("fingerprint not deterministic: %x != %x", a, b)
	}
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	a := Fingerprint([]byte{0x01, 0x02, 0x03})
	b := Fingerprint([]byte{0x01, 0x02, 0x04})
	if a == b {
		t.Fatal("expected distinct fingerprints for distinct buffers")
	}
}

func TestFingerprintEmpty(t *testing.T) {
	// Must not panic on an empty dictionary buffer.
	_ = Fingerprint(nil)
	_ = Fingerprint([]byte{})
}
