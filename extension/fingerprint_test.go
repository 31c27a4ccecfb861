// This file is part of a8ext.
//
// a8ext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// a8ext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with a8ext.  If not, see <https://www.gnu.org/licenses/>.

package extension_test

import (
	"testing"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/test"
)

func TestFingerprint(t *testing.T) {
	var mem atari.Memory
	fp := extension.Fingerprint{Address: 0x3000, Bytes: []uint8{0x18, 0x69, 0x14}}

	test.ExpectEquality(t, fp.Match(&mem), false)
	test.DemandSuccess(t, mem.Load(0x3000, []uint8{0x18, 0x69, 0x14}))
	test.ExpectEquality(t, fp.Match(&mem), true)

	// a single byte difference
	mem.Write(0x3002, 0x15)
	test.ExpectEquality(t, fp.Match(&mem), false)

	// fingerprints that extend beyond the top of memory never match
	fp = extension.Fingerprint{Address: 0xffff, Bytes: []uint8{0x00, 0x00}}
	test.ExpectEquality(t, fp.Match(&mem), false)

	// empty fingerprints never match
	fp = extension.Fingerprint{Address: 0x0000}
	test.ExpectEquality(t, fp.Match(&mem), false)

	test.ExpectEquality(t, extension.Fingerprint{Address: 0x3600, Bytes: []uint8{0x20, 0xb0}}.String(), "3600: 20 b0")
}
