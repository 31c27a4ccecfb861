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

package extension

import (
	"fmt"

	"github.com/atari800ext/a8ext/atari"
)

// Fingerprint is a sequence of bytes expected at a fixed address. It is used
// by extensions to recognise a program. The comparison is exact and two
// programs with the same bytes at the same address cannot be told apart.
type Fingerprint struct {
	Address uint16
	Bytes   []uint8
}

// Match returns true if the fingerprint is found in memory. An empty
// fingerprint never matches.
func (fp Fingerprint) Match(mem *atari.Memory) bool {
	if len(fp.Bytes) == 0 {
		return false
	}
	return mem.Compare(fp.Address, fp.Bytes)
}

func (fp Fingerprint) String() string {
	return fmt.Sprintf("%04x: % 02x", fp.Address, fp.Bytes)
}
